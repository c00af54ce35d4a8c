// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	MinerID    string
	Host       string
	Difficulty int
	KnownPeers *peer.PeerSet
	EvHandler  EventHandler
	Now        func() time.Time
}

// State manages the blockchain database.
type State struct {
	minerID    string
	host       string
	difficulty int
	evHandler  EventHandler
	now        func() time.Time

	// mu is the single critical section for the chain, the mempool and the
	// known peers. The proof of work search never holds it.
	mu sync.Mutex

	knownPeers *peer.PeerSet
	mempool    *mempool.Mempool
	db         *database.Database
}

// New constructs a new blockchain with a genesis block.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	difficulty := cfg.Difficulty
	if difficulty <= 0 {
		difficulty = database.DefaultDifficulty
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	// The genesis block is created once for the life of the state.
	db := database.New(now())
	ev("state: New: genesis block created: hash[%s]", db.LatestBlock().Hash())

	state := State{
		minerID:    cfg.MinerID,
		host:       cfg.Host,
		difficulty: difficulty,
		evHandler:  ev,
		now:        now,

		knownPeers: knownPeers,
		mempool:    mempool.New(),
		db:         db,
	}

	return &state
}

// MinerID returns the account credited with the mining reward.
func (s *State) MinerID() string {
	return s.minerID
}

// Difficulty returns the number of leading zeros a proof hash must have.
func (s *State) Difficulty() int {
	return s.difficulty
}
