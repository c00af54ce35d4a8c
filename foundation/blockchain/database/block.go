package database

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// GenesisPreviousHash is the sentinel used as the previous hash of the
// first block in the chain.
const GenesisPreviousHash = "1"

// GenesisProof is the proof recorded in the first block in the chain.
const GenesisProof = 1

// =============================================================================

// Block represents a group of transactions batched together. The JSON
// field names are part of the wire contract.
type Block struct {
	Index        uint64  `json:"index"`         // Position in the chain starting at 1.
	Timestamp    float64 `json:"timestamp"`     // Seconds since the epoch when the block was created.
	Transactions []Tx    `json:"transactions"`  // The pending transactions sealed by this block.
	Proof        uint64  `json:"proof"`         // Value identified to solve the proof of work.
	PreviousHash string  `json:"previous_hash"` // Hash of the previous block in the chain.
}

// NewGenesisBlock constructs the first block of every chain.
func NewGenesisBlock(now time.Time) Block {
	return Block{
		Index:        1,
		Timestamp:    Timestamp(now),
		Transactions: []Tx{},
		Proof:        GenesisProof,
		PreviousHash: GenesisPreviousHash,
	}
}

// NewBlock constructs the block that follows the previous block. The block
// takes ownership of the transactions slice.
func NewBlock(prevBlock Block, now time.Time, trans []Tx, proof uint64, previousHash string) Block {
	if trans == nil {
		trans = []Tx{}
	}

	// Wall clock time can step backwards. Block times never do.
	ts := Timestamp(now)
	if ts < prevBlock.Timestamp {
		ts = prevBlock.Timestamp
	}

	return Block{
		Index:        prevBlock.Index + 1,
		Timestamp:    ts,
		Transactions: trans,
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	return Hash(b)
}

// Clone returns a copy of the block that shares no memory with the original.
func (b Block) Clone() Block {
	trans := make([]Tx, len(b.Transactions))
	copy(trans, b.Transactions)
	b.Transactions = trans

	return b
}

// MarshalJSON makes sure an empty set of transactions is rendered as
// an empty list.
func (b Block) MarshalJSON() ([]byte, error) {
	type block Block
	if b.Transactions == nil {
		b.Transactions = []Tx{}
	}
	return json.Marshal(block(b))
}

// =============================================================================

// Hash returns the lowercase hex SHA-256 of the canonical form of the block.
func Hash(b Block) string {
	hash := sha256.Sum256(Canonical(b))
	return hex.EncodeToString(hash[:])
}

// Timestamp converts a time into fractional seconds since the epoch with
// microsecond precision.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
