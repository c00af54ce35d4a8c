package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// CreateBlock seals every pending transaction into a new block with the
// specified proof and appends it to the chain. An empty previous hash
// defaults to the hash of the latest block.
func (s *State) CreateBlock(proof uint64, previousHash string) database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createBlock(proof, previousHash)
}

// createBlock performs the work of CreateBlock. The caller must hold
// the lock.
func (s *State) createBlock(proof uint64, previousHash string) database.Block {
	latestBlock := s.db.LatestBlock()
	if previousHash == "" {
		previousHash = latestBlock.Hash()
	}

	block := database.NewBlock(latestBlock, s.now(), s.mempool.Drain(), proof, previousHash)

	// The index always follows the latest block while the lock is held.
	if err := s.db.Write(block); err != nil {
		panic(err)
	}

	s.evHandler("state: CreateBlock: block[%d]: txs[%d]: hash[%s]", block.Index, len(block.Transactions), block.Hash())

	return block.Clone()
}
