// Package database handles the lower level support for maintaining the
// blockchain in memory: the block and transaction data model, the canonical
// hashing rules and the proof of work puzzle.
package database

import (
	"errors"
	"sync"
	"time"
)

// ErrBlockOutOfOrder is returned when a block is written that does not
// carry the next index in the chain.
var ErrBlockOutOfOrder = errors.New("block is out of order")

// ErrBlockNotFound is returned when a block index does not exist.
var ErrBlockNotFound = errors.New("block does not exist")

// =============================================================================

// Database manages the chain of blocks. Blocks are never mutated or removed
// once written, except when the whole chain is replaced.
type Database struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs a new database holding a chain with a genesis block
// created at the specified time.
func New(now time.Time) *Database {
	return &Database{
		blocks: []Block{NewGenesisBlock(now)},
	}
}

// Write adds a new block to the end of the chain.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if block.Index != uint64(len(db.blocks))+1 {
		return ErrBlockOutOfOrder
	}

	db.blocks = append(db.blocks, block.Clone())

	return nil
}

// Replace swaps the current chain for the specified chain.
func (db *Database) Replace(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	chain := make([]Block, len(blocks))
	for i, block := range blocks {
		chain[i] = block.Clone()
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = chain

	return nil
}

// LatestBlock returns the latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1].Clone()
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// GetBlock returns the block for the specified index, starting at 1.
func (db *Database) GetBlock(index uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if index == 0 || index > uint64(len(db.blocks)) {
		return Block{}, ErrBlockNotFound
	}

	return db.blocks[index-1].Clone(), nil
}

// Copy returns a copy of the full chain.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	for i, block := range db.blocks {
		blocks[i] = block.Clone()
	}

	return blocks
}
