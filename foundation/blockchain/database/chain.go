package database

import (
	"errors"
	"fmt"
)

// ErrEmptyChain is returned when a chain with no blocks is validated.
var ErrEmptyChain = errors.New("chain has no blocks")

// =============================================================================

// ValidateBlock takes a block and validates it to be the next block after
// the previous block.
func (b Block) ValidateBlock(previousBlock Block, difficulty int) error {
	nextIndex := previousBlock.Index + 1
	if b.Index != nextIndex {
		return fmt.Errorf("this block is not the next index, got %d, exp %d", b.Index, nextIndex)
	}

	if hash := previousBlock.Hash(); b.PreviousHash != hash {
		return fmt.Errorf("previous block hash doesn't match our known previous block, got %s, exp %s", b.PreviousHash, hash)
	}

	if !IsValidProof(difficulty, previousBlock.Proof, b.Proof) {
		return fmt.Errorf("block %d proof %d does not solve last proof %d", b.Index, b.Proof, previousBlock.Proof)
	}

	return nil
}

// ValidateChain walks the chain and checks the genesis block, the index
// sequence, the hash linkage and the proof of every block.
func ValidateChain(chain []Block, difficulty int) error {
	if len(chain) == 0 {
		return ErrEmptyChain
	}

	genesis := chain[0]
	if genesis.Index != 1 || genesis.PreviousHash != GenesisPreviousHash {
		return fmt.Errorf("invalid genesis block, index %d, previous hash %q", genesis.Index, genesis.PreviousHash)
	}

	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateBlock(chain[i-1], difficulty); err != nil {
			return fmt.Errorf("block %d: %w", i+1, err)
		}
	}

	return nil
}
