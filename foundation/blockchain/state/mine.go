package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// MineNewBlock solves the proof of work for the latest block, credits the
// miner with the reward transaction and seals the mempool into a new block.
// The search runs without the lock so transactions can keep arriving, and
// those are included in the block. If the chain moves while searching,
// the search starts over against the new latest block.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: started")
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	for {
		s.mu.Lock()
		latestBlock := s.db.LatestBlock()
		s.mu.Unlock()

		s.evHandler("state: MineNewBlock: MINING: perform POW: block[%d]: lastProof[%d]", latestBlock.Index, latestBlock.Proof)

		proof, err := database.ProofOfWork(ctx, s.difficulty, latestBlock.Proof, s.evHandler)
		if err != nil {
			return database.Block{}, err
		}

		s.mu.Lock()

		// Another block landed while we were searching. The proof no longer
		// follows the latest block.
		if s.db.LatestBlock().Index != latestBlock.Index {
			s.mu.Unlock()
			s.evHandler("state: MineNewBlock: MINING: chain moved: restarting")
			continue
		}

		s.submitTransaction(database.NewRewardTx(s.minerID))
		block := s.createBlock(proof, "")

		s.mu.Unlock()

		return block, nil
	}
}
