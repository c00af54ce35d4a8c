package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ResolveConflicts applies the longest chain rule. The longest valid chain
// that is strictly longer than ours replaces our chain. It reports whether
// our chain was replaced. Pending transactions stay in the mempool.
func (s *State) ResolveConflicts(chains [][]database.Block) bool {
	s.evHandler("state: ResolveConflicts: started: candidates[%d]", len(chains))
	defer s.evHandler("state: ResolveConflicts: completed")

	var best []database.Block
	for i, chain := range chains {
		if len(chain) <= len(best) {
			continue
		}

		if err := database.ValidateChain(chain, s.difficulty); err != nil {
			s.evHandler("state: ResolveConflicts: candidate[%d]: WARNING: %s", i, err)
			continue
		}

		best = chain
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(best) <= s.db.Length() {
		s.evHandler("state: ResolveConflicts: our chain is authoritative: length[%d]", s.db.Length())
		return false
	}

	if err := s.db.Replace(best); err != nil {
		s.evHandler("state: ResolveConflicts: ERROR: %s", err)
		return false
	}

	s.evHandler("state: ResolveConflicts: chain replaced: length[%d]", len(best))

	return true
}

// SyncWithPeers asks every known peer for its chain and resolves conflicts
// against the chains that could be retrieved. Peers that can't be reached
// are skipped.
func (s *State) SyncWithPeers(ctx context.Context) (bool, error) {
	s.evHandler("state: SyncWithPeers: started")
	defer s.evHandler("state: SyncWithPeers: completed")

	s.mu.Lock()
	peers := s.knownPeers.Copy(s.host)
	s.mu.Unlock()

	var chains [][]database.Block
	for _, pr := range peers {
		chain, err := s.NetRequestPeerChain(ctx, pr)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}

			s.evHandler("state: SyncWithPeers: peer[%s]: WARNING: %s", pr, err)
			continue
		}

		chains = append(chains, chain)
	}

	return s.ResolveConflicts(chains), nil
}
