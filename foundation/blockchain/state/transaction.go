package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// SubmitTransaction adds a new transaction to the mempool and returns the
// index of the block the transaction is expected to be sealed in. The value
// is a prediction: other transactions or blocks may land first.
func (s *State) SubmitTransaction(tx database.Tx) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.submitTransaction(tx)
}

// submitTransaction performs the work of SubmitTransaction. The caller
// must hold the lock.
func (s *State) submitTransaction(tx database.Tx) uint64 {
	n := s.mempool.Append(tx)
	index := s.db.LatestBlock().Index + 1

	s.evHandler("state: SubmitTransaction: tx[%s]: pending[%d]: block[%d]", tx, n, index)

	return index
}
