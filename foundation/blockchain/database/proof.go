package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// DefaultDifficulty is the number of leading zeros a proof hash must have.
const DefaultDifficulty = 4

// ctxCheckInterval is how often the proof search looks for cancellation.
const ctxCheckInterval = 1024

// =============================================================================

// ProofOfWork performs the work of mining to find the smallest proof that
// solves the puzzle for the specified last proof. The search starts at 0
// and runs until a solution is found or the context is cancelled.
func ProofOfWork(ctx context.Context, difficulty int, lastProof uint64, ev func(v string, args ...any)) (uint64, error) {
	ev("database: ProofOfWork: MINING: started: lastProof[%d]", lastProof)
	defer ev("database: ProofOfWork: MINING: completed")

	var proof uint64
	for {
		if proof%ctxCheckInterval == 0 && ctx.Err() != nil {
			ev("database: ProofOfWork: MINING: CANCELLED: attempts[%d]", proof)
			return 0, ctx.Err()
		}

		if IsValidProof(difficulty, lastProof, proof) {
			ev("database: ProofOfWork: MINING: SOLVED: proof[%d]", proof)
			return proof, nil
		}

		proof++
	}
}

// IsValidProof checks the hash of "<lastProof><proof>" to make sure it
// complies with the proof of work rules. We need to match a difficulty
// number of leading 0's in the hex digest.
func IsValidProof(difficulty int, lastProof uint64, proof uint64) bool {
	guess := make([]byte, 0, 40)
	guess = strconv.AppendUint(guess, lastProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)

	hash := sha256.Sum256(guess)
	return isHashSolved(difficulty, hex.EncodeToString(hash[:]))
}

// isHashSolved checks the hash starts with a difficulty number of 0's.
func isHashSolved(difficulty int, hash string) bool {
	if difficulty < 0 || difficulty > len(hash) {
		return false
	}

	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}
