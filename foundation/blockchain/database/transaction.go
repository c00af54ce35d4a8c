package database

import "fmt"

// RewardSender is the sender account used for the mining reward. It
// represents value created by the node instead of moved between accounts.
const RewardSender = "0"

// RewardAmount is the amount credited to the miner for each mined block.
const RewardAmount = 1

// =============================================================================

// Tx is the transactional information between two parties. Account strings
// are not validated and the transaction carries no signature.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// NewRewardTx constructs the transaction that credits the miner of
// a block.
func NewRewardTx(minerID string) Tx {
	return NewTx(RewardSender, minerID, RewardAmount)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%s", tx.Sender, tx.Recipient, formatAmount(tx.Amount))
}
