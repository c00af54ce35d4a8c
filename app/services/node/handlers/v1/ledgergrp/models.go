package ledgergrp

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// newTx is what we require from clients when submitting a transaction.
// Presence of each key is what is validated, so the fields are pointers.
type newTx struct {
	Sender    *string  `json:"sender" validate:"required"`
	Recipient *string  `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

type newNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1"`
}

// =============================================================================

type message struct {
	Message string `json:"message"`
}

type mined struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type chain struct {
	Chain  []database.Block `json:"chain"`
	Length int              `json:"length"`
}

type nodes struct {
	Message    string   `json:"message,omitempty"`
	TotalNodes []string `json:"total_nodes"`
}

type replaced struct {
	Message  string           `json:"message"`
	NewChain []database.Block `json:"new_chain"`
}

type authoritative struct {
	Message string           `json:"message"`
	Chain   []database.Block `json:"chain"`
}

type pending struct {
	Transactions []database.Tx `json:"transactions"`
	Length       int           `json:"length"`
}

func toHosts(peers []peer.Peer) []string {
	hosts := make([]string, len(peers))
	for i, p := range peers {
		hosts[i] = p.Host
	}
	return hosts
}
