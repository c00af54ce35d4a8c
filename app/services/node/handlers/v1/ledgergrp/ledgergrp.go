// Package ledgergrp maintains the group of handlers for the ledger routes.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Set of error messages clients match on.
var (
	ErrMissingFields = errors.New("require: sender, recipient, amount")
	ErrMissingNodes  = errors.New("Nodes not found!")
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// NewTransaction adds a new transaction to the pending pool.
func (h Handlers) NewTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nt newTx
	if err := web.Decode(r, &nt); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(nt); err != nil {
		h.Log.Infow("new transaction", "traceid", v.TraceID, "fields", validate.GetFieldErrors(err).Fields())
		return errs.NewTrusted(ErrMissingFields, http.StatusBadRequest)
	}

	tx := database.NewTx(*nt.Sender, *nt.Recipient, *nt.Amount)
	index := h.State.SubmitTransaction(tx)

	h.Log.Infow("new transaction", "traceid", v.TraceID, "tx", tx, "block", index)

	resp := message{
		Message: fmt.Sprintf("Your transaction will be added to block %d", index),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine runs the proof of work, rewards this node and forges a new block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.MineNewBlock(ctx)
	if err != nil {
		return fmt.Errorf("mining: %w", err)
	}

	metrics.AddMined(ctx)

	resp := mined{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns the full chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	resp := chain{
		Chain:  blocks,
		Length: len(blocks),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterNodes adds the network location of each address to the set of
// known peers.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nn newNodes
	if err := web.Decode(r, &nn); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(nn); err != nil {
		h.Log.Infow("register nodes", "traceid", v.TraceID, "fields", validate.GetFieldErrors(err).Fields())
		return errs.NewTrusted(ErrMissingNodes, http.StatusBadRequest)
	}

	if _, err := h.State.RegisterPeers(nn.Nodes); err != nil {
		if errors.Is(err, peer.ErrInvalidAddress) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("register nodes: %w", err)
	}

	resp := nodes{
		Message:    "New node added",
		TotalNodes: toHosts(h.State.RetrieveKnownPeers()),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Nodes returns the set of known peers.
func (h Handlers) Nodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := nodes{
		TotalNodes: toHosts(h.State.RetrieveKnownPeers()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Resolve asks every known peer for its chain and adopts the longest valid
// one when it is longer than ours.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ok, err := h.State.SyncWithPeers(ctx)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	if ok {
		resp := replaced{
			Message:  "Our chain was replaced",
			NewChain: h.State.RetrieveChain(),
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	resp := authoritative{
		Message: "Our chain is authoritative",
		Chain:   h.State.RetrieveChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Pending returns the transactions waiting for the next block.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	trans := h.State.RetrieveMempool()

	resp := pending{
		Transactions: trans,
		Length:       len(trans),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
