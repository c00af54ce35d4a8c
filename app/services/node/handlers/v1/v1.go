// Package v1 contains the full set of handler functions and routes
// supported by the ledger web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/eventgrp"
	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// The ledger routes are served at the root of the host, clients address
// them without a version prefix.
const group = ""

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// Routes binds all the ledger routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, group, "/transactions/new", lgh.NewTransaction)
	app.Handle(http.MethodGet, group, "/transactions/pending", lgh.Pending)
	app.Handle(http.MethodGet, group, "/mine", lgh.Mine)
	app.Handle(http.MethodGet, group, "/chain", lgh.Chain)
	app.Handle(http.MethodPost, group, "/nodes/register", lgh.RegisterNodes)
	app.Handle(http.MethodGet, group, "/nodes/resolve", lgh.Resolve)
	app.Handle(http.MethodGet, group, "/nodes", lgh.Nodes)

	if cfg.Evts != nil {
		evh := eventgrp.Handlers{
			Log:  cfg.Log,
			Evts: cfg.Evts,
		}
		app.Handle(http.MethodGet, group, "/events", evh.Events)
	}
}
