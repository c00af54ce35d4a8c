package ledgergrp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"go.uber.org/zap/zaptest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const minerID = "d4ee26eee15148ee92c6cd394edd974e"

type ledgerTests struct {
	app   http.Handler
	state *state.State
}

func newLedgerTests(t *testing.T) *ledgerTests {
	log := zaptest.NewLogger(t).Sugar()

	st := state.New(state.Config{
		MinerID:    minerID,
		Host:       "localhost:5000",
		Difficulty: database.DefaultDifficulty,
	})

	app := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      log,
		State:    st,
	})

	return &ledgerTests{
		app:   app,
		state: st,
	}
}

func (lt *ledgerTests) do(method string, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	switch body {
	case "":
		r = httptest.NewRequest(method, path, nil)
	default:
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	lt.app.ServeHTTP(w, r)

	return w
}

// =============================================================================

func Test_Ledger(t *testing.T) {
	lt := newLedgerTests(t)

	t.Run("newTransaction", lt.newTransaction)
	t.Run("newTransactionErrors", lt.newTransactionErrors)
	t.Run("pending", lt.pending)
	t.Run("mine", lt.mine)
	t.Run("chain", lt.chain)
	t.Run("registerNodes", lt.registerNodes)
	t.Run("registerNodesErrors", lt.registerNodesErrors)
	t.Run("resolve", lt.resolve)
}

func (lt *ledgerTests) newTransaction(t *testing.T) {
	t.Log("Given the need to submit a transaction.")
	{
		w := lt.do(http.MethodPost, "/transactions/new", `{"sender": "A", "recipient": "B", "amount": 10}`)
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the response : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 200 for the response.", success)

		var got struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response : %v", failed, err)
		}

		if exp := "Your transaction will be added to block 2"; got.Message != exp {
			t.Logf("\t\tgot: %s", got.Message)
			t.Logf("\t\texp: %s", exp)
			t.Fatalf("\t%s\tShould get the predicted block index.", failed)
		}
		t.Logf("\t%s\tShould get the predicted block index.", success)
	}
}

func (lt *ledgerTests) newTransactionErrors(t *testing.T) {
	tt := []struct {
		name   string
		body   string
		status int
		text   string
	}{
		{"missing amount", `{"sender": "A", "recipient": "B"}`, http.StatusBadRequest, ledgergrp.ErrMissingFields.Error()},
		{"missing all", `{}`, http.StatusBadRequest, ledgergrp.ErrMissingFields.Error()},
		{"malformed", `{"sender": "A",`, http.StatusBadRequest, ""},
		{"amount not a number", `{"sender": "A", "recipient": "B", "amount": "ten"}`, http.StatusBadRequest, ""},
	}

	t.Log("Given the need to reject incomplete transactions.")
	{
		for testID, test := range tt {
			tf := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling %s.", testID, test.name)
				{
					w := lt.do(http.MethodPost, "/transactions/new", test.body)
					if w.Code != test.status {
						t.Fatalf("\t%s\tTest %d:\tShould receive a status code of %d : %v", failed, testID, test.status, w.Code)
					}
					t.Logf("\t%s\tTest %d:\tShould receive a status code of %d.", success, testID, test.status)

					if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
						t.Fatalf("\t%s\tTest %d:\tShould respond with plain text : %s", failed, testID, ct)
					}

					if test.text != "" && w.Body.String() != test.text {
						t.Logf("\t\tTest %d:\tgot: %s", testID, w.Body.String())
						t.Logf("\t\tTest %d:\texp: %s", testID, test.text)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected text.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected text.", success, testID)
				}
			}

			t.Run(test.name, tf)
		}

		if n := len(lt.state.RetrieveMempool()); n != 1 {
			t.Fatalf("\t%s\tShould not add rejected transactions, got %d pending.", failed, n)
		}
		t.Logf("\t%s\tShould not add rejected transactions.", success)
	}
}

func (lt *ledgerTests) pending(t *testing.T) {
	t.Log("Given the need to see the pending transactions.")
	{
		w := lt.do(http.MethodGet, "/transactions/pending", "")
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the response : %v", failed, w.Code)
		}

		var got struct {
			Transactions []database.Tx `json:"transactions"`
			Length       int           `json:"length"`
		}
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response : %v", failed, err)
		}

		if got.Length != 1 || got.Transactions[0] != database.NewTx("A", "B", 10) {
			t.Fatalf("\t%s\tShould get the submitted transaction : %+v", failed, got)
		}
		t.Logf("\t%s\tShould get the submitted transaction.", success)
	}
}

func (lt *ledgerTests) mine(t *testing.T) {
	t.Log("Given the need to forge a new block.")
	{
		genesis := lt.state.RetrieveLatestBlock()

		w := lt.do(http.MethodGet, "/mine", "")
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the response : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 200 for the response.", success)

		var got struct {
			Message      string        `json:"message"`
			Index        uint64        `json:"index"`
			Transactions []database.Tx `json:"transactions"`
			Proof        uint64        `json:"proof"`
			PreviousHash string        `json:"previous_hash"`
		}
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response : %v", failed, err)
		}

		if got.Message != "New Block Forged" || got.Index != 2 {
			t.Fatalf("\t%s\tShould forge block 2 : %+v", failed, got)
		}
		t.Logf("\t%s\tShould forge block 2.", success)

		exp := []database.Tx{
			database.NewTx("A", "B", 10),
			database.NewRewardTx(minerID),
		}
		if len(got.Transactions) != 2 || got.Transactions[0] != exp[0] || got.Transactions[1] != exp[1] {
			t.Fatalf("\t%s\tShould seal the transaction and the reward : %v", failed, got.Transactions)
		}
		t.Logf("\t%s\tShould seal the transaction and the reward.", success)

		if got.PreviousHash != genesis.Hash() {
			t.Fatalf("\t%s\tShould link to the genesis block.", failed)
		}
		t.Logf("\t%s\tShould link to the genesis block.", success)

		if !database.IsValidProof(database.DefaultDifficulty, genesis.Proof, got.Proof) {
			t.Fatalf("\t%s\tShould have a valid proof : %d", failed, got.Proof)
		}
		t.Logf("\t%s\tShould have a valid proof.", success)
	}
}

func (lt *ledgerTests) chain(t *testing.T) {
	t.Log("Given the need to read the full chain.")
	{
		w := lt.do(http.MethodGet, "/chain", "")
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the response : %v", failed, w.Code)
		}

		var got struct {
			Chain  []database.Block `json:"chain"`
			Length int              `json:"length"`
		}
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response : %v", failed, err)
		}

		if got.Length != 2 || len(got.Chain) != 2 {
			t.Fatalf("\t%s\tShould have a chain length of 2 : %d", failed, got.Length)
		}
		t.Logf("\t%s\tShould have a chain length of 2.", success)

		if err := database.ValidateChain(got.Chain, database.DefaultDifficulty); err != nil {
			t.Fatalf("\t%s\tShould serve a chain that validates after decoding : %v", failed, err)
		}
		t.Logf("\t%s\tShould serve a chain that validates after decoding.", success)

		if !strings.Contains(lt.do(http.MethodGet, "/chain", "").Body.String(), `"transactions":[]`) {
			t.Fatalf("\t%s\tShould render an empty transaction list as [].", failed)
		}
		t.Logf("\t%s\tShould render an empty transaction list as [].", success)
	}
}

func (lt *ledgerTests) registerNodes(t *testing.T) {
	t.Log("Given the need to register peers.")
	{
		w := lt.do(http.MethodPost, "/nodes/register", `{"nodes": ["http://localhost:5001", "http://localhost:5001/extra/path"]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("\t%s\tShould receive a status code of 201 for the response : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 201 for the response.", success)

		var got struct {
			Message    string   `json:"message"`
			TotalNodes []string `json:"total_nodes"`
		}
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response : %v", failed, err)
		}

		if got.Message != "New node added" || len(got.TotalNodes) != 1 || got.TotalNodes[0] != "localhost:5001" {
			t.Fatalf("\t%s\tShould have a single peer localhost:5001 : %+v", failed, got)
		}
		t.Logf("\t%s\tShould have a single peer localhost:5001.", success)

		w = lt.do(http.MethodGet, "/nodes", "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total_nodes":["localhost:5001"]`) {
			t.Fatalf("\t%s\tShould list the known peers : %s", failed, w.Body.String())
		}
		t.Logf("\t%s\tShould list the known peers.", success)
	}
}

func (lt *ledgerTests) registerNodesErrors(t *testing.T) {
	tt := []struct {
		name string
		body string
		text string
	}{
		{"missing nodes", `{}`, ledgergrp.ErrMissingNodes.Error()},
		{"empty nodes", `{"nodes": []}`, ledgergrp.ErrMissingNodes.Error()},
		{"invalid address", `{"nodes": ["http://localhost:5002", "http://"]}`, ""},
	}

	t.Log("Given the need to reject bad peer registrations.")
	{
		for testID, test := range tt {
			tf := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling %s.", testID, test.name)
				{
					w := lt.do(http.MethodPost, "/nodes/register", test.body)
					if w.Code != http.StatusBadRequest {
						t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 400 : %v", failed, testID, w.Code)
					}
					t.Logf("\t%s\tTest %d:\tShould receive a status code of 400.", success, testID)

					if test.text != "" && w.Body.String() != test.text {
						t.Logf("\t\tTest %d:\tgot: %s", testID, w.Body.String())
						t.Logf("\t\tTest %d:\texp: %s", testID, test.text)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected text.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected text.", success, testID)
				}
			}

			t.Run(test.name, tf)
		}

		if n := len(lt.state.RetrieveKnownPeers()); n != 1 {
			t.Fatalf("\t%s\tShould leave the peer set untouched, got %d peers.", failed, n)
		}
		t.Logf("\t%s\tShould leave the peer set untouched.", success)
	}
}

func (lt *ledgerTests) resolve(t *testing.T) {
	t.Log("Given the need to resolve conflicts with unreachable peers.")
	{
		// The registered peer localhost:5001 is not listening.
		w := lt.do(http.MethodGet, "/nodes/resolve", "")
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the response : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 200 for the response.", success)

		var got struct {
			Message string           `json:"message"`
			Chain   []database.Block `json:"chain"`
		}
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the response : %v", failed, err)
		}

		if got.Message != "Our chain is authoritative" || len(got.Chain) != 2 {
			t.Fatalf("\t%s\tShould keep our chain : %+v", failed, got)
		}
		t.Logf("\t%s\tShould keep our chain.", success)
	}
}
