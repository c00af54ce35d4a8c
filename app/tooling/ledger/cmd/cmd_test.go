package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Send(t *testing.T) {
	var got map[string]any

	h := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transactions/new" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Your transaction will be added to block 2"}`))
	}
	srv := httptest.NewServer(http.HandlerFunc(h))
	defer srv.Close()

	t.Log("Given the need to submit a transaction from the command line.")
	{
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"send", "--url", srv.URL, "--from", "A", "--to", "B", "--amount", "10"})

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("\t%s\tShould be able to send the transaction : %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to send the transaction.", success)

		if got["sender"] != "A" || got["recipient"] != "B" || got["amount"] != float64(10) {
			t.Fatalf("\t%s\tShould post the transaction fields : %v", failed, got)
		}
		t.Logf("\t%s\tShould post the transaction fields.", success)

		if !strings.Contains(out.String(), "block 2") {
			t.Fatalf("\t%s\tShould print the node response : %s", failed, out.String())
		}
		t.Logf("\t%s\tShould print the node response.", success)
	}
}

func Test_CallError(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Nodes not found!"))
	}
	srv := httptest.NewServer(http.HandlerFunc(h))
	defer srv.Close()

	t.Log("Given the need to surface node errors.")
	{
		url = srv.URL

		var out bytes.Buffer
		err := call(&out, http.MethodPost, "/nodes/register", struct{}{})
		if err == nil || !strings.Contains(err.Error(), "Nodes not found!") {
			t.Fatalf("\t%s\tShould return the node error text : %v", failed, err)
		}
		t.Logf("\t%s\tShould return the node error text.", success)
	}
}
