package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/jpillora/backoff"
)

const baseURL = "http://%s"

// maxAttempts is the number of times a peer is asked before giving up.
const maxAttempts = 3

// =============================================================================

// NetRequestPeerChain asks the peer for its full chain. Failed requests are
// retried with a jittered exponential backoff.
func (s *State) NetRequestPeerChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	s.evHandler("state: NetRequestPeerChain: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerChain: completed: %s", pr)

	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	b := backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var resp struct {
		Chain  []database.Block `json:"chain"`
		Length int              `json:"length"`
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = send(ctx, http.MethodGet, url, nil, &resp); err == nil {
			break
		}

		s.evHandler("state: NetRequestPeerChain: peer[%s]: attempt[%d]: WARNING: %s", pr, attempt, err)
		if attempt == maxAttempts {
			return nil, err
		}

		select {
		case <-time.After(b.Duration()):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if resp.Length != len(resp.Chain) {
		return nil, fmt.Errorf("peer %s reported length %d for %d blocks", pr, resp.Length, len(resp.Chain))
	}

	s.evHandler("state: NetRequestPeerChain: peer[%s]: length[%d]", pr, len(resp.Chain))

	return resp.Chain, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(ctx context.Context, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader
	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	var client http.Client
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(string(msg))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
