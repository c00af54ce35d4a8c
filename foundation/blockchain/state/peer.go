package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RegisterPeer parses the address and adds its network location to the set
// of known peers.
func (s *State) RegisterPeer(address string) (peer.Peer, error) {
	peers, err := s.RegisterPeers([]string{address})
	if err != nil {
		return peer.Peer{}, err
	}

	return peers[0], nil
}

// RegisterPeers parses every address before adding any of them, so a bad
// address leaves the set of known peers untouched.
func (s *State) RegisterPeers(addresses []string) ([]peer.Peer, error) {
	peers := make([]peer.Peer, len(addresses))
	for i, address := range addresses {
		p, err := peer.Parse(address)
		if err != nil {
			return nil, err
		}
		peers[i] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range peers {
		if s.knownPeers.Add(p) {
			s.evHandler("state: RegisterPeers: added peer[%s]", p)
		}
	}

	return peers, nil
}
