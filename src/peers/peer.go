package peers

import (
	"github.com/workpost-net/workpost/src/net"
)

// Peer is a gossip counterpart. Peers carry no state beyond their endpoint;
// there is no authentication.
type Peer struct {
	NetAddr string
}

// NewPeer creates a peer from an ip:port endpoint.
func NewPeer(netAddr string) *Peer {
	return &Peer{
		NetAddr: netAddr,
	}
}

// String returns the peer's endpoint.
func (p *Peer) String() string {
	return p.NetAddr
}

// FromEndpoint parses the source endpoint of a datagram into a Peer. A
// malformed endpoint (not IPv4, out-of-range octet or port) is rejected and
// the caller drops the datagram.
func FromEndpoint(endpoint string) (*Peer, error) {
	addr, err := net.ParseAddr(endpoint)
	if err != nil {
		return nil, err
	}

	return NewPeer(addr.String()), nil
}

// ExcludePeer removes a single endpoint from a list of peers. It is used to
// keep a node out of its own peer list.
func ExcludePeer(peers []*Peer, netAddr string) []*Peer {
	otherPeers := make([]*Peer, 0, len(peers))
	for _, p := range peers {
		if p.NetAddr != netAddr {
			otherPeers = append(otherPeers, p)
		}
	}
	return otherPeers
}
