package peers

import "fmt"

// Seed ports of the default local network.
const (
	seedHost      = "127.0.0.1"
	seedPortFirst = 42000
	seedPortCount = 4
)

// DefaultSeedPeers returns the hardcoded peer seed list,
// 127.0.0.1:{42000..42003}. Peer discovery is future work; until then every
// node starts from this list (or from peers.json).
func DefaultSeedPeers() []*Peer {
	peers := make([]*Peer, seedPortCount)
	for i := 0; i < seedPortCount; i++ {
		peers[i] = NewPeer(fmt.Sprintf("%s:%d", seedHost, seedPortFirst+i))
	}
	return peers
}
