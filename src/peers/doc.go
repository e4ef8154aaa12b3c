// Package peers defines the gossip counterparts of a node: the peer model,
// the hardcoded seed list, and an optional peers.json store.
package peers
