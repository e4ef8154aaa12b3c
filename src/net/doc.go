// Package net implements the gossip wire protocol: the message variants,
// their hex-encoded binary codec, and the UDP transport that carries them.
// An in-memory transport allows nodes to be tested without touching the
// network.
package net
