package net

import (
	"github.com/workpost-net/workpost/src/chain"
)

// MsgType is the 1-byte wire tag of a message. Tags must be stable across all
// nodes on a network.
type MsgType byte

const (
	// PingMsg solicits a Pong from a peer.
	PingMsg MsgType = iota
	// PongMsg answers a Ping.
	PongMsg
	// GetTipMsg asks a peer for its current tip.
	GetTipMsg
	// RequestPostMsg asks a peer for the post with a given hash.
	RequestPostMsg
	// SharePostMsg carries a full post.
	SharePostMsg
)

// String returns the message name used in dispatch logs.
func (t MsgType) String() string {
	switch t {
	case PingMsg:
		return "Ping"
	case PongMsg:
		return "Pong"
	case GetTipMsg:
		return "GetTip"
	case RequestPostMsg:
		return "RequestPost"
	case SharePostMsg:
		return "SharePost"
	default:
		return "Unknown"
	}
}

// Message is the tagged union gossiped between nodes. Hash is only meaningful
// for RequestPost, Post only for SharePost.
type Message struct {
	Type MsgType
	Hash chain.Hash
	Post *chain.Post
}

// Ping builds a Ping message.
func Ping() Message {
	return Message{Type: PingMsg}
}

// Pong builds a Pong message.
func Pong() Message {
	return Message{Type: PongMsg}
}

// GetTip builds a GetTip message.
func GetTip() Message {
	return Message{Type: GetTipMsg}
}

// RequestPost builds a RequestPost message for the given hash.
func RequestPost(hash chain.Hash) Message {
	return Message{Type: RequestPostMsg, Hash: hash}
}

// SharePost builds a SharePost message carrying the given post.
func SharePost(post *chain.Post) Message {
	return Message{Type: SharePostMsg, Post: post}
}
