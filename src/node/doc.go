// Package node ties a chain to a transport: a single cooperative loop drains
// the inbox, applies each message to the chain, answers peers, and gossips.
package node
