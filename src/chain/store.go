package chain

import "math/big"

// Store is an interface for backend stores holding the raw chain tables. The
// fork-choice and insertion logic lives in Chain, which is the only writer.
type Store interface {
	// GetPost returns a post by hash.
	GetPost(hash Hash) (*Post, bool)
	// SetPost inserts a post under its hash.
	SetPost(hash Hash, post *Post)
	// PostCount returns the number of known posts, genesis included.
	PostCount() int
	// Children returns the successors of a post, newest first.
	Children(hash Hash) []Hash
	// AddChild prepends a successor to a post's child list.
	AddChild(parent, child Hash)
	// GetScore returns the cumulative score of a post.
	GetScore(hash Hash) (*big.Int, bool)
	// SetScore records the cumulative score of a post.
	SetScore(hash Hash, score *big.Int)
	// Tip returns the hash of the post with the greatest cumulative score.
	Tip() Hash
	// SetTip moves the tip.
	SetTip(hash Hash)
	// AddPending buffers an orphan under its missing parent hash. Buckets
	// are deduplicated by post hash.
	AddPending(parent Hash, post *Post)
	// TakePending removes and returns the bucket of orphans waiting on a
	// hash, in bucket insertion order.
	TakePending(hash Hash) []*Post
	// PendingCount returns the number of buffered orphans across buckets.
	PendingCount() int
}
