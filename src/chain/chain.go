package chain

import (
	"math/big"

	"github.com/sirupsen/logrus"
)

// Chain owns the insertion and fork-choice logic over a Store. It is the sole
// mutator of the store; the node loop drives it from a single goroutine.
type Chain struct {
	store  Store
	logger *logrus.Entry
}

// NewChain wraps a store.
func NewChain(store Store, logger *logrus.Entry) *Chain {
	return &Chain{
		store:  store,
		logger: logger.WithField("component", "chain"),
	}
}

// Store returns the underlying store.
func (c *Chain) Store() Store {
	return c.store
}

// Tip returns the hash of the post with the greatest cumulative score.
func (c *Chain) Tip() Hash {
	return c.store.Tip()
}

// TipScore returns the cumulative score of the tip.
func (c *Chain) TipScore() *big.Int {
	score, ok := c.store.GetScore(c.store.Tip())
	if !ok {
		return new(big.Int)
	}
	return score
}

// GetPost returns a post by hash.
func (c *Chain) GetPost(hash Hash) (*Post, bool) {
	return c.store.GetPost(hash)
}

// AddPost ingests a post. The sender is advisory and only used for
// provenance logging.
//
// A post whose parent is unknown is buffered under the missing parent hash.
// Inserting a post drains the bucket of orphans that were waiting on it, so a
// single call can integrate a whole buffered subtree. The drain runs over an
// explicit work queue rather than recursively, to keep the call stack flat on
// long orphan chains.
//
// A strictly greater cumulative score moves the tip; on a tie the incumbent
// wins, so tip selection is deterministic in arrival order. Invariant
// violations (a parent without a score, a score summing past 2^256-1) are
// logged and the offending post skipped.
func (c *Chain) AddPost(sender string, post *Post) {
	queue := []*Post{post}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		hash := p.Hash()

		if _, ok := c.store.GetPost(hash); ok {
			c.logger.WithField("post", hash.Short()).Debug("Known post")
			continue
		}

		if _, ok := c.store.GetPost(p.Prev); !ok {
			c.store.AddPending(p.Prev, p)
			c.logger.WithFields(logrus.Fields{
				"post":    hash.Short(),
				"missing": p.Prev.Short(),
				"sender":  sender,
			}).Debug("Buffered orphan post")
			continue
		}

		if err := c.insert(hash, p); err != nil {
			c.logger.WithError(err).Error("Skipping post")
			continue
		}

		c.logger.WithFields(logrus.Fields{
			"post":   hash.Short(),
			"sender": sender,
		}).Debug("Inserted post")

		queue = append(queue, c.store.TakePending(hash)...)
	}
}

// insert links an already-hashed post whose parent is known to be present.
func (c *Chain) insert(hash Hash, post *Post) error {
	prevScore, ok := c.store.GetScore(post.Prev)
	if !ok {
		return NewInvariantErr(NoParentScore, hash)
	}

	score := new(big.Int).Add(prevScore, LocalScore(hash))
	if score.Cmp(maxScore) > 0 {
		return NewInvariantErr(ScoreOverflow, hash)
	}

	c.store.SetPost(hash, post)
	c.store.SetScore(hash, score)
	c.store.AddChild(post.Prev, hash)

	if betterScore(score, c.TipScore()) {
		c.store.SetTip(hash)
	}

	return nil
}

// betterScore is the fork-choice comparison: a candidate only displaces the
// tip with a strictly greater cumulative score. Ties keep the incumbent.
func betterScore(candidate, tip *big.Int) bool {
	return candidate.Cmp(tip) > 0
}

// Canonical returns the chain from genesis to tip inclusive, by walking Prev
// pointers from the tip and reversing. A tip that is missing from the store
// is impossible under the invariants; it yields an empty sequence.
func (c *Chain) Canonical() []*Post {
	reversed := []*Post{}

	hash := c.store.Tip()
	for {
		post, ok := c.store.GetPost(hash)
		if !ok {
			return []*Post{}
		}
		reversed = append(reversed, post)
		if hash == ZeroHash {
			break
		}
		hash = post.Prev
	}

	canonical := make([]*Post, len(reversed))
	for i, post := range reversed {
		canonical[len(reversed)-1-i] = post
	}

	return canonical
}
