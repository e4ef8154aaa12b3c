package chain

import "math/big"

// InmemStore implements the Store interface with plain in-memory maps. Every
// restart begins from genesis; there is no persistence layer.
type InmemStore struct {
	posts    map[Hash]*Post
	children map[Hash][]Hash
	pending  map[Hash][]*Post
	scores   map[Hash]*big.Int
	tip      Hash
}

// NewInmemStore creates an InmemStore pre-loaded with the genesis post under
// ZeroHash, with score zero and no children.
func NewInmemStore() *InmemStore {
	store := &InmemStore{
		posts:    make(map[Hash]*Post),
		children: make(map[Hash][]Hash),
		pending:  make(map[Hash][]*Post),
		scores:   make(map[Hash]*big.Int),
		tip:      ZeroHash,
	}

	store.posts[ZeroHash] = Genesis()
	store.scores[ZeroHash] = new(big.Int)

	return store
}

// GetPost implements the Store interface.
func (s *InmemStore) GetPost(hash Hash) (*Post, bool) {
	post, ok := s.posts[hash]
	return post, ok
}

// SetPost implements the Store interface.
func (s *InmemStore) SetPost(hash Hash, post *Post) {
	s.posts[hash] = post
}

// PostCount implements the Store interface.
func (s *InmemStore) PostCount() int {
	return len(s.posts)
}

// Children implements the Store interface.
func (s *InmemStore) Children(hash Hash) []Hash {
	return s.children[hash]
}

// AddChild implements the Store interface. The newest child goes first.
func (s *InmemStore) AddChild(parent, child Hash) {
	s.children[parent] = append([]Hash{child}, s.children[parent]...)
}

// GetScore implements the Store interface.
func (s *InmemStore) GetScore(hash Hash) (*big.Int, bool) {
	score, ok := s.scores[hash]
	return score, ok
}

// SetScore implements the Store interface.
func (s *InmemStore) SetScore(hash Hash, score *big.Int) {
	s.scores[hash] = score
}

// Tip implements the Store interface.
func (s *InmemStore) Tip() Hash {
	return s.tip
}

// SetTip implements the Store interface.
func (s *InmemStore) SetTip(hash Hash) {
	s.tip = hash
}

// AddPending implements the Store interface. A post that is already buffered
// under the same parent is not buffered twice.
func (s *InmemStore) AddPending(parent Hash, post *Post) {
	hash := post.Hash()
	for _, waiting := range s.pending[parent] {
		if waiting.Hash() == hash {
			return
		}
	}
	s.pending[parent] = append(s.pending[parent], post)
}

// TakePending implements the Store interface. The bucket is consumed.
func (s *InmemStore) TakePending(hash Hash) []*Post {
	bucket := s.pending[hash]
	delete(s.pending, hash)
	return bucket
}

// PendingCount implements the Store interface.
func (s *InmemStore) PendingCount() int {
	count := 0
	for _, bucket := range s.pending {
		count += len(bucket)
	}
	return count
}
