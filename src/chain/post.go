package chain

import (
	"encoding/hex"
	"math/big"

	"github.com/workpost-net/workpost/src/crypto"
)

// Sizes of the fixed-width pieces of a post. A post is 32 body words plus a
// work word plus the parent hash, 1088 bytes in total.
const (
	WordSize  = 32
	BodyWords = 32
	BodySize  = BodyWords * WordSize
	HashSize  = 32
	PostSize  = BodySize + WordSize + HashSize
)

// Word is a 256-bit big-endian value.
type Word [WordSize]byte

// Body is the opaque 1024-byte payload of a post.
type Body [BodyWords]Word

// Hash is the Keccak-256 content address of a post. The zero Hash is reserved
// for the genesis post.
type Hash [HashSize]byte

// ZeroHash is the address of the genesis post and the Prev of its direct
// successors.
var ZeroHash = Hash{}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns an abbreviated hex representation for logging.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:4])
}

// Big interprets the hash as an unsigned 256-bit integer.
func (h Hash) Big() *big.Int {
	return new(big.Int).SetBytes(h[:])
}

// HashFromBytes converts a 32-byte slice into a Hash. Short input is
// left-padded with zeroes, long input is truncated to the low-order bytes.
func HashFromBytes(b []byte) Hash {
	var h Hash
	if len(b) > HashSize {
		b = b[len(b)-HashSize:]
	}
	copy(h[HashSize-len(b):], b)
	return h
}

// Post is the unit of gossip and chain linkage: an opaque payload, a mined
// work word, and the hash of the preceding post. Posts are immutable once
// inserted in a store.
type Post struct {
	Body Body
	Work Word
	Prev Hash
}

// Hash computes the content address of the post: Keccak-256 over the 32 body
// words followed by the work word and the parent hash, each encoded as a
// 32-byte big-endian word.
func (p *Post) Hash() Hash {
	buf := make([]byte, 0, PostSize)
	for i := 0; i < BodyWords; i++ {
		buf = append(buf, p.Body[i][:]...)
	}
	buf = append(buf, p.Work[:]...)
	buf = append(buf, p.Prev[:]...)

	return HashFromBytes(crypto.Keccak256(buf))
}

// Genesis returns the synthetic zero post that seeds every store. It is keyed
// under ZeroHash with score zero; its content hash is never computed.
func Genesis() *Post {
	return &Post{}
}

var (
	// maxScore is 2^256 - 1, the cap on cumulative scores.
	maxScore = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	// scoreNumerator is 2^256, the dividend of the local score estimator.
	scoreNumerator = new(big.Int).Lsh(big.NewInt(1), 256)
)

// MaxScore returns 2^256 - 1, the largest representable score.
func MaxScore() *big.Int {
	return new(big.Int).Set(maxScore)
}

// LocalScore is the expected-attempt estimator floor(2^256 / h): a smaller
// hash implies more work. The zero hash maps to the maximum representable
// score and only occurs for genesis.
func LocalScore(h Hash) *big.Int {
	hInt := h.Big()
	if hInt.Sign() == 0 {
		return MaxScore()
	}
	return new(big.Int).Div(scoreNumerator, hInt)
}
