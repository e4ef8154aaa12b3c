package chain

import "math/big"

// Mine increments the post's work word until the post's hash reaches the
// target local score, or the attempt budget runs out. It returns the hash of
// the final attempt and whether the target was met.
//
// The store accepts whatever work value arrives on the wire; Mine is the
// producer side of that contract, run outside the chain algorithm.
func Mine(post *Post, target *big.Int, budget uint64) (Hash, bool) {
	hash := post.Hash()

	for attempt := uint64(0); ; attempt++ {
		if LocalScore(hash).Cmp(target) >= 0 {
			return hash, true
		}
		if attempt >= budget {
			return hash, false
		}
		incWord(&post.Work)
		hash = post.Hash()
	}
}

// incWord increments a 256-bit big-endian word in place, wrapping at 2^256.
func incWord(w *Word) {
	for i := WordSize - 1; i >= 0; i-- {
		w[i]++
		if w[i] != 0 {
			return
		}
	}
}
