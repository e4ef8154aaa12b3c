package chain

import (
	"math/big"
	"testing"
)

func TestMine(t *testing.T) {
	t.Run("reaches an easy target", func(t *testing.T) {
		p := makePost(ZeroHash, 1)

		hash, ok := Mine(p, big.NewInt(2), 100000)
		if !ok {
			t.Fatal("an easy target should be reachable within the budget")
		}
		if p.Hash() != hash {
			t.Fatal("Mine should return the hash of the final attempt")
		}
		if LocalScore(hash).Cmp(big.NewInt(2)) < 0 {
			t.Fatal("the mined hash should meet the target")
		}
	})

	t.Run("gives up when the budget runs out", func(t *testing.T) {
		p := makePost(ZeroHash, 2)

		// Meeting 2^255 requires a hash of at most 2, which a budget
		// of 10 will not find.
		target := new(big.Int).Lsh(big.NewInt(1), 255)
		_, ok := Mine(p, target, 10)
		if ok {
			t.Fatal("the budget should be exhausted first")
		}
	})

	t.Run("mined posts integrate with the expected score", func(t *testing.T) {
		c := newTestChain(t)

		p := makePost(ZeroHash, 3)
		hash, ok := Mine(p, big.NewInt(4), 1000000)
		if !ok {
			t.Fatal("target 4 should be reachable")
		}

		c.AddPost("miner", p)

		if c.Tip() != hash {
			t.Fatal("the mined post should take the tip")
		}
		if scoreOf(t, c, hash).Cmp(big.NewInt(4)) < 0 {
			t.Fatal("the recorded score should meet the mining target")
		}
	})
}

func TestIncWordCarry(t *testing.T) {
	var w Word
	for i := range w {
		w[i] = 0xff
	}

	incWord(&w)

	if w != (Word{}) {
		t.Fatal("incrementing the all-ones word should wrap to zero")
	}

	w = Word{}
	w[WordSize-1] = 0xff
	incWord(&w)
	if w[WordSize-1] != 0 || w[WordSize-2] != 1 {
		t.Fatal("the carry should propagate to the next byte")
	}
}
