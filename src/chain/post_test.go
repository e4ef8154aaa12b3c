package chain

import (
	"math/big"
	"testing"
)

func TestLocalScore(t *testing.T) {
	t.Run("genesis hash maps to the maximum score", func(t *testing.T) {
		if LocalScore(ZeroHash).Cmp(MaxScore()) != 0 {
			t.Fatal("zero hash should score 2^256-1")
		}
	})

	t.Run("2^255 scores exactly 2", func(t *testing.T) {
		var h Hash
		h[0] = 0x80
		if LocalScore(h).Cmp(big.NewInt(2)) != 0 {
			t.Fatalf("expected score 2, got %s", LocalScore(h))
		}
	})

	t.Run("small hashes score more than large hashes", func(t *testing.T) {
		var small, large Hash
		small[HashSize-1] = 3
		large[0] = 0xff

		if LocalScore(small).Cmp(LocalScore(large)) <= 0 {
			t.Fatal("a smaller hash implies more work")
		}
	})
}

func TestPostHashDeterminism(t *testing.T) {
	p := &Post{}
	p.Body[0][WordSize-1] = 0x42
	p.Work[WordSize-1] = 7

	h1 := p.Hash()
	h2 := p.Hash()

	if h1 != h2 {
		t.Fatal("hashing the same post twice should be identical")
	}

	// Every field participates in the hash.
	q := *p
	q.Prev[HashSize-1] = 1
	if q.Hash() == h1 {
		t.Fatal("changing Prev should change the hash")
	}

	r := *p
	r.Work[WordSize-1] = 8
	if r.Hash() == h1 {
		t.Fatal("changing Work should change the hash")
	}

	s := *p
	s.Body[BodyWords-1][0] = 1
	if s.Hash() == h1 {
		t.Fatal("changing the Body should change the hash")
	}
}

func TestHashFromBytes(t *testing.T) {
	short := HashFromBytes([]byte{0x01, 0x02})
	if short[HashSize-1] != 0x02 || short[HashSize-2] != 0x01 {
		t.Fatal("short input should be left-padded")
	}

	long := make([]byte, HashSize+4)
	long[4] = 0xaa
	if HashFromBytes(long)[0] != 0xaa {
		t.Fatal("long input should keep the low-order bytes")
	}
}
