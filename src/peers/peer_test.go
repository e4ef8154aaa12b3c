package peers

import (
	"testing"
)

func TestFromEndpoint(t *testing.T) {
	p, err := FromEndpoint("127.0.0.1:42000")
	if err != nil {
		t.Fatal(err)
	}
	if p.NetAddr != "127.0.0.1:42000" {
		t.Fatalf("unexpected NetAddr %s", p.NetAddr)
	}

	bad := []string{"127.0.0.1", "256.0.0.1:42000", "[::1]:42000", "nope"}
	for _, s := range bad {
		if _, err := FromEndpoint(s); err == nil {
			t.Fatalf("%q should be rejected", s)
		}
	}
}

func TestDefaultSeedPeers(t *testing.T) {
	seeds := DefaultSeedPeers()
	if len(seeds) != 4 {
		t.Fatalf("expected 4 seed peers, got %d", len(seeds))
	}
	if seeds[0].NetAddr != "127.0.0.1:42000" || seeds[3].NetAddr != "127.0.0.1:42003" {
		t.Fatal("seed list should span 127.0.0.1:{42000..42003}")
	}
}

func TestExcludePeer(t *testing.T) {
	seeds := DefaultSeedPeers()
	rest := ExcludePeer(seeds, "127.0.0.1:42001")

	if len(rest) != 3 {
		t.Fatalf("expected 3 peers, got %d", len(rest))
	}
	for _, p := range rest {
		if p.NetAddr == "127.0.0.1:42001" {
			t.Fatal("excluded peer still present")
		}
	}
}

func TestJSONPeers(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONPeers(dir)

	t.Run("falls back to the seed list", func(t *testing.T) {
		ps, err := store.Peers()
		if err != nil {
			t.Fatal(err)
		}
		if len(ps) != 4 {
			t.Fatalf("expected the seed list, got %d peers", len(ps))
		}
	})

	t.Run("round trip", func(t *testing.T) {
		keep := []*Peer{NewPeer("10.0.0.1:42000"), NewPeer("10.0.0.2:42000")}
		if err := store.SetPeers(keep); err != nil {
			t.Fatal(err)
		}

		ps, err := store.Peers()
		if err != nil {
			t.Fatal(err)
		}
		if len(ps) != 2 {
			t.Fatalf("expected 2 peers, got %d", len(ps))
		}
		if ps[0].NetAddr != "10.0.0.1:42000" || ps[1].NetAddr != "10.0.0.2:42000" {
			t.Fatal("peers did not round trip")
		}
	})
}
