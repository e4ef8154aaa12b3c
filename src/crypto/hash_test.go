package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestKeccak256KnownVectors(t *testing.T) {
	vectors := []struct {
		input []byte
		hex   string
	}{
		{[]byte{}, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{[]byte("abc"), "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}

	for _, v := range vectors {
		expected, _ := hex.DecodeString(v.hex)
		got := Keccak256(v.input)
		if !bytes.Equal(got, expected) {
			t.Fatalf("Keccak256(%q) should be %s, not %x", v.input, v.hex, got)
		}
	}
}

func TestKeccak256Concatenation(t *testing.T) {
	// Feeding the input in pieces must be equivalent to feeding it whole.
	whole := Keccak256([]byte("hello world"))
	pieces := Keccak256([]byte("hello"), []byte(" "), []byte("world"))

	if !bytes.Equal(whole, pieces) {
		t.Fatalf("piecewise digest %x differs from whole digest %x", pieces, whole)
	}

	if len(whole) != 32 {
		t.Fatalf("digest should be 32 bytes, not %d", len(whole))
	}
}
