package net

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpost-net/workpost/src/chain"
)

func samplePost() *chain.Post {
	p := &chain.Post{}
	for i := 0; i < chain.BodyWords; i++ {
		p.Body[i][chain.WordSize-1] = byte(i)
	}
	p.Work[chain.WordSize-1] = 0x2a
	p.Prev[0] = 0xde
	p.Prev[chain.HashSize-1] = 0xad
	return p
}

func TestMessageRoundTrip(t *testing.T) {
	messages := []Message{
		Ping(),
		Pong(),
		GetTip(),
		RequestPost(chain.HashFromBytes([]byte{0x01, 0x02, 0x03})),
		SharePost(samplePost()),
	}

	for _, m := range messages {
		t.Run(m.Type.String(), func(t *testing.T) {
			encoded := Encode(m)

			assert.Zero(t, len(encoded)%2, "encoded hex length should be even")

			decoded, err := Decode(encoded)
			require.NoError(t, err)

			assert.Equal(t, m.Type, decoded.Type)
			assert.Equal(t, m.Hash, decoded.Hash)
			if m.Post != nil {
				require.NotNil(t, decoded.Post)
				assert.Equal(t, *m.Post, *decoded.Post)
			}
		})
	}
}

func TestEncodedSizes(t *testing.T) {
	// 1 tag + 32*32 body + 32 work + 32 prev = 1089 binary bytes.
	assert.Equal(t, 2178, len(Encode(SharePost(samplePost()))))
	assert.Equal(t, 2, len(Encode(Ping())))
	assert.Equal(t, 66, len(Encode(RequestPost(chain.ZeroHash))))
}

func TestDecodeOddLengthPadding(t *testing.T) {
	// A datagram whose trailing zero nibble was stripped still decodes.
	encoded := Encode(RequestPost(chain.ZeroHash))
	require.Equal(t, byte('0'), encoded[len(encoded)-1])

	decoded, err := Decode(encoded[:len(encoded)-1])
	require.NoError(t, err)
	assert.Equal(t, RequestPostMsg, decoded.Type)
}

func TestDecodeFailures(t *testing.T) {
	t.Run("malformed hex", func(t *testing.T) {
		_, err := Decode([]byte("zz"))
		assert.True(t, IsDecode(err, BadHex))
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := Decode([]byte(hex.EncodeToString([]byte{0x09})))
		assert.True(t, IsDecode(err, UnknownTag))
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := Decode([]byte{})
		assert.True(t, IsDecode(err, BadLength))
	})

	t.Run("truncated SharePost", func(t *testing.T) {
		encoded := Encode(SharePost(samplePost()))
		_, err := Decode(encoded[:len(encoded)-10])
		assert.True(t, IsDecode(err, BadLength))
	})

	t.Run("oversized Ping", func(t *testing.T) {
		_, err := Decode([]byte(hex.EncodeToString([]byte{byte(PingMsg), 0xff})))
		assert.True(t, IsDecode(err, BadLength))
	})

	t.Run("truncated RequestPost", func(t *testing.T) {
		_, err := Decode([]byte(hex.EncodeToString([]byte{byte(RequestPostMsg), 0x01})))
		assert.True(t, IsDecode(err, BadLength))
	})
}

func TestAddrWireForm(t *testing.T) {
	a := Addr{IP: [4]byte{127, 0, 0, 1}, Port: 42000}

	encoded := EncodeAddr(a)
	require.Equal(t, addrSize, len(encoded))

	// Port in network byte order after the 4 octets.
	assert.Equal(t, byte(42000>>8), encoded[4])
	assert.Equal(t, byte(42000&0xff), encoded[5])

	decoded, err := DecodeAddr(encoded)
	require.NoError(t, err)
	assert.Equal(t, a, decoded)

	_, err = DecodeAddr(encoded[:4])
	assert.True(t, IsDecode(err, BadLength))
}

func TestParseAddr(t *testing.T) {
	a, err := ParseAddr("127.0.0.1:42000")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:42000", a.String())

	bad := []string{
		"127.0.0.1",        // no port
		"300.0.0.1:42000",  // out-of-range octet
		"[::1]:42000",      // not IPv4
		"127.0.0.1:999999", // out-of-range port
		"host:42000",       // not an address
	}
	for _, s := range bad {
		if _, err := ParseAddr(s); err == nil {
			t.Fatalf("%q should not parse", s)
		}
	}
}
