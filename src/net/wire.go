package net

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"

	"github.com/workpost-net/workpost/src/chain"
)

// Binary sizes of the wire variants: 1 tag byte plus the variant body.
const (
	tagSize         = 1
	requestPostSize = tagSize + chain.HashSize
	sharePostSize   = tagSize + chain.PostSize

	// MaxDatagramSize bounds the hex payload of the largest variant,
	// SharePost, at 2178 characters. Datagrams that large rely on IP
	// fragmentation.
	MaxDatagramSize = 2 * sharePostSize
)

// Encode serializes a message to its on-wire form: the field-order binary
// concatenation, hex-encoded. An odd hex length is padded with a trailing '0'
// nibble so decoders operate on whole bytes.
func Encode(m Message) []byte {
	bin := make([]byte, 0, sharePostSize)
	bin = append(bin, byte(m.Type))

	switch m.Type {
	case RequestPostMsg:
		bin = append(bin, m.Hash[:]...)
	case SharePostMsg:
		for i := 0; i < chain.BodyWords; i++ {
			bin = append(bin, m.Post.Body[i][:]...)
		}
		bin = append(bin, m.Post.Work[:]...)
		bin = append(bin, m.Post.Prev[:]...)
	}

	encoded := []byte(hex.EncodeToString(bin))
	if len(encoded)%2 != 0 {
		encoded = append(encoded, '0')
	}

	return encoded
}

// Decode is the inverse of Encode. It accepts an odd hex length by padding a
// trailing '0' nibble before decoding, and fails with a DecodeErr on
// malformed hex, an unknown tag, or a payload whose size does not match the
// tagged variant.
func Decode(data []byte) (Message, error) {
	if len(data)%2 != 0 {
		data = append(append([]byte{}, data...), '0')
	}

	bin := make([]byte, len(data)/2)
	if _, err := hex.Decode(bin, data); err != nil {
		return Message{}, NewDecodeErr(BadHex, err.Error())
	}

	if len(bin) < tagSize {
		return Message{}, NewDecodeErr(BadLength, "empty payload")
	}

	tag := MsgType(bin[0])
	body := bin[tagSize:]

	switch tag {
	case PingMsg, PongMsg, GetTipMsg:
		if len(body) != 0 {
			return Message{}, NewDecodeErr(BadLength, fmt.Sprintf("%s carries no body", tag))
		}
		return Message{Type: tag}, nil

	case RequestPostMsg:
		if len(bin) != requestPostSize {
			return Message{}, NewDecodeErr(BadLength, fmt.Sprintf("RequestPost wants %d bytes, got %d", requestPostSize, len(bin)))
		}
		return RequestPost(chain.HashFromBytes(body)), nil

	case SharePostMsg:
		if len(bin) != sharePostSize {
			return Message{}, NewDecodeErr(BadLength, fmt.Sprintf("SharePost wants %d bytes, got %d", sharePostSize, len(bin)))
		}

		post := &chain.Post{}
		for i := 0; i < chain.BodyWords; i++ {
			copy(post.Body[i][:], body[i*chain.WordSize:])
		}
		copy(post.Work[:], body[chain.BodySize:])
		copy(post.Prev[:], body[chain.BodySize+chain.WordSize:])

		return SharePost(post), nil

	default:
		return Message{}, NewDecodeErr(UnknownTag, strconv.Itoa(int(tag)))
	}
}

// Addr is the wire form of a peer endpoint: 4 IPv4 octets followed by a
// 16-bit port in network byte order.
type Addr struct {
	IP   [4]byte
	Port uint16
}

// addrSize is the encoded size of an Addr.
const addrSize = 6

// String returns the dotted ip:port form.
func (a Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", a.IP[0], a.IP[1], a.IP[2], a.IP[3], a.Port)
}

// EncodeAddr serializes an Addr.
func EncodeAddr(a Addr) []byte {
	buf := make([]byte, addrSize)
	copy(buf, a.IP[:])
	binary.BigEndian.PutUint16(buf[4:], a.Port)
	return buf
}

// DecodeAddr is the inverse of EncodeAddr.
func DecodeAddr(data []byte) (Addr, error) {
	if len(data) != addrSize {
		return Addr{}, NewDecodeErr(BadLength, fmt.Sprintf("Addr wants %d bytes, got %d", addrSize, len(data)))
	}

	a := Addr{}
	copy(a.IP[:], data)
	a.Port = binary.BigEndian.Uint16(data[4:])

	return a, nil
}

// ParseAddr parses an "ip:port" endpoint, requiring a well-formed IPv4
// address and an in-range port.
func ParseAddr(s string) (Addr, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Addr{}, fmt.Errorf("malformed endpoint %q: %v", s, err)
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return Addr{}, fmt.Errorf("endpoint %q is not IPv4", s)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Addr{}, fmt.Errorf("endpoint %q has a bad port: %v", s, err)
	}

	a := Addr{Port: uint16(port)}
	copy(a.IP[:], ip.To4())

	return a, nil
}
