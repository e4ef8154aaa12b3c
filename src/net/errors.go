package net

import "fmt"

// DecodeErrType enumerates the ways an incoming datagram can fail to decode.
type DecodeErrType uint32

const (
	// BadHex means the payload is not valid hex.
	BadHex DecodeErrType = iota
	// UnknownTag means the tag byte names no known variant.
	UnknownTag
	// BadLength means the payload size does not match the variant.
	BadLength
)

// DecodeErr reports a datagram that could not be decoded. The policy is to
// drop the datagram.
type DecodeErr struct {
	errType DecodeErrType
	detail  string
}

// NewDecodeErr creates a new DecodeErr.
func NewDecodeErr(errType DecodeErrType, detail string) DecodeErr {
	return DecodeErr{
		errType: errType,
		detail:  detail,
	}
}

// Error implements the error interface.
func (e DecodeErr) Error() string {
	m := ""
	switch e.errType {
	case BadHex:
		m = "bad hex"
	case UnknownTag:
		m = "unknown tag"
	case BadLength:
		m = "bad length"
	}

	return fmt.Sprintf("%s, %s", m, e.detail)
}

// IsDecode checks that an error is a DecodeErr of the given type.
func IsDecode(err error, t DecodeErrType) bool {
	decErr, ok := err.(DecodeErr)
	return ok && decErr.errType == t
}
