package net

import (
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// UDPTransport implements the Transport interface over an IPv4 UDP socket.
// The socket is acquired at startup and held for the process lifetime.
type UDPTransport struct {
	conn      *net.UDPConn
	localAddr string
	logger    *logrus.Entry
	buf       []byte
}

// NewUDPTransport binds a UDP socket on bindAddr.
func NewUDPTransport(bindAddr string, logger *logrus.Entry) (*UDPTransport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp4", bindAddr)
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		return nil, err
	}

	return &UDPTransport{
		conn:      conn,
		localAddr: conn.LocalAddr().String(),
		logger:    logger.WithField("component", "transport"),
		buf:       make([]byte, MaxDatagramSize),
	}, nil
}

// LocalAddr implements the Transport interface.
func (t *UDPTransport) LocalAddr() string {
	return t.localAddr
}

// Recv implements the Transport interface. It reads with an immediate
// deadline until the kernel buffer is empty, so a quiet socket returns an
// empty inbox rather than blocking the loop.
func (t *UDPTransport) Recv() ([]Datagram, error) {
	inbox := []Datagram{}

	for {
		if err := t.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
			return inbox, err
		}

		n, addr, err := t.conn.ReadFromUDP(t.buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return inbox, nil
			}
			return inbox, err
		}

		payload := make([]byte, n)
		copy(payload, t.buf[:n])

		inbox = append(inbox, Datagram{From: addr.String(), Payload: payload})
	}
}

// Send implements the Transport interface.
func (t *UDPTransport) Send(addr string, payload []byte) error {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return err
	}

	_, err = t.conn.WriteToUDP(payload, udpAddr)
	return err
}

// Close implements the Transport interface.
func (t *UDPTransport) Close() error {
	return t.conn.Close()
}
