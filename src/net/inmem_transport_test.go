package net

import (
	"fmt"
	"testing"
)

func TestInmemTransport(t *testing.T) {
	network := NewInmemNetwork()

	alice := network.NewTransport("127.0.0.1:42000")
	bob := network.NewTransport("127.0.0.1:42001")

	t.Run("delivery in arrival order", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if err := alice.Send(bob.LocalAddr(), []byte{byte(i)}); err != nil {
				t.Fatal(err)
			}
		}

		inbox, err := bob.Recv()
		if err != nil {
			t.Fatal(err)
		}
		if len(inbox) != 3 {
			t.Fatalf("expected 3 datagrams, got %d", len(inbox))
		}
		for i, dg := range inbox {
			if dg.From != alice.LocalAddr() {
				t.Fatalf("wrong sender %s", dg.From)
			}
			if dg.Payload[0] != byte(i) {
				t.Fatal("datagrams out of order")
			}
		}
	})

	t.Run("empty inbox is not an error", func(t *testing.T) {
		inbox, err := bob.Recv()
		if err != nil {
			t.Fatal(err)
		}
		if len(inbox) != 0 {
			t.Fatal("inbox should be empty")
		}
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		if err := alice.Send("127.0.0.1:40404", []byte{0}); err == nil {
			t.Fatal("sending to an unregistered endpoint should fail")
		}
	})

	t.Run("full buffer drops", func(t *testing.T) {
		for i := 0; i < inmemBuffer+10; i++ {
			if err := alice.Send(bob.LocalAddr(), []byte(fmt.Sprintf("%d", i))); err != nil {
				t.Fatal(err)
			}
		}

		inbox, _ := bob.Recv()
		if len(inbox) != inmemBuffer {
			t.Fatalf("expected %d datagrams, got %d", inmemBuffer, len(inbox))
		}
	})

	t.Run("close deregisters", func(t *testing.T) {
		bob.Close()
		if err := alice.Send(bob.LocalAddr(), []byte{0}); err == nil {
			t.Fatal("sending to a closed endpoint should fail")
		}
	})
}
