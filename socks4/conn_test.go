package socks4

import (
	"bytes"
	"testing"

	"github.com/nilsocks/socksio/internal/socksaddr"
)

func TestSocks4ConnectSuccess(t *testing.T) {
	c := New([]byte("socksio"))
	if err := c.Request(socksaddr.Connect, "216.58.204.78", 80); err != nil {
		t.Fatalf("Request: %v", err)
	}

	want := []byte{
		0x04, 0x01, 0x00, 0x50, 0xd8, 0x3a, 0xcc, 0x4e,
		's', 'o', 'c', 'k', 's', 'i', 'o', 0x00,
	}
	if got := c.DataToSend(); !bytes.Equal(got, want) {
		t.Fatalf("DataToSend() = % x, want % x", got, want)
	}
	if c.Pending() != 0 {
		t.Fatalf("Pending() = %d after drain, want 0", c.Pending())
	}

	reply := []byte{0x00, 0x5a, 0x00, 0x50, 0xd8, 0x3a, 0xcc, 0x4e}
	ev, ok, err := c.ReceiveData(reply)
	if err != nil || !ok {
		t.Fatalf("ReceiveData: ok=%v err=%v", ok, err)
	}
	if ev.Code != CodeRequestGranted || ev.Port != 80 || ev.IP().String() != "216.58.204.78" {
		t.Fatalf("unexpected reply: %+v", ev)
	}
	if !c.Succeeded() {
		t.Fatal("expected Succeeded() after REQUEST_GRANTED")
	}
}

func TestSocks4DomainRejected(t *testing.T) {
	c := New([]byte{})
	if err := c.Request(socksaddr.Connect, "example.com", 80); err == nil {
		t.Fatal("plain SOCKS4 must reject a domain name target")
	}
}

func TestSocks4ADomainSuccess(t *testing.T) {
	c := NewA(nil)
	if err := c.Request(socksaddr.Connect, "example.com", 80); err != nil {
		t.Fatalf("Request: %v", err)
	}
	want := []byte{
		0x04, 0x01, 0x00, 0x50, 0x00, 0x00, 0x00, 0x01, 0x00,
		'e', 'x', 'a', 'm', 'p', 'l', 'e', '.', 'c', 'o', 'm', 0x00,
	}
	if got := c.DataToSend(); !bytes.Equal(got, want) {
		t.Fatalf("DataToSend() = % x, want % x", got, want)
	}
}

func TestSocks4ARejectedReply(t *testing.T) {
	c := NewA([]byte{})
	if err := c.Request(socksaddr.Connect, "example.com", 80); err != nil {
		t.Fatalf("Request: %v", err)
	}
	c.DataToSend()

	reply := []byte{0x00, 0x5b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	ev, ok, err := c.ReceiveData(reply)
	if err != nil || !ok {
		t.Fatalf("ReceiveData: ok=%v err=%v", ok, err)
	}
	if ev.Code != CodeRequestRejectedOrFailed {
		t.Fatalf("Code = %v, want REQUEST_REJECTED_OR_FAILED", ev.Code)
	}
	if !c.Failed() {
		t.Fatal("expected Failed() after non-grant reply")
	}
}

func TestSocks4ReplyFragmentation(t *testing.T) {
	c := New([]byte("x"))
	if err := c.Request(socksaddr.Connect, "127.0.0.1", 443); err != nil {
		t.Fatalf("Request: %v", err)
	}
	c.DataToSend()

	reply := []byte{0x00, 0x5a, 0x01, 0xbb, 127, 0, 0, 1}
	for i := 0; i < len(reply)-1; i++ {
		_, ok, err := c.ReceiveData(reply[i : i+1])
		if err != nil {
			t.Fatalf("ReceiveData byte %d: %v", i, err)
		}
		if ok {
			t.Fatalf("ReceiveData produced an event early, at byte %d", i)
		}
	}
	ev, ok, err := c.ReceiveData(reply[len(reply)-1:])
	if err != nil || !ok {
		t.Fatalf("final byte: ok=%v err=%v", ok, err)
	}
	if ev.Port != 443 {
		t.Fatalf("Port = %d, want 443", ev.Port)
	}
}

func TestSocks4SecondRequestRejected(t *testing.T) {
	c := New(nil)
	if err := c.Request(socksaddr.Connect, "127.0.0.1", 1); err != nil {
		t.Fatalf("first Request: %v", err)
	}
	if err := c.Request(socksaddr.Connect, "127.0.0.1", 1); err == nil {
		t.Fatal("second Request in AwaitingReply must fail")
	}
}

func TestSocks4RejectsUDPAssociate(t *testing.T) {
	c := New(nil)
	if err := c.Request(socksaddr.UDPAssociate, "127.0.0.1", 1); err == nil {
		t.Fatal("UDP_ASSOCIATE must be rejected")
	}
}

func TestSocks4BadReplyVersion(t *testing.T) {
	c := New(nil)
	_ = c.Request(socksaddr.Connect, "127.0.0.1", 1)
	c.DataToSend()
	_, _, err := c.ReceiveData([]byte{0x04, 0x5a, 0, 0, 0, 0, 0, 0})
	if err == nil {
		t.Fatal("expected ProtocolError for bad reply version")
	}
}
