//go:build unix

package wire

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListenAcceptRoundtrip(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test-wayland-0")

	ln, err := Listen(sockPath)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	if _, err := os.Stat(sockPath); err != nil {
		t.Fatalf("expected socket at %s: %v", sockPath, err)
	}

	type acceptResult struct {
		conn *ServerConn
		err  error
	}
	accepted := make(chan acceptResult, 1)
	go func() {
		c, err := ln.Accept()
		accepted <- acceptResult{c, err}
	}()

	client, err := net.Dial("unix", sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	var server *ServerConn
	select {
	case res := <-accepted:
		if res.err != nil {
			t.Fatalf("Accept: %v", res.err)
		}
		server = res.conn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Accept")
	}
	defer server.Close()

	builder := NewMessageBuilder()
	builder.PutNewID(2)
	msg := builder.BuildMessage(1, DisplayGetRegistry)

	encoded, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	if _, err := client.Write(encoded); err != nil {
		t.Fatalf("client write: %v", err)
	}

	got, err := server.RecvMessage()
	if err != nil {
		t.Fatalf("RecvMessage: %v", err)
	}
	if got.ObjectID != 1 || got.Opcode != DisplayGetRegistry {
		t.Fatalf("got ObjectID=%d Opcode=%d, want 1/%d", got.ObjectID, got.Opcode, DisplayGetRegistry)
	}

	decoder := NewDecoder(got.Args)
	registryID, err := decoder.NewID()
	if err != nil {
		t.Fatalf("decode new_id: %v", err)
	}
	if registryID != 2 {
		t.Fatalf("registryID = %d, want 2", registryID)
	}
}

func TestSerialAllocatorNeverReturnsZero(t *testing.T) {
	var a SerialAllocator
	seen := make(map[uint32]bool)
	for i := 0; i < 1000; i++ {
		s := a.Next()
		if s == 0 {
			t.Fatal("Next() returned 0")
		}
		if seen[s] {
			t.Fatalf("duplicate serial %d", s)
		}
		seen[s] = true
	}
}

func TestServerConnSendError(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test-wayland-1")

	ln, err := Listen(sockPath)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan *ServerConn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			t.Error(err)
			return
		}
		accepted <- c
	}()

	client, err := net.Dial("unix", sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	server := <-accepted

	if err := server.SendError(5, 1, "bad object"); err != nil {
		t.Fatalf("SendError: %v", err)
	}

	buf := make([]byte, 256)
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("client read: %v", err)
	}

	decoder := NewDecoder(buf[:n])
	msg, err := decoder.DecodeMessage()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.ObjectID != 1 || msg.Opcode != DisplayEventError {
		t.Fatalf("got ObjectID=%d Opcode=%d, want wl_display error event", msg.ObjectID, msg.Opcode)
	}
}
