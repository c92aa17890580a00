package platform

import (
	"errors"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

func TestInstanceLock_SecondAcquireFails(t *testing.T) {
	first, err := acquireOn("127.0.0.1:0")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer first.Release()

	if _, err := acquireOn(first.Address()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Errorf("second release should be a no-op, got %v", err)
	}

	again, err := acquireOn(first.Address())
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.Release()
}

func TestLockPort_StableAndInRange(t *testing.T) {
	port := lockPort("studyplanner")
	if port != lockPort("studyplanner") {
		t.Error("port should be deterministic")
	}
	if port < 20000 || port > 39999 {
		t.Errorf("port %d out of range", port)
	}
}

func TestReleaseNil(t *testing.T) {
	var lock *InstanceLock
	if err := lock.Release(); err != nil {
		t.Errorf("nil release: %v", err)
	}
	if lock.Address() != "" {
		t.Error("nil address should be empty")
	}
}

func TestHandOff_OpensNotesInRunningInstance(t *testing.T) {
	lock, err := acquireOn("127.0.0.1:0")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lock.Release()

	opened := make(chan string, 2)
	lock.Serve(func(notesPath string) { opened <- notesPath })

	for _, notesPath := range []string{"/home/learner/biology notes.txt", ""} {
		if err := handOffTo(lock.Address(), notesPath); err != nil {
			t.Fatalf("hand off %q: %v", notesPath, err)
		}
		select {
		case got := <-opened:
			if got != notesPath {
				t.Errorf("opened %q, want %q", got, notesPath)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("running instance never opened %q", notesPath)
		}
	}
}

func TestHandOff_IgnoresForeignRequests(t *testing.T) {
	lock, err := acquireOn("127.0.0.1:0")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lock.Release()

	var calls atomic.Int32
	lock.Serve(func(string) { calls.Add(1) })

	conn, err := net.Dial("tcp", lock.Address())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("GET / HTTP/1.1\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply, _ := io.ReadAll(conn)
	if len(reply) != 0 || calls.Load() != 0 {
		t.Errorf("foreign request was answered: reply %q, calls %d", reply, calls.Load())
	}
}

func TestHandOff_Errors(t *testing.T) {
	lock, err := acquireOn("127.0.0.1:0")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	address := lock.Address()
	lock.Serve(nil)
	if err := handOffTo(address, "notes\n.txt"); !errors.Is(err, ErrBadNotesPath) {
		t.Errorf("expected ErrBadNotesPath, got %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := handOffTo(address, "notes.txt"); err == nil {
		t.Error("expected an error with no running instance")
	}
}
