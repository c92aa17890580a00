package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning indicates another study planner already holds the lock.
	ErrAlreadyRunning = errors.New("study planner already running")
	// ErrBadNotesPath is returned for a notes path that cannot be handed over.
	ErrBadNotesPath = errors.New("notes path contains a line break")
)

const (
	handoffVerb    = "study"
	handoffReply   = "ok"
	handoffTimeout = 2 * time.Second
	maxRequest     = 4096
)

// InstanceLock is the running planner's loopback listener. A second launch
// finds it on the same port and hands its notes file over instead of
// starting another planner.
type InstanceLock struct {
	mu       sync.Mutex
	listener net.Listener
	address  string
	served   chan struct{}
}

// AcquireInstanceLock binds the loopback port derived from appName.
// A second caller with the same name gets ErrAlreadyRunning.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	return acquireOn(handoffAddress(appName))
}

func acquireOn(address string) (*InstanceLock, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrAlreadyRunning, address)
	}
	return &InstanceLock{listener: listener, address: listener.Addr().String()}, nil
}

// Serve answers hand-over requests from later launches until Release.
// onOpen receives the notes path the later launch was given, which may be
// empty, on the serving goroutine.
func (lock *InstanceLock) Serve(onOpen func(notesPath string)) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.listener == nil || lock.served != nil {
		return
	}
	served := make(chan struct{})
	lock.served = served
	go func(listener net.Listener) {
		defer close(served)
		for {
			conn, err := listener.Accept()
			if err != nil {
				if !errors.Is(err, net.ErrClosed) {
					log.Printf("instance: accept: %v", err)
				}
				return
			}
			handleHandoff(conn, onOpen)
		}
	}(lock.listener)
}

// Release frees the lock and stops serving. It is safe on a nil lock.
func (lock *InstanceLock) Release() error {
	if lock == nil {
		return nil
	}
	lock.mu.Lock()
	listener, served := lock.listener, lock.served
	lock.listener = nil
	lock.served = nil
	lock.mu.Unlock()

	if listener == nil {
		return nil
	}
	err := listener.Close()
	if served != nil {
		<-served
	}
	return err
}

// Address returns the bound address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

// HandOff asks the running planner to open its study window with notesPath.
func HandOff(appName, notesPath string) error {
	return handOffTo(handoffAddress(appName), notesPath)
}

func handOffTo(address, notesPath string) error {
	if strings.ContainsAny(notesPath, "\r\n") {
		return ErrBadNotesPath
	}
	conn, err := net.DialTimeout("tcp", address, handoffTimeout)
	if err != nil {
		return fmt.Errorf("hand off to %s: %w", address, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(handoffTimeout))

	if _, err := fmt.Fprintf(conn, "%s\t%s\n", handoffVerb, notesPath); err != nil {
		return fmt.Errorf("hand off to %s: %w", address, err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("hand off to %s: no reply: %w", address, err)
	}
	if strings.TrimSpace(reply) != handoffReply {
		return fmt.Errorf("hand off to %s: unexpected reply %q", address, reply)
	}
	return nil
}

func handleHandoff(conn net.Conn, onOpen func(notesPath string)) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(handoffTimeout))

	line, err := bufio.NewReader(io.LimitReader(conn, maxRequest)).ReadString('\n')
	if err != nil {
		log.Printf("instance: read hand-over request: %v", err)
		return
	}
	verb, notesPath, ok := strings.Cut(strings.TrimRight(line, "\r\n"), "\t")
	if !ok || verb != handoffVerb {
		log.Printf("instance: ignoring request %q", line)
		return
	}
	if onOpen != nil {
		onOpen(notesPath)
	}
	_, _ = fmt.Fprintln(conn, handoffReply)
}

func handoffAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", lockPort(appName))
}

func lockPort(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
}
