package executor

import (
	"net"
	"sync"
)

// connEntry pairs an open socket with a mutex so that send serializes
// at most one in-flight request per channel, even when two Par branches
// hold the same channel name — the spec requires this and leaves the
// locking strategy to the implementation.
type connEntry struct {
	mu   sync.Mutex
	conn net.Conn
}

// Connections is the runtime connection table: name to open socket. It
// is created once per program run and shared by reference across every
// Par branch's Executor, mirroring the reference's shared connection_table.
type Connections struct {
	mu      sync.Mutex
	entries map[string]*connEntry
}

func newConnections() *Connections {
	return &Connections{entries: make(map[string]*connEntry)}
}

func (c *Connections) set(name string, conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &connEntry{conn: conn}
}

func (c *Connections) get(name string) (*connEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	return e, ok
}

func (c *Connections) delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}
