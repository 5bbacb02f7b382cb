package platform

import (
	"sync"

	"github.com/yourorg/tilecore/internal/model"
)

// axHandle is the opaque per-window reference an Adapter implementation
// would hold (an AXUIElementRef on macOS). This package never dereferences
// it; it exists only so a real adapter has somewhere to store one
// alongside the bookkeeping handleCache already provides.
type axHandle struct {
	pid int
}

// handleCache is the AX handle cache spec.md §3 assigns to the platform
// adapter: "Platform handles ... are owned by the Platform Adapter and
// looked up by window id." Entries are added when a window is first
// observed and removed when the OS reports it destroyed; IsWindowValid
// lets internal/events resolve pid-only termination signals into
// per-window destroy inference without reaching back into the adapter's
// internals.
type handleCache struct {
	mu      sync.RWMutex
	handles map[model.WindowID]axHandle
}

func newHandleCache() *handleCache {
	return &handleCache{handles: make(map[model.WindowID]axHandle)}
}

func (c *handleCache) put(id model.WindowID, pid int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles[id] = axHandle{pid: pid}
}

func (c *handleCache) invalidate(id model.WindowID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handles, id)
}

// IsWindowValid implements events.HandleValidator.
func (c *handleCache) IsWindowValid(id model.WindowID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.handles[id]
	return ok
}

// windowsForPID returns every window id currently cached under pid, used
// by NullAdapter.TerminateApp to invalidate an exited process's handles
// without a round trip to the State Actor.
func (c *handleCache) windowsForPID(pid int) []model.WindowID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var ids []model.WindowID
	for id, h := range c.handles {
		if h.pid == pid {
			ids = append(ids, id)
		}
	}
	return ids
}
