package browser

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// DefaultType is what "auto" resolves to. Chromium via Playwright is the
// only binding shipped today.
const DefaultType = "playwright"

// ErrNoSession is returned by script execution when no session is active.
var ErrNoSession = errors.New("no active browser session")

// Constructor builds an uninitialized Browser. Acquiring the underlying
// session happens later, in Initialize.
type Constructor func(cfg Config) Browser

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Constructor)
)

// Register makes a driver binding available under the given tag.
// Bindings register themselves from init.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = c
}

// Create resolves a configuration tag to a registered binding. Unknown tags
// yield an error, never a crash, so the orchestrator can degrade gracefully.
func Create(browserType string, cfg Config) (Browser, error) {
	if browserType == "" || browserType == "auto" {
		browserType = DefaultType
	}

	registryMu.RLock()
	construct, ok := registry[browserType]
	registryMu.RUnlock()

	if !ok {
		log.Printf("❌ Unknown or unsupported browser type: %s", browserType)
		return nil, fmt.Errorf("unknown browser type %q", browserType)
	}

	return construct(cfg), nil
}
