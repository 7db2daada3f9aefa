package route

import "sync"

// Navigator holds the current logical route. Navigate may be called from any
// goroutine; the TUI and CLI read Current and react to changes.
type Navigator struct {
	mu      sync.Mutex
	current string
}

// NewNavigator starts at the given route.
func NewNavigator(start string) *Navigator {
	return &Navigator{current: cleanPath(start)}
}

// Current returns the current route path.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate moves to path.
func (n *Navigator) Navigate(path string) {
	path = cleanPath(path)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}
