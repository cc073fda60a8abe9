package tracker

import "sync"

// RaidLedger accumulates the distinct raiders seen during a tracking session.
type RaidLedger struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

func NewRaidLedger() *RaidLedger {
	return &RaidLedger{seen: make(map[string]struct{})}
}

// Add records a raider display name. It returns false when the raider was
// already in the ledger (repeat raids within a session are deduplicated).
func (l *RaidLedger) Add(displayName string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[displayName]; ok {
		return false
	}
	l.seen[displayName] = struct{}{}
	l.order = append(l.order, displayName)
	return true
}

// Names returns the recorded raiders in first-seen order.
func (l *RaidLedger) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Clear resets the ledger for the next session.
func (l *RaidLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = make(map[string]struct{})
	l.order = nil
}
