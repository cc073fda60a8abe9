package tracker

import "sync"

// Observer collects the distinct chatters seen since the last drain.
// Record keeps set semantics; DrainAndClear hands the accumulated names to
// the reporting cycle and resets the set in one step, so a name recorded
// while a report is in flight lands in the next cycle instead of being lost.
type Observer struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

func NewObserver() *Observer {
	return &Observer{seen: make(map[string]struct{})}
}

// Record notes that identity produced a chat message. Duplicate records
// within one cycle are no-ops.
func (o *Observer) Record(identity string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.seen[identity]; ok {
		return
	}
	o.seen[identity] = struct{}{}
	o.order = append(o.order, identity)
}

// DrainAndClear returns every identity recorded since the previous drain, in
// first-seen order, and empties the set atomically.
func (o *Observer) DrainAndClear() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.order
	o.seen = make(map[string]struct{})
	o.order = nil
	return out
}

// Clear discards any accumulated identities without returning them.
func (o *Observer) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = make(map[string]struct{})
	o.order = nil
}

// Len reports how many distinct identities are currently accumulated.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.order)
}
