package tracker

import "sync"

// Tally counts, per identity, the number of reporting cycles the identity
// appeared in over the lifetime of one tracking session.
type Tally struct {
	mu     sync.Mutex
	counts map[string]int
	order  []string
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Increment bumps the appearance count for identity, registering it on first
// appearance.
func (t *Tally) Increment(identity string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.counts[identity]; !ok {
		t.order = append(t.order, identity)
	}
	t.counts[identity]++
}

// Count returns the appearance count for identity (zero if never seen).
func (t *Tally) Count(identity string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[identity]
}

// Partition splits the tallied identities into those that appeared in exactly
// one reporting cycle and those that appeared in more than one. Both lists
// are rendered most-recent-first (reverse insertion order), which is part of
// the summary's wire format.
func (t *Tally) Partition() (once, multi []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.order) - 1; i >= 0; i-- {
		id := t.order[i]
		if t.counts[id] > 1 {
			multi = append(multi, id)
		} else {
			once = append(once, id)
		}
	}
	return once, multi
}

// Clear resets the tally for the next session.
func (t *Tally) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[string]int)
	t.order = nil
}

// Len reports how many distinct identities have been tallied.
func (t *Tally) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}
