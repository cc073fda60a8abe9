package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserverDrainDistinct(t *testing.T) {
	o := NewObserver()
	o.Record("alice")
	o.Record("bob")
	o.Record("alice")

	got := o.DrainAndClear()
	assert.Equal(t, []string{"alice", "bob"}, got)
}

func TestObserverDrainEmptiesSet(t *testing.T) {
	o := NewObserver()
	o.Record("alice")

	assert.Len(t, o.DrainAndClear(), 1)
	assert.Empty(t, o.DrainAndClear())
	assert.Zero(t, o.Len())
}

func TestObserverRecordAfterDrain(t *testing.T) {
	o := NewObserver()
	o.Record("alice")
	o.DrainAndClear()

	// A name seen in an earlier cycle counts again in the next one.
	o.Record("alice")
	assert.Equal(t, []string{"alice"}, o.DrainAndClear())
}

func TestObserverClear(t *testing.T) {
	o := NewObserver()
	o.Record("alice")
	o.Record("bob")
	o.Clear()

	assert.Empty(t, o.DrainAndClear())
}
