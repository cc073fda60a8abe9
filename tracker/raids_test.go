package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaidLedgerDeduplicates(t *testing.T) {
	l := NewRaidLedger()
	assert.True(t, l.Add("Raider"))
	assert.False(t, l.Add("Raider"))
	assert.True(t, l.Add("Other"))

	assert.Equal(t, []string{"Raider", "Other"}, l.Names())
}

func TestRaidLedgerClear(t *testing.T) {
	l := NewRaidLedger()
	l.Add("Raider")
	l.Clear()

	assert.Empty(t, l.Names())
	assert.True(t, l.Add("Raider"))
}
