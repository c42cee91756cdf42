package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func openNavigator(length int) *Navigator {
	n := NewNavigator()
	n.Reset(length)
	n.Open()
	return n
}

func TestNavigator_ArrowDownClampsAtLastEntry(t *testing.T) {
	const m = 4
	for k := 0; k <= 2*m; k++ {
		n := openNavigator(m)
		for i := 0; i < k; i++ {
			n.Handle(KeyArrowDown)
		}
		assert.Equal(t, min(k, m)-1, n.Active(), "k=%d", k)
	}
}

func TestNavigator_ArrowUpStopsAtNoSelection(t *testing.T) {
	n := openNavigator(3)
	n.Handle(KeyArrowUp)
	assert.Equal(t, -1, n.Active())
	assert.Equal(t, ModeOpen, n.Mode())

	n.Handle(KeyArrowDown)
	n.Handle(KeyArrowDown)
	n.Handle(KeyArrowUp)
	n.Handle(KeyArrowUp)
	n.Handle(KeyArrowUp)
	assert.Equal(t, -1, n.Active())
}

func TestNavigator_Enter(t *testing.T) {
	n := openNavigator(3)
	assert.Equal(t, Action{Kind: ActionSubmit, Index: -1}, n.Handle(KeyEnter))

	n.Handle(KeyArrowDown)
	n.Handle(KeyArrowDown)
	assert.Equal(t, ModeOpenWithSelection, n.Mode())
	assert.Equal(t, Action{Kind: ActionSelect, Index: 1}, n.Handle(KeyEnter))
}

func TestNavigator_EscapeCloses(t *testing.T) {
	n := openNavigator(3)
	n.Handle(KeyArrowDown)

	act := n.Handle(KeyEscape)
	assert.Equal(t, ActionClose, act.Kind)
	assert.Equal(t, ModeClosed, n.Mode())
	assert.Equal(t, -1, n.Active())
}

func TestNavigator_ClosedOrEmpty(t *testing.T) {
	tests := map[string]*Navigator{
		"closed": func() *Navigator { n := NewNavigator(); n.Reset(3); return n }(),
		"empty":  openNavigator(0),
	}
	for name, n := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, ActionNone, n.Handle(KeyArrowDown).Kind)
			assert.Equal(t, ActionNone, n.Handle(KeyArrowUp).Kind)
			assert.Equal(t, ActionNone, n.Handle(KeyEscape).Kind)
			assert.Equal(t, -1, n.Active())
			assert.Equal(t, ActionSubmit, n.Handle(KeyEnter).Kind)
		})
	}
}

func TestNavigator_ResetClearsSelection(t *testing.T) {
	n := openNavigator(5)
	n.Handle(KeyArrowDown)
	n.Handle(KeyArrowDown)

	n.Reset(2)
	assert.Equal(t, -1, n.Active())
	assert.Equal(t, ModeOpen, n.Mode())

	n.Reset(0)
	assert.Equal(t, ModeClosed, n.Mode())
}
