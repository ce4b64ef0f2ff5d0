package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectAll_ReplacesPreviousSelection(t *testing.T) {
	tr := NewTracker()
	tr.SelectAll([]string{"a", "b"})
	tr.SelectOne("z", true)

	tr.SelectAll([]string{"c", "d"})

	assert.Equal(t, []string{"c", "d"}, tr.IDs())
	assert.False(t, tr.Has("a"))
	assert.False(t, tr.Has("z"))
}

func TestSelectAll_Idempotent(t *testing.T) {
	once := NewTracker()
	once.SelectAll([]string{"b", "a", "c"})

	twice := NewTracker()
	twice.SelectAll([]string{"b", "a", "c"})
	twice.SelectAll([]string{"b", "a", "c"})

	assert.Equal(t, once.IDs(), twice.IDs())
}

func TestSelectOne_AddAndRemove(t *testing.T) {
	tr := NewTracker()
	tr.SelectOne("x", true)
	tr.SelectOne("y", true)
	tr.SelectOne("x", false)
	tr.SelectOne("missing", false)

	assert.Equal(t, []string{"y"}, tr.IDs())
	assert.Equal(t, 1, tr.Len())
}

func TestState_Flags(t *testing.T) {
	tr := NewTracker()
	page := []string{"a", "b", "c"}

	all, some := tr.State(page)
	assert.False(t, all)
	assert.False(t, some)

	tr.SelectOne("b", true)
	all, some = tr.State(page)
	assert.False(t, all)
	assert.True(t, some)

	tr.SelectAll(page)
	all, some = tr.State(page)
	assert.True(t, all)
	assert.True(t, some)
}

func TestState_EmptyPageIsNeverAllSelected(t *testing.T) {
	tr := NewTracker()
	tr.SelectOne("a", true)

	all, some := tr.State(nil)
	assert.False(t, all)
	assert.False(t, some)
}

func TestSelection_SurvivesPageChangeAndKeepsStaleIDs(t *testing.T) {
	tr := NewTracker()
	tr.SelectAll([]string{"p1-a", "p1-b"})

	// Moving to another page does not touch the selection.
	all, some := tr.State([]string{"p2-a"})
	assert.False(t, all)
	assert.False(t, some)
	assert.Equal(t, 2, tr.Len())

	tr.Clear()
	assert.Zero(t, tr.Len())

	tr.SelectOne("gone", true)
	tr.SelectNone()
	assert.Empty(t, tr.IDs())
}
