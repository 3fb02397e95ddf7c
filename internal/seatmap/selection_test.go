package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_ToggleAddsAndRemoves(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	assert.Equal(t, []string{"a", "b"}, s.UIDs())

	s.Toggle("a")
	assert.False(t, s.Contains("a"))
	assert.Equal(t, []string{"b"}, s.UIDs())
}

func TestSelection_ToggleIsItsOwnInverse(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	before := s.UIDs()

	s.Toggle("c")
	s.Toggle("c")
	assert.Equal(t, before, s.UIDs(), "double toggle restores prior state")
}

func TestSelection_NoDuplicates(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("a")
	s.Toggle("a")
	assert.Equal(t, []string{"a"}, s.UIDs())
	assert.Equal(t, 1, s.Len())
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.UIDs())
	assert.False(t, s.Contains("a"))

	s.Toggle("c")
	assert.Equal(t, []string{"c"}, s.UIDs())
}

func TestSelection_UIDsReturnsCopy(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	got := s.UIDs()
	got[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.UIDs())
}
