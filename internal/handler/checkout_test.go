package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A buyer double-clicking a seat sends its UID twice; the selection must
// collapse it so the lookup-count guard does not reject the purchase.
func TestDedupeSeatUIDs(t *testing.T) {
	got := dedupeSeatUIDs([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)

	assert.Equal(t, []string{"a"}, dedupeSeatUIDs([]string{"a", "a", "a"}))
	assert.Empty(t, dedupeSeatUIDs(nil))
}
