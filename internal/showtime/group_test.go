package showtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestGroupByMovie_GroupsInFirstSeenOrder(t *testing.T) {
	records := []Record{
		{UID: "a", MovieUID: "m1", MovieTitle: "X", StartsAt: mustParse(t, "2025-01-01T14:30:00Z")},
		{UID: "b", MovieUID: "m1", MovieTitle: "X", StartsAt: mustParse(t, "2025-01-01T17:00:00Z")},
		{UID: "c", MovieUID: "m2", MovieTitle: "Y", StartsAt: mustParse(t, "2025-01-01T19:00:00Z")},
	}
	groups := GroupByMovie(records, time.UTC)

	require.Len(t, groups, 2)
	assert.Equal(t, "m1", groups[0].MovieUID)
	assert.Equal(t, "X", groups[0].Title)
	require.Len(t, groups[0].Slots, 2)
	assert.Equal(t, Slot{UID: "a", Time: "14:30"}, groups[0].Slots[0])
	assert.Equal(t, Slot{UID: "b", Time: "17:00"}, groups[0].Slots[1])

	assert.Equal(t, "m2", groups[1].MovieUID)
	require.Len(t, groups[1].Slots, 1)
	assert.Equal(t, Slot{UID: "c", Time: "19:00"}, groups[1].Slots[0])
}

func TestGroupByMovie_KeyIsMovieUIDNotTitle(t *testing.T) {
	// Two distinct movies sharing a title must not be merged.
	records := []Record{
		{UID: "a", MovieUID: "m1", MovieTitle: "Remake", StartsAt: mustParse(t, "2025-01-01T10:00:00Z")},
		{UID: "b", MovieUID: "m2", MovieTitle: "Remake", StartsAt: mustParse(t, "2025-01-01T12:00:00Z")},
	}
	groups := GroupByMovie(records, time.UTC)
	require.Len(t, groups, 2)
	assert.Equal(t, "m1", groups[0].MovieUID)
	assert.Equal(t, "m2", groups[1].MovieUID)
}

func TestGroupByMovie_IsAPartition(t *testing.T) {
	records := []Record{
		{UID: "a", MovieUID: "m2", StartsAt: mustParse(t, "2025-01-01T10:00:00Z")},
		{UID: "b", MovieUID: "m1", StartsAt: mustParse(t, "2025-01-01T11:00:00Z")},
		{UID: "c", MovieUID: "m2", StartsAt: mustParse(t, "2025-01-01T12:00:00Z")},
		{UID: "d", MovieUID: "m3", StartsAt: mustParse(t, "2025-01-01T13:00:00Z")},
		{UID: "e", MovieUID: "m1", StartsAt: mustParse(t, "2025-01-01T14:00:00Z")},
	}
	groups := GroupByMovie(records, time.UTC)

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, s := range g.Slots {
			seen[s.UID]++
			total++
		}
	}
	assert.Equal(t, len(records), total, "every input record appears in the output")
	for _, r := range records {
		assert.Equal(t, 1, seen[r.UID], "record %s appears exactly once", r.UID)
	}
}

func TestGroupByMovie_OrderStable(t *testing.T) {
	records := []Record{
		{UID: "a", MovieUID: "m2", StartsAt: mustParse(t, "2025-01-01T10:00:00Z")},
		{UID: "b", MovieUID: "m1", StartsAt: mustParse(t, "2025-01-01T11:00:00Z")},
		{UID: "c", MovieUID: "m3", StartsAt: mustParse(t, "2025-01-01T12:00:00Z")},
	}
	first := GroupByMovie(records, time.UTC)
	second := GroupByMovie(records, time.UTC)
	assert.Equal(t, first, second)
	assert.Equal(t, "m2", first[0].MovieUID, "first-seen order, not sorted")
}

func TestGroupByMovie_EmptyInput(t *testing.T) {
	groups := GroupByMovie(nil, time.UTC)
	require.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByMovie_LabelsUseViewerZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	records := []Record{
		{UID: "a", MovieUID: "m1", StartsAt: mustParse(t, "2025-06-01T18:30:00Z")},
	}
	groups := GroupByMovie(records, berlin)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Slots, 1)
	assert.Equal(t, "20:30", groups[0].Slots[0].Time, "18:30 UTC is 20:30 CEST")
}
