package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyChangeInsert(t *testing.T) {
	list := []Trip{{ID: 1, Date: "2024-01-01", Route: "R1"}}

	out := ApplyChange(list, InsertEvent(Trip{ID: 2, Date: "2024-01-02", Route: "R2"}))
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Len(t, list, 1, "input is not mutated")

	again := ApplyChange(out, InsertEvent(Trip{ID: 2, Date: "2024-01-02", Route: "R2b"}))
	require.Len(t, again, 2, "an echoed insert replaces instead of duplicating")
	assert.Equal(t, "R2b", again[0].Route)
}

func TestApplyChangeUpdateAndDelete(t *testing.T) {
	list := []Trip{{ID: 1, Date: "2024-01-01", Route: "R1"}, {ID: 2, Date: "2024-01-02", Route: "R2"}}

	out := ApplyChange(list, UpdateEvent(Trip{ID: 2, Date: "2024-01-02", Route: "R2", Price: 900}))
	assert.Equal(t, 900.0, out[1].Price)
	assert.Equal(t, 900.0, out[1].Profit)
	assert.Zero(t, list[1].Price)

	missing := ApplyChange(list, UpdateEvent(Trip{ID: 9, Date: "2024-01-02"}))
	assert.Equal(t, list, missing)

	out = ApplyChange(list, DeleteEvent(1))
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestApplyChangeIgnoresUnknownEvents(t *testing.T) {
	list := []Trip{{ID: 1}}
	assert.Equal(t, list, ApplyChange(list, ChangeEvent{Type: "TRUNCATE"}))
	assert.Equal(t, list, ApplyChange(list, ChangeEvent{Type: ChangeInsert}))
}
