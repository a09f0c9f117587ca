package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetbilling/internal/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCycles struct {
	trips []billing.Trip
	asked []billing.Cycle
}

func (s *stubCycles) Trips(ctx context.Context, c billing.Cycle, driver string) ([]billing.Trip, error) {
	s.asked = append(s.asked, c)
	return billing.FilterCycle(s.trips, c), nil
}

func (s *stubCycles) CNDeductions(ctx context.Context) (billing.CNMap, error) {
	return billing.CNMap{}, nil
}

func TestRunOnceExportsClosedCycle(t *testing.T) {
	dir := t.TempDir()
	src := &stubCycles{trips: []billing.Trip{
		{ID: 1, Date: "2024-01-19", DriverName: "A", Route: "R1", Price: 1000, Wage: 400},
		{ID: 2, Date: "2024-01-20", DriverName: "A", Route: "R1", Price: 1000, Wage: 400},
	}}
	job := NewCycleCloseExporter(src, dir, "")

	now := time.Date(2024, time.January, 20, 0, 5, 0, 0, time.Local)
	path, err := job.RunOnce(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, billing.Cycle{Month: 0, Year: 2024}, src.asked[0])
	assert.Equal(t, filepath.Join(dir, "cycle-2024-01.xlsx"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunOnceSkipsEmptyCycle(t *testing.T) {
	job := NewCycleCloseExporter(&stubCycles{}, t.TempDir(), "")
	path, err := job.RunOnce(context.Background(), time.Date(2024, time.March, 20, 0, 5, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	job := NewCycleCloseExporter(&stubCycles{}, t.TempDir(), "not a cron spec")
	assert.Error(t, job.Start())

	ok := NewCycleCloseExporter(&stubCycles{}, t.TempDir(), DefaultSchedule)
	require.NoError(t, ok.Start())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ok.Stop(ctx)
}
