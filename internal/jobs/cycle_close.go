package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/services"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule fires at 00:05:00 on the 20th, right after a cycle
// closes. The schedule has a seconds field.
const DefaultSchedule = "0 5 0 20 * *"

// CycleSource is the part of CycleService the exporter reads.
type CycleSource interface {
	Trips(ctx context.Context, c billing.Cycle, driver string) ([]billing.Trip, error)
	CNDeductions(ctx context.Context) (billing.CNMap, error)
}

// CycleCloseExporter writes the workbook of each closed cycle to disk.
type CycleCloseExporter struct {
	Cycles   CycleSource
	Export   services.ExportService
	Dir      string
	Schedule string

	scheduler *cron.Cron
	jobID     cron.EntryID
}

func NewCycleCloseExporter(cycles CycleSource, dir, schedule string) *CycleCloseExporter {
	return &CycleCloseExporter{
		Cycles:    cycles,
		Export:    services.ExportService{RequestID: "cron"},
		Dir:       dir,
		Schedule:  schedule,
		scheduler: cron.New(cron.WithSeconds()),
	}
}

func (e *CycleCloseExporter) Start() error {
	spec := e.Schedule
	if spec == "" {
		spec = DefaultSchedule
	}
	var err error
	e.jobID, err = e.scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := e.RunOnce(ctx, time.Now()); err != nil {
			log.Printf("[JOBS] action=cycle_close_export err=%v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule cycle close export: %w", err)
	}
	e.scheduler.Start()
	log.Printf("[JOBS] action=start job=cycle_close_export schedule=%q", spec)
	return nil
}

// Stop waits for a running export to finish or ctx to expire.
func (e *CycleCloseExporter) Stop(ctx context.Context) {
	if e.scheduler == nil {
		return
	}
	select {
	case <-e.scheduler.Stop().Done():
	case <-ctx.Done():
	}
	log.Println("[JOBS] action=stop job=cycle_close_export")
}

// RunOnce exports the cycle that closed most recently before now. A
// cycle without trips writes nothing and returns an empty path.
func (e *CycleCloseExporter) RunOnce(ctx context.Context, now time.Time) (string, error) {
	c := billing.CurrentCycle(now).Prev()
	trips, err := e.Cycles.Trips(ctx, c, "")
	if err != nil {
		return "", err
	}
	if len(trips) == 0 {
		log.Printf("[JOBS] action=cycle_close_export cycle=%s msg=no trips", c.Key())
		return "", nil
	}
	cn, err := e.Cycles.CNDeductions(ctx)
	if err != nil {
		return "", err
	}

	data, _, err := e.Export.XLSX(trips, c, cn)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.Dir, fmt.Sprintf("cycle-%s.xlsx", c.Key()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	log.Printf("[JOBS] action=cycle_close_export cycle=%s trips=%d path=%s", c.Key(), len(trips), path)
	return path, nil
}
