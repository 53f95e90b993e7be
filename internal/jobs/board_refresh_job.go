package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// DefaultBoardRefreshSchedule polls every five seconds.
const DefaultBoardRefreshSchedule = "*/5 * * * * *"

// maxConcurrentRefreshes bounds the boards loaded at the same time.
const maxConcurrentRefreshes = 4

// MaxIdleRefreshes is how many refreshes a supplier stays watched without
// Watch or Snapshot being called for it.
const MaxIdleRefreshes = 12

type boardLoader interface {
	Handle(ctx context.Context, query queries.GetStatusBoardQuery) (services.Board, error)
}

// BoardSnapshot is the last board loaded for a supplier.
type BoardSnapshot struct {
	Board       services.Board
	RefreshedAt time.Time
}

type watchedBoard struct {
	generation uint64
	snapshot   *BoardSnapshot
	// refreshes since the board was last watched or read
	idle int
}

// BoardRefreshJob keeps the boards of watched suppliers fresh by polling.
// A supplier nobody asked about for MaxIdleRefreshes refreshes is dropped.
//
// Every watched supplier carries a generation. A refresh remembers the
// generation it started from and its result is dropped when the generation
// moved on (Invalidate was called) or the job was stopped in the meantime.
type BoardRefreshJob struct {
	loader   boardLoader
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *slog.Logger

	mu      sync.Mutex
	watched map[kernel.UUID]*watchedBoard
	stopped bool
}

// NewBoardRefreshJob creates the job. An empty schedule falls back to
// DefaultBoardRefreshSchedule. Schedules have a seconds field.
func NewBoardRefreshJob(loader boardLoader, schedule string, logger *slog.Logger) *BoardRefreshJob {
	if schedule == "" {
		schedule = DefaultBoardRefreshSchedule
	}
	return &BoardRefreshJob{
		loader:   loader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		now:      time.Now,
		logger:   logger.With("component", "board_refresh_job"),
		watched:  make(map[kernel.UUID]*watchedBoard),
	}
}

// Watch adds supplierID to the polled set, or keeps it there.
func (j *BoardRefreshJob) Watch(supplierID kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w, ok := j.watched[supplierID]; ok {
		w.idle = 0
		return
	}
	j.watched[supplierID] = &watchedBoard{}
}

// Unwatch stops polling supplierID and forgets its snapshot.
func (j *BoardRefreshJob) Unwatch(supplierID kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()

	delete(j.watched, supplierID)
}

// Invalidate drops the snapshot of supplierID after one of its orders changed.
// A refresh already running for it will not be applied.
func (j *BoardRefreshJob) Invalidate(supplierID kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w, ok := j.watched[supplierID]; ok {
		w.generation++
		w.snapshot = nil
	}
}

// Snapshot returns the last applied board of supplierID and counts as a read.
func (j *BoardRefreshJob) Snapshot(supplierID kernel.UUID) (BoardSnapshot, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	w, ok := j.watched[supplierID]
	if !ok {
		return BoardSnapshot{}, false
	}
	w.idle = 0
	if w.snapshot == nil {
		return BoardSnapshot{}, false
	}
	return *w.snapshot, true
}

// Refresh loads the board of every watched supplier once and returns when
// all loads finished.
func (j *BoardRefreshJob) Refresh(ctx context.Context) {
	type pending struct {
		supplierID kernel.UUID
		generation uint64
	}

	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	batch := make([]pending, 0, len(j.watched))
	for id, w := range j.watched {
		w.idle++
		if w.idle > MaxIdleRefreshes {
			delete(j.watched, id)
			j.logger.DebugContext(ctx, "no longer watching idle board", "supplier_id", id.String())
			continue
		}
		batch = append(batch, pending{supplierID: id, generation: w.generation})
	}
	j.mu.Unlock()

	var g errgroup.Group
	g.SetLimit(maxConcurrentRefreshes)
	for _, p := range batch {
		g.Go(func() error {
			j.refreshOne(ctx, p.supplierID, p.generation)
			return nil
		})
	}
	_ = g.Wait()
}

func (j *BoardRefreshJob) refreshOne(ctx context.Context, supplierID kernel.UUID, generation uint64) {
	query, err := queries.NewGetStatusBoardQuery(supplierID)
	if err != nil {
		j.logger.ErrorContext(ctx, "invalid watched supplier", "supplier_id", supplierID.String(), "error", err)
		return
	}

	board, err := j.loader.Handle(ctx, query)
	if err != nil {
		// the previous snapshot stays in place
		j.logger.ErrorContext(ctx, "board refresh failed", "supplier_id", supplierID.String(), "error", err)
		return
	}

	j.apply(ctx, supplierID, generation, board)
}

func (j *BoardRefreshJob) apply(ctx context.Context, supplierID kernel.UUID, generation uint64, board services.Board) {
	j.mu.Lock()
	defer j.mu.Unlock()

	w, ok := j.watched[supplierID]
	if j.stopped || !ok || w.generation != generation {
		j.logger.DebugContext(ctx, "discarding stale board refresh", "supplier_id", supplierID.String())
		return
	}
	w.snapshot = &BoardSnapshot{Board: board, RefreshedAt: j.now()}
}

// Start schedules Refresh.
func (j *BoardRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Refresh(context.Background())
	})
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.stopped = false
	j.mu.Unlock()

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Board refresh job started", "schedule", j.schedule)
	return nil
}

// Stop halts polling. Results of a refresh still in progress are discarded.
func (j *BoardRefreshJob) Stop() {
	j.mu.Lock()
	j.stopped = true
	j.mu.Unlock()

	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Board refresh job stopped")
}
