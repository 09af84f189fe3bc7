package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/bytenews/pkg/domain"
)

//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester

// Ingester runs one ingestion pass over the sources
type Ingester interface {
	Ingest(ctx context.Context, sources []domain.FeedSource) int
}

// Params holds scheduler dependencies and configuration
type Params struct {
	Ingester       Ingester
	Sources        []domain.FeedSource
	UpdateInterval time.Duration
}

// Scheduler runs ingestion periodically
type Scheduler struct {
	ingester       Ingester
	sources        []domain.FeedSource
	updateInterval time.Duration

	runMu  sync.Mutex // one ingestion pass at a time
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.UpdateInterval <= 0 {
		params.UpdateInterval = 30 * time.Minute
	}
	return &Scheduler{
		ingester:       params.Ingester,
		sources:        params.Sources,
		updateInterval: params.UpdateInterval,
	}
}

// Start runs an ingestion pass right away and then on every update interval
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.updateWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v, %d sources", s.updateInterval, len(s.sources))
}

// Stop cancels the running pass and waits for the worker to exit
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// UpdateNow runs a single ingestion pass and returns the number of new articles.
// Waits if a periodic pass is in progress.
func (s *Scheduler) UpdateNow(ctx context.Context) int {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	st := time.Now()
	added := s.ingester.Ingest(ctx, s.sources)
	lgr.Printf("[INFO] update completed in %v, %d new articles", time.Since(st).Round(time.Millisecond), added)
	return added
}

// Sources returns the configured feed sources
func (s *Scheduler) Sources() []domain.FeedSource {
	res := make([]domain.FeedSource, len(s.sources))
	copy(res, s.sources)
	return res
}

func (s *Scheduler) updateWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	s.UpdateNow(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.UpdateNow(ctx)
		}
	}
}
