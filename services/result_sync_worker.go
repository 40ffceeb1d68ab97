package services

import (
	"context"
	"log"
	"sync"
	"time"

	"kickoffAPI/internal/match"
	"kickoffAPI/internal/metrics"
	"kickoffAPI/internal/resultsync"
	"kickoffAPI/internal/scoring"

	"github.com/google/uuid"
)

// maxFeedWindow is the longest dateFrom..dateTo range the feed accepts.
const maxFeedWindow = 10 * 24 * time.Hour

type ResultFeed interface {
	FinishedMatches(ctx context.Context, from, to time.Time) ([]resultsync.FeedMatch, error)
}

type resultStore interface {
	ListPendingResults(ctx context.Context, now time.Time) ([]*match.Match, error)
	RecordResult(ctx context.Context, matchID uuid.UUID, req *match.RecordResultRequest) (*match.Match, error)
}

// ResultSyncWorker periodically copies final scores from the results feed
// onto matches that have kicked off but are not finished locally.
type ResultSyncWorker struct {
	store    resultStore
	feed     ResultFeed
	interval time.Duration
	now      func() time.Time
	syncMu   sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewResultSyncWorker(store resultStore, feed ResultFeed, interval time.Duration) *ResultSyncWorker {
	return &ResultSyncWorker{
		store:    store,
		feed:     feed,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

func (w *ResultSyncWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				if _, err := w.SyncOnce(ctx); err != nil {
					log.Printf("ResultSync: run failed: %v", err)
				}
				cancel()
			case <-w.stopChan:
				return
			}
		}
	}()
	log.Printf("ResultSync: started, interval %s", w.interval)
}

func (w *ResultSyncWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
}

// SyncOnce runs one sync pass and returns how many matches were updated.
// Passes are serialized, so a manual sync waits for a running ticker pass.
func (w *ResultSyncWorker) SyncOnce(ctx context.Context) (int, error) {
	w.syncMu.Lock()
	defer w.syncMu.Unlock()

	now := w.now()

	pending, err := w.store.ListPendingResults(ctx, now)
	if err != nil {
		metrics.ResultSyncRuns.WithLabelValues("error").Inc()
		return 0, err
	}
	if len(pending) == 0 {
		metrics.ResultSyncRuns.WithLabelValues("idle").Inc()
		return 0, nil
	}

	from := feedWindowStart(pending, now)

	feedMatches, err := w.feed.FinishedMatches(ctx, from, now)
	if err != nil {
		metrics.ResultSyncRuns.WithLabelValues("error").Inc()
		return 0, err
	}

	updated := 0
	for _, fm := range feedMatches {
		home, away, ok := fm.Final()
		if !ok {
			continue
		}

		local, found := resultsync.FindFixture(pending, fm)
		if !found {
			log.Printf("ResultSync: no local fixture for %s vs %s on %s", fm.HomeTeam.Name, fm.AwayTeam.Name, fm.UTCDate.Format("2006-01-02"))
			continue
		}

		req := &match.RecordResultRequest{
			Status:    scoring.StatusFinished,
			HomeScore: &home,
			AwayScore: &away,
		}
		if _, err := w.store.RecordResult(ctx, local.ID, req); err != nil {
			log.Printf("ResultSync: failed to record %s: %v", local.ID, err)
			continue
		}

		pending = removeMatch(pending, local.ID)
		updated++
	}

	metrics.ResultSyncRuns.WithLabelValues("ok").Inc()
	log.Printf("ResultSync: %d of %d feed results applied", updated, len(feedMatches))
	return updated, nil
}

// feedWindowStart is the earliest pending kickoff, clamped to maxFeedWindow
// before now. Older fixtures need a manual result.
func feedWindowStart(pending []*match.Match, now time.Time) time.Time {
	floor := now.Add(-maxFeedWindow)

	from := pending[0].KickoffAt
	for _, m := range pending[1:] {
		if m.KickoffAt.Before(from) {
			from = m.KickoffAt
		}
	}

	if from.Before(floor) {
		log.Printf("ResultSync: pending fixtures from %s are outside the feed window, syncing from %s", from.Format("2006-01-02"), floor.Format("2006-01-02"))
		return floor
	}
	return from
}

func removeMatch(matches []*match.Match, id uuid.UUID) []*match.Match {
	out := matches[:0]
	for _, m := range matches {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
