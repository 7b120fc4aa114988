package leetcode

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yhlin/leetcoder/internal/db"
	"github.com/yhlin/leetcoder/internal/logging"
)

// Syncer bulk-populates the record store from the remote catalog, one
// problem at a time with a fixed inter-request delay as a throttle.
type Syncer struct {
	client *Client
	store  *db.Store
	delay  time.Duration
	force  bool
	log    *logrus.Logger
}

// SyncResult summarizes one sync pass.
type SyncResult struct {
	RunID   string
	Synced  int
	Skipped int
	Failed  int
}

// NewSyncer creates a Syncer. With force=false, problems already in the
// store are skipped; upserts are idempotent by id, so an interrupted pass
// is safe to resume.
func NewSyncer(client *Client, store *db.Store, delay time.Duration, force bool) *Syncer {
	return &Syncer{
		client: client,
		store:  store,
		delay:  delay,
		force:  force,
		log:    logging.Get(),
	}
}

// Run enumerates the catalog and upserts each problem. Per-item failures
// are counted and logged but never abort the pass; only a failed catalog
// enumeration is fatal.
func (s *Syncer) Run(ctx context.Context) (*SyncResult, error) {
	summaries, err := s.client.AllSummaries(ctx)
	if err != nil {
		return nil, err
	}

	run, err := s.store.StartSyncRun()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{RunID: run.ID}
	for _, sum := range summaries {
		if !s.force {
			existing, err := s.store.GetProblem(sum.ID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				result.Skipped++
				continue
			}
		}

		p, err := s.client.ProblemBySlug(ctx, sum.Slug)
		if err != nil {
			result.Failed++
			s.log.WithFields(logrus.Fields{"id": sum.ID, "slug": sum.Slug}).
				WithError(err).Warn("failed to fetch problem, continuing")
			s.throttle()
			continue
		}

		if err := s.store.UpsertProblem(p); err != nil {
			result.Failed++
			s.log.WithFields(logrus.Fields{"id": sum.ID, "slug": sum.Slug}).
				WithError(err).Warn("failed to store problem, continuing")
			s.throttle()
			continue
		}

		result.Synced++
		s.log.WithFields(logrus.Fields{"id": sum.ID, "slug": sum.Slug}).Debug("synced problem")
		s.throttle()
	}

	run.Synced = result.Synced
	run.Skipped = result.Skipped
	run.Failed = result.Failed
	if err := s.store.FinishSyncRun(run); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Syncer) throttle() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}
