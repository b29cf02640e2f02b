package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

// Scheduler runs the periodic mark-to-market jobs: an intraday snapshot
// that refines each user's day high/low, and an end-of-day snapshot that
// finalizes the daily row. Both iterate all registered users.
type Scheduler struct {
	cron       *cron.Cron
	capital    *service.CapitalService
	userRepo   *repository.UserRepository
	jobTimeout time.Duration
}

// New creates a Scheduler whose cron expressions are evaluated in loc.
func New(capital *service.CapitalService, userRepo *repository.UserRepository, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		capital:    capital,
		userRepo:   userRepo,
		jobTimeout: 2 * time.Minute,
	}
}

// Start registers the jobs and starts the cron loop. An empty spec disables
// the corresponding job.
func (s *Scheduler) Start(snapshotSpec, endOfDaySpec string) error {
	if snapshotSpec != "" {
		if _, err := s.cron.AddFunc(snapshotSpec, func() {
			s.runSnapshots(model.ChangeInterim)
		}); err != nil {
			return err
		}
		log.Printf("scheduled intraday snapshots: %s", snapshotSpec)
	}

	if endOfDaySpec != "" {
		if _, err := s.cron.AddFunc(endOfDaySpec, func() {
			s.runSnapshots(model.ChangeEndOfDay)
		}); err != nil {
			return err
		}
		log.Printf("scheduled end-of-day snapshots: %s", endOfDaySpec)
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// runSnapshots values and persists a capital snapshot for every user. One
// user's failure is logged and does not block the rest.
func (s *Scheduler) runSnapshots(kind model.ChangeKind) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	userIDs, err := s.userRepo.ListUserIDs()
	if err != nil {
		log.Printf("snapshot job: failed to list users: %v", err)
		return
	}

	for _, userID := range userIDs {
		if _, err := s.capital.RecordSnapshot(ctx, userID, kind); err != nil {
			log.Printf("snapshot job: user %s: %v", userID, err)
		}
	}
}
