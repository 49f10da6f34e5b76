package intake

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sourcegraph/conc/pool"
)

// Rollover clears every user's stale ledger entries shortly after midnight,
// making the "resets daily" promise of the intake tracker real instead of
// UI copy.
type Rollover struct {
	service *Service
	workers int
}

func NewRollover(service *Service, workers int) *Rollover {
	if workers < 1 {
		workers = 1
	}
	return &Rollover{service: service, workers: workers}
}

// Start registers the daily job and starts the scheduler. The returned
// scheduler should be shut down with the server.
func (r *Rollover) Start() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 30))),
		gocron.NewTask(func() {
			if err := r.Run(context.Background()); err != nil {
				log.Printf("[rollover] daily reset failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

// Run performs one rollover pass over all users with a bounded worker pool.
func (r *Rollover) Run(ctx context.Context) error {
	today := time.Now().Format("2006-01-02")

	ids, err := r.service.UserIDs(ctx)
	if err != nil {
		return err
	}

	p := pool.New().WithMaxGoroutines(r.workers)
	for _, id := range ids {
		id := id
		p.Go(func() {
			if err := r.service.ResetBefore(ctx, id, today); err != nil {
				log.Printf("[rollover] reset failed for user=%s: %v", id, err)
			}
		})
	}
	p.Wait()

	log.Printf("[rollover] daily reset completed for %d users", len(ids))
	return nil
}
