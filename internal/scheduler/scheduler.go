package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Refresher redraws the live counters of running sessions.
type Refresher interface {
	RefreshCounters()
}

// Start runs r every interval until the returned scheduler is shut down.
// The ticker is cosmetic: it only updates the elapsed time shown in chat.
func Start(r Refresher, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.RefreshCounters),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule counter refresh: %w", err)
	}

	s.Start()
	return s, nil
}
