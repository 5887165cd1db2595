// Package loadtest measures /status response times under concurrent users.
package loadtest

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pinger is the single call each simulated user makes. *client.API
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Result struct {
	Users  int
	OK     int
	Failed []error
	Avg    time.Duration
	Max    time.Duration
}

// Run fires users pings at once and waits for all of them. Failed pings are
// collected and left out of the timings.
func Run(ctx context.Context, p Pinger, users int) Result {
	res := Result{Users: users}

	var (
		mu    sync.Mutex
		total time.Duration
	)
	var g errgroup.Group
	for i := 0; i < users; i++ {
		g.Go(func() error {
			start := time.Now()
			err := p.Ping(ctx)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed = append(res.Failed, err)
				return nil
			}
			res.OK++
			total += elapsed
			if elapsed > res.Max {
				res.Max = elapsed
			}
			return nil
		})
	}
	_ = g.Wait()

	if res.OK > 0 {
		res.Avg = total / time.Duration(res.OK)
	}
	return res
}
