package loadtest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"pizza-mock/internal/common/logger"
	"pizza-mock/internal/common/metrics"
)

// Runner ramps goroutine virtual users to match the stage profile, each
// looping scenario iterations until ramped down. It is a minimal
// executor for the scenario, not a load-testing product.
type Runner struct {
	log          logger.Logger
	scenario     *Scenario
	stages       []Stage
	gracefulStop time.Duration
	interval     time.Duration

	iterations atomic.Int64
	failures   atomic.Int64
}

func NewRunner(log logger.Logger, scenario *Scenario, stages []Stage, gracefulStop time.Duration) *Runner {
	return &Runner{
		log:          log,
		scenario:     scenario,
		stages:       stages,
		gracefulStop: gracefulStop,
		interval:     500 * time.Millisecond,
	}
}

// Run drives the ramp profile to completion, then winds the virtual
// users down within the graceful-stop window.
func (r *Runner) Run(ctx context.Context) error {
	total := TotalDuration(r.stages)
	start := time.Now()

	vuCtx, cancelVUs := context.WithCancel(ctx)
	defer cancelVUs()

	var (
		wg      sync.WaitGroup
		cancels []context.CancelFunc
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	running := true
	for running {
		select {
		case <-ctx.Done():
			running = false
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if elapsed >= total {
				running = false
				break
			}
			want := TargetAt(r.stages, 0, elapsed)
			for len(cancels) < want {
				c, cancel := context.WithCancel(vuCtx)
				cancels = append(cancels, cancel)
				wg.Add(1)
				go r.runVU(c, &wg)
			}
			for len(cancels) > want {
				last := len(cancels) - 1
				cancels[last]()
				cancels = cancels[:last]
			}
			metrics.LoadVirtualUsers.Set(float64(len(cancels)))
		}
	}

	cancelVUs()
	metrics.LoadVirtualUsers.Set(0)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(r.gracefulStop):
		r.log.Warn("virtual users did not stop within the graceful window", map[string]interface{}{
			"gracefulStop": r.gracefulStop.String(),
		})
	}

	r.log.Info("load run finished", map[string]interface{}{
		"iterations": r.Iterations(),
		"failures":   r.Failures(),
		"elapsed":    time.Since(start).String(),
	})
	return ctx.Err()
}

func (r *Runner) runVU(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	for ctx.Err() == nil {
		err := r.scenario.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		r.iterations.Add(1)
		if err != nil {
			r.failures.Add(1)
			metrics.LoadIterationsTotal.WithLabelValues("failure").Inc()
			r.log.WithError(err).Warn("iteration failed", nil)
			continue
		}
		metrics.LoadIterationsTotal.WithLabelValues("success").Inc()
	}
}

// Iterations reports completed scenario iterations.
func (r *Runner) Iterations() int64 { return r.iterations.Load() }

// Failures reports iterations aborted at a checkpoint.
func (r *Runner) Failures() int64 { return r.failures.Load() }
