package job

import (
	"context"
	"fmt"
	"log"
	"time"

	"tgju-tracker/internal/service"

	"go.opentelemetry.io/otel/trace"
)

type CycleRunner interface {
	RunCycle(ctx context.Context) (*service.CycleResult, error)
}

// Reporter renders cycle outcomes for the user.
type Reporter interface {
	Started()
	InitialSnapshot(result *service.CycleResult)
	Changes(result *service.CycleResult)
	CycleFailed(err error, retryIn time.Duration)
	Countdown(remaining time.Duration)
	Stopped()
}

// TrackerJob drives the fetch cycle: a seed cycle, then one cycle per
// interval, with a longer backoff after a failed cycle. Only one cycle is
// ever in flight.
type TrackerJob struct {
	tracer   trace.Tracer
	runner   CycleRunner
	reporter Reporter
	interval time.Duration
	backoff  time.Duration
	tick     time.Duration
}

func NewTrackerJob(tracer trace.Tracer, runner CycleRunner, reporter Reporter, interval, backoff time.Duration) *TrackerJob {
	if interval <= 0 {
		interval = 300 * time.Second
	}
	if backoff <= 0 {
		backoff = 30 * time.Second
	}
	return &TrackerJob{
		tracer:   tracer,
		runner:   runner,
		reporter: reporter,
		interval: interval,
		backoff:  backoff,
		tick:     time.Second,
	}
}

// Start blocks until ctx is cancelled, then reports the shutdown once.
func (j *TrackerJob) Start(ctx context.Context) {
	log.Println("Tracker job starting...")
	j.reporter.Started()

	seeded := false
	for ctx.Err() == nil {
		result, err := j.runOnce(ctx)
		if ctx.Err() != nil {
			break
		}
		if err != nil {
			j.reporter.CycleFailed(err, j.backoff)
			if !j.wait(ctx, j.backoff, false) {
				break
			}
			continue
		}

		if !seeded {
			j.reporter.InitialSnapshot(result)
			seeded = true
		} else {
			j.reporter.Changes(result)
		}

		if !j.wait(ctx, j.interval, true) {
			break
		}
	}

	j.reporter.Stopped()
	log.Println("Tracker job stopped")
}

// runOnce executes one cycle. A panic inside the cycle is turned into an
// error so the loop keeps running.
func (j *TrackerJob) runOnce(ctx context.Context) (result *service.CycleResult, err error) {
	ctx, span := j.tracer.Start(ctx, "tracker-job.run-once")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("tracker cycle panic: %v", r)
			result, err = nil, fmt.Errorf("unexpected cycle failure: %v", r)
		}
	}()

	result, err = j.runner.RunCycle(ctx)
	if err != nil {
		log.Printf("tracker cycle error: %v", err)
		return nil, err
	}
	return result, nil
}

// wait sleeps for d in tick-sized steps and reports false if ctx was
// cancelled first. With countdown set, each step is reported.
func (j *TrackerJob) wait(ctx context.Context, d time.Duration, countdown bool) bool {
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			if countdown {
				j.reporter.Countdown(0)
			}
			return true
		}
		if countdown {
			j.reporter.Countdown(remaining.Round(j.tick))
		}

		timer := time.NewTimer(min(j.tick, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			if countdown {
				j.reporter.Countdown(0)
			}
			return false
		case <-timer.C:
		}
	}
}
