// Package scheduler runs the recurring notification dispatch jobs. Each
// channel owns an independent Runner; a blocked firing delays only that
// channel's next firing.
package scheduler

import (
	"context"
	"sync"
	"time"

	"aqi-notifier/internal/logging"
)

// Trigger computes the next firing time after a given instant, so firing
// logic stays testable without waiting on wall-clock time.
type Trigger interface {
	Next(after time.Time) time.Time
}

// Interval fires on a fixed period.
type Interval struct {
	Every time.Duration
}

func (i Interval) Next(after time.Time) time.Time {
	return after.Add(i.Every)
}

// DailyAt fires once a day at a fixed local time.
type DailyAt struct {
	Hour   int
	Minute int
	Loc    *time.Location
}

func (d DailyAt) Next(after time.Time) time.Time {
	loc := d.Loc
	if loc == nil {
		loc = time.Local
	}
	t := after.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), d.Hour, d.Minute, 0, 0, loc)
	if !next.After(after) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

type job struct {
	name    string
	trigger Trigger
	run     func(ctx context.Context)
}

// Runner fires registered jobs on their triggers until Shutdown. Jobs run
// sequentially within a firing; each registered job gets its own goroutine.
type Runner struct {
	jobs   []job
	logger *logging.Logger
	now    func() time.Time
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(logger *logging.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		logger: logger,
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers a job. Must be called before Start.
func (r *Runner) Add(name string, trigger Trigger, run func(ctx context.Context)) {
	r.jobs = append(r.jobs, job{name: name, trigger: trigger, run: run})
}

// Start launches one goroutine per registered job.
func (r *Runner) Start() {
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(j)
	}
}

// Shutdown stops future firings and waits for in-flight ones to drain.
func (r *Runner) Shutdown() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) loop(j job) {
	defer r.wg.Done()

	timer := time.NewTimer(j.trigger.Next(r.now()).Sub(r.now()))
	defer timer.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Infof("Job %s stopped", j.name)
			return
		case <-timer.C:
			j.run(r.ctx)
			timer.Reset(j.trigger.Next(r.now()).Sub(r.now()))
		}
	}
}
