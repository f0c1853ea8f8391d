// Package schedule runs recurring background tasks.
//
// Usage:
//
//	schedule.Every(15).Minutes().Name("media.sweep").Run(sweepMedia)
//	schedule.Daily().At("03:30").Run(rebuildReports)
//
//	// Start the scheduler in the background (call once at boot):
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/veyralabs/veyra/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

// entry represents a single scheduled job.
type entry struct {
	id        string
	interval  time.Duration
	atHour    int // -1 unless At() was used
	atMinute  int
	task      Task
	lastRun   time.Time
	running   bool // overlap guard
	noOverlap bool
	mu        sync.Mutex
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every starts a fluent builder with n units.
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

// EveryMinute schedules the task to run every 60 seconds.
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Hourly schedules the task to run every hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily schedules the task to run every 24 hours, or at a fixed clock time
// when combined with At().
func Daily() *Schedule { return Every(24).Hours() }

type freqBuilder struct{ n int }

func (f *freqBuilder) Seconds() *Schedule { return newSchedule(time.Duration(f.n) * time.Second) }
func (f *freqBuilder) Minutes() *Schedule { return newSchedule(time.Duration(f.n) * time.Minute) }
func (f *freqBuilder) Hours() *Schedule   { return newSchedule(time.Duration(f.n) * time.Hour) }
func (f *freqBuilder) Days() *Schedule    { return newSchedule(time.Duration(f.n) * 24 * time.Hour) }

func newSchedule(d time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: d, atHour: -1}}
}

// At pins a daily entry to a "HH:MM" clock time (server local time).
// Invalid times are ignored and the entry keeps its plain interval.
func (s *Schedule) At(clock string) *Schedule {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return s
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return s
	}
	s.e.atHour = h
	s.e.atMinute = m
	return s
}

// WithoutOverlapping prevents a new run if the previous one is still executing.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name gives the entry a human-readable identifier for logging.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task and adds it to the global scheduler registry.
// Call Start() to begin dispatching.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start begins the scheduler loop in the background.
// It ticks every second and dispatches due tasks.
func Start(ctx context.Context) {
	go run(ctx)
	logger.Info("schedule: scheduler started")
}

func run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := make([]*entry, len(entries))
			copy(current, entries)
			regMu.Unlock()

			for _, e := range current {
				if isDue(e, now) {
					dispatch(e)
				}
			}
		}
	}
}

func isDue(e *entry, now time.Time) bool {
	if e.atHour >= 0 {
		if now.Hour() != e.atHour || now.Minute() != e.atMinute {
			return false
		}
		// One run per clock minute.
		return now.Sub(e.lastRun) >= time.Minute
	}
	if e.lastRun.IsZero() {
		return true // first run
	}
	return now.Sub(e.lastRun) >= e.interval
}

func dispatch(e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()

		logger.Info("schedule: running task", "id", e.id)
		e.task()
	}()
}

// List returns all currently registered scheduled entries (for CLI display).
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		freq := e.interval.String()
		if e.atHour >= 0 {
			freq = fmt.Sprintf("daily at %02d:%02d", e.atHour, e.atMinute)
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, freq))
	}
	return out
}
