// Package timer tracks live per-task work sessions and commits elapsed or
// manually entered time into a task's actual hours.
//
// Each task is either Idle or Running; timers for different tasks are
// independent. Wrong-state transitions (double start, double stop) are
// non-fatal no-ops reported through sentinel errors so callers can show a
// notice without aborting anything.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmarin/obra/internal/models"
	"github.com/lmarin/obra/internal/timefmt"
)

// TimeCommitter persists a committed work session: one time entry plus the
// task's actual-hours increment, atomically. It returns the task's new
// actual-hours total.
//
// The sqlite task repository implements this. Anything wanting to make
// *running* timers durable would wrap it; the state machine itself stays
// storage-free.
type TimeCommitter interface {
	CommitTime(ctx context.Context, taskID int, entry models.TimeEntry) (float64, error)
}

// Manager owns the active-timer map. Safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	active    map[int]time.Time // task ID -> session start
	committer TimeCommitter
	clock     func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithClock substitutes the wall clock, for tests
func WithClock(clock func() time.Time) Option {
	return func(mgr *Manager) { mgr.clock = clock }
}

// NewManager creates a Manager committing through the given committer
func NewManager(committer TimeCommitter, opts ...Option) *Manager {
	mgr := &Manager{
		active:    make(map[int]time.Time),
		committer: committer,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// Start begins a session for the task. Returns ErrAlreadyRunning (and
// leaves the existing session untouched) if one is already live.
func (mgr *Manager) Start(taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if _, running := mgr.active[taskID]; running {
		return ErrAlreadyRunning
	}
	mgr.active[taskID] = mgr.clock()
	return nil
}

// Running reports whether the task has a live session
func (mgr *Manager) Running(taskID int) bool {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	_, ok := mgr.active[taskID]
	return ok
}

// ActiveCount returns the number of live sessions
func (mgr *Manager) ActiveCount() int {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return len(mgr.active)
}

// Elapsed returns the live "HH:MM:SS" display for every running timer.
// A pure read derivation; committed hours are untouched. The 1-second UI
// tick calls this once and fans the result out over the task list.
func (mgr *Manager) Elapsed() map[int]string {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	now := mgr.clock()
	out := make(map[int]string, len(mgr.active))
	for taskID, start := range mgr.active {
		out[taskID] = timefmt.EncodeSeconds(int(now.Sub(start).Seconds()))
	}
	return out
}

// Stop ends the task's session and commits the elapsed hours. Returns
// ErrNotRunning as a no-op when there is no session, so a second Stop
// observes Idle and commits nothing. If the commit fails the session stays
// Running and no time is lost.
//
// The lock is held across the commit so two racing Stops for the same task
// cannot both read the session; exactly one commits.
func (mgr *Manager) Stop(ctx context.Context, taskID int) (models.TimeEntry, error) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	start, running := mgr.active[taskID]
	if !running {
		return models.TimeEntry{}, ErrNotRunning
	}

	now := mgr.clock()
	entry := models.TimeEntry{
		TaskID:    taskID,
		StartTime: start,
		EndTime:   now,
		Hours:     now.Sub(start).Hours(),
		Date:      localDay(now),
	}

	if _, err := mgr.committer.CommitTime(ctx, taskID, entry); err != nil {
		return models.TimeEntry{}, fmt.Errorf("failed to commit session: %w", err)
	}

	delete(mgr.active, taskID)
	return entry, nil
}

// AddManual commits a manually entered duration given as "HH:MM:SS".
// Validation happens before any mutation: a duration that parses to zero or
// less is rejected with ErrInvalidDuration and nothing is committed.
func (mgr *Manager) AddManual(ctx context.Context, taskID int, hms string, date time.Time, description string) (models.TimeEntry, error) {
	if taskID <= 0 {
		return models.TimeEntry{}, ErrInvalidTaskID
	}

	hours := timefmt.Decode(hms)
	if hours <= 0 {
		return models.TimeEntry{}, fmt.Errorf("%w: %q", ErrInvalidDuration, hms)
	}

	entry := models.TimeEntry{
		TaskID:      taskID,
		Hours:       hours,
		Description: description,
		Date:        date,
	}

	if _, err := mgr.committer.CommitTime(ctx, taskID, entry); err != nil {
		return models.TimeEntry{}, fmt.Errorf("failed to commit manual entry: %w", err)
	}
	return entry, nil
}

// localDay is midnight of t's calendar day in t's location. Truncating on
// absolute UTC days would file an evening session west of UTC under the
// next work date.
func localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
