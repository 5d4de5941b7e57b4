package timer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lmarin/obra/internal/models"
)

// fakeCommitter records committed entries and can be told to fail
type fakeCommitter struct {
	entries []models.TimeEntry
	total   float64
	err     error
}

func (f *fakeCommitter) CommitTime(_ context.Context, taskID int, entry models.TimeEntry) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.entries = append(f.entries, entry)
	f.total += entry.Hours
	return f.total, nil
}

// fakeClock advances only when told to
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager() (*Manager, *fakeCommitter, *fakeClock) {
	committer := &fakeCommitter{}
	clock := &fakeClock{now: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)}
	return NewManager(committer, WithClock(clock.Now)), committer, clock
}

func TestStartStopCommitsElapsed(t *testing.T) {
	mgr, committer, clock := newTestManager()
	ctx := context.Background()

	if err := mgr.Start(7); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !mgr.Running(7) {
		t.Fatal("timer should be running after Start")
	}

	clock.Advance(90 * time.Minute)

	entry, err := mgr.Stop(ctx, 7)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if math.Abs(entry.Hours-1.5) > 1e-9 {
		t.Errorf("committed hours = %v, want 1.5", entry.Hours)
	}
	if len(committer.entries) != 1 {
		t.Fatalf("committed %d entries, want 1", len(committer.entries))
	}
	if committer.entries[0].StartTime.IsZero() || committer.entries[0].EndTime.IsZero() {
		t.Error("session entry must carry start and end timestamps")
	}
	if mgr.Running(7) {
		t.Error("timer should be idle after Stop")
	}
}

func TestDoubleStopCommitsOnce(t *testing.T) {
	mgr, committer, clock := newTestManager()
	ctx := context.Background()

	if err := mgr.Start(1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Advance(time.Hour)

	if _, err := mgr.Stop(ctx, 1); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if _, err := mgr.Stop(ctx, 1); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Stop err = %v, want ErrNotRunning", err)
	}
	if len(committer.entries) != 1 {
		t.Errorf("committed %d entries, want exactly 1", len(committer.entries))
	}
}

func TestDoubleStartKeepsOriginalSession(t *testing.T) {
	mgr, committer, clock := newTestManager()
	ctx := context.Background()

	if err := mgr.Start(1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Advance(30 * time.Minute)

	if err := mgr.Start(1); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start err = %v, want ErrAlreadyRunning", err)
	}

	clock.Advance(30 * time.Minute)
	entry, err := mgr.Stop(ctx, 1)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	// Elapsed must span from the first Start, not the rejected second one.
	if math.Abs(entry.Hours-1.0) > 1e-9 {
		t.Errorf("committed hours = %v, want 1.0", entry.Hours)
	}
	_ = committer
}

func TestIndependentTimers(t *testing.T) {
	mgr, committer, clock := newTestManager()
	ctx := context.Background()

	if err := mgr.Start(1); err != nil {
		t.Fatalf("Start(1): %v", err)
	}
	clock.Advance(time.Hour)
	if err := mgr.Start(2); err != nil {
		t.Fatalf("Start(2): %v", err)
	}
	clock.Advance(time.Hour)

	if mgr.ActiveCount() != 2 {
		t.Fatalf("ActiveCount = %d, want 2", mgr.ActiveCount())
	}

	elapsed := mgr.Elapsed()
	if elapsed[1] != "02:00:00" {
		t.Errorf("elapsed[1] = %q, want 02:00:00", elapsed[1])
	}
	if elapsed[2] != "01:00:00" {
		t.Errorf("elapsed[2] = %q, want 01:00:00", elapsed[2])
	}

	// Stopping one leaves the other running.
	if _, err := mgr.Stop(ctx, 1); err != nil {
		t.Fatalf("Stop(1): %v", err)
	}
	if !mgr.Running(2) {
		t.Error("timer 2 should still be running")
	}
	if len(committer.entries) != 1 {
		t.Errorf("committed %d entries, want 1", len(committer.entries))
	}
}

func TestElapsedIsReadOnly(t *testing.T) {
	mgr, committer, clock := newTestManager()

	if err := mgr.Start(3); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Advance(65 * time.Second)

	for i := 0; i < 3; i++ {
		if got := mgr.Elapsed()[3]; got != "00:01:05" {
			t.Errorf("Elapsed = %q, want 00:01:05", got)
		}
	}
	if len(committer.entries) != 0 {
		t.Error("Elapsed must not commit anything")
	}
}

func TestStopFailureKeepsTimerRunning(t *testing.T) {
	committer := &fakeCommitter{err: errors.New("connection refused")}
	clock := &fakeClock{now: time.Now()}
	mgr := NewManager(committer, WithClock(clock.Now))
	ctx := context.Background()

	if err := mgr.Start(5); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Advance(time.Minute)

	if _, err := mgr.Stop(ctx, 5); err == nil {
		t.Fatal("expected commit failure")
	}
	if !mgr.Running(5) {
		t.Error("failed Stop must leave the session running")
	}

	// Once the repository recovers the same session commits fine.
	committer.err = nil
	clock.Advance(time.Minute)
	entry, err := mgr.Stop(ctx, 5)
	if err != nil {
		t.Fatalf("retry Stop: %v", err)
	}
	if math.Abs(entry.Hours-2.0/60) > 1e-9 {
		t.Errorf("committed hours = %v, want two minutes", entry.Hours)
	}
}

func TestAddManual(t *testing.T) {
	mgr, committer, _ := newTestManager()
	ctx := context.Background()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	entry, err := mgr.AddManual(ctx, 4, "02:30:00", date, "code review")
	if err != nil {
		t.Fatalf("AddManual: %v", err)
	}
	if entry.Hours != 2.5 {
		t.Errorf("manual hours = %v, want 2.5", entry.Hours)
	}
	if len(committer.entries) != 1 {
		t.Fatalf("committed %d entries, want 1", len(committer.entries))
	}
	if committer.entries[0].Description != "code review" {
		t.Errorf("description = %q", committer.entries[0].Description)
	}
	if !committer.entries[0].Date.Equal(date) {
		t.Errorf("date = %v, want %v", committer.entries[0].Date, date)
	}
}

func TestAddManualRejectsNonPositive(t *testing.T) {
	mgr, committer, _ := newTestManager()
	ctx := context.Background()

	cases := []string{"00:00:00", "", "garbage", "1:30"}
	for _, input := range cases {
		if _, err := mgr.AddManual(ctx, 4, input, time.Now(), ""); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("AddManual(%q) err = %v, want ErrInvalidDuration", input, err)
		}
	}
	if len(committer.entries) != 0 {
		t.Errorf("rejected input committed %d entries, want 0", len(committer.entries))
	}

	if _, err := mgr.AddManual(ctx, 0, "01:00:00", time.Now(), ""); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("AddManual with bad task err = %v, want ErrInvalidTaskID", err)
	}
}

func TestStopRecordsLocalWorkDate(t *testing.T) {
	committer := &fakeCommitter{}
	// 20:00 on June 15 in a UTC-6 zone is already June 16 in UTC
	tz := time.FixedZone("UTC-6", -6*60*60)
	clock := &fakeClock{now: time.Date(2025, 6, 15, 20, 0, 0, 0, tz)}
	mgr := NewManager(committer, WithClock(clock.Now))
	ctx := context.Background()

	if err := mgr.Start(3); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Advance(time.Hour)

	entry, err := mgr.Stop(ctx, 3)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}

	want := time.Date(2025, 6, 15, 0, 0, 0, 0, tz)
	if !entry.Date.Equal(want) {
		t.Errorf("work date = %v, want local midnight %v", entry.Date, want)
	}
	if entry.Date.In(tz).Day() != 15 {
		t.Errorf("evening session filed under day %d, want 15", entry.Date.In(tz).Day())
	}
}
