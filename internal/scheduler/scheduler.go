// Package scheduler sends habit reminders and the daily checklist digests.
//
// It runs on a fixed-interval tick. Each tick compares the current minute of
// the day against every due time and fires on an exact match; a last-fired
// day per (user, event) keeps a re-evaluated minute from firing twice.
package scheduler

import (
	"context"
	"sync"
	"time"

	"habit-bot/internal/domain"
	"habit-bot/internal/logging"
	"habit-bot/internal/notify"
	"habit-bot/internal/sheet"

	"golang.org/x/sync/errgroup"
)

// Defaults used when a Config field is zero.
const (
	DefaultLead     = 10 * time.Minute
	DefaultInterval = 30 * time.Second

	maxConcurrentUsers = 4
)

// Checklists gives the scheduler read access to users' lists.
type Checklists interface {
	LoadTasks(ctx context.Context, user domain.UserID) ([]domain.TaskItem, error)
	Habits(ctx context.Context, user domain.UserID) ([]domain.HabitItem, error)
}

// Users lists everyone who should receive notifications.
type Users interface {
	UserIDs(ctx context.Context) ([]domain.UserID, error)
}

// Config controls when things fire. A nil digest time disables that digest.
type Config struct {
	Lead          time.Duration
	Interval      time.Duration
	TaskDigestAt  *sheet.Clock
	HabitDigestAt *sheet.Clock
}

// EventKind names what a fired event was.
type EventKind string

const (
	EventTaskDigest  EventKind = "task-digest"
	EventHabitDigest EventKind = "habit-digest"
	EventReminder    EventKind = "reminder"
)

// Event is one notification sent by a tick.
type Event struct {
	User domain.UserID
	Kind EventKind
	Key  string // habit key for reminders
}

type firedKey struct {
	user  domain.UserID
	kind  EventKind
	habit string
}

// Scheduler fires reminders and digests for every user.
type Scheduler struct {
	lists    Checklists
	users    Users
	notifier notify.Notifier
	cfg      Config
	now      func() time.Time

	mu    sync.Mutex
	fired map[firedKey]string
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides time.Now for Run.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a scheduler.
func New(lists Checklists, users Users, notifier notify.Notifier, cfg Config, opts ...Option) *Scheduler {
	if cfg.Lead <= 0 {
		cfg.Lead = DefaultLead
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	s := &Scheduler{
		lists:    lists,
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		fired:    make(map[firedKey]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ticks until ctx is done. The first tick happens immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	logging.Infof("scheduler started: tick every %s, reminders %s ahead", s.cfg.Interval, s.cfg.Lead)
	s.Tick(ctx, s.now())
	for {
		select {
		case <-ctx.Done():
			logging.Infof("scheduler stopped")
			return nil
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// Tick evaluates one instant and returns the events it sent.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) []Event {
	users, err := s.users.UserIDs(ctx)
	if err != nil {
		logging.Errorf("scheduler: list users: %v", err)
		return nil
	}

	var (
		mu     sync.Mutex
		events []Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUsers)
	for _, user := range users {
		g.Go(func() error {
			fired := s.tickUser(gctx, user, now)
			mu.Lock()
			events = append(events, fired...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return events
}

func (s *Scheduler) tickUser(ctx context.Context, user domain.UserID, now time.Time) []Event {
	minute := sheet.ClockOf(now).Minutes()
	day := now.Format("2006-01-02")
	var events []Event

	if at := s.cfg.TaskDigestAt; at != nil && at.Minutes() == minute {
		if s.once(firedKey{user: user, kind: EventTaskDigest}, day, func() (bool, error) {
			return s.sendTasks(ctx, user, now)
		}) {
			events = append(events, Event{User: user, Kind: EventTaskDigest})
		}
	}

	habits, err := s.lists.Habits(ctx, user)
	if err != nil {
		logging.Errorf("scheduler: load habits for %d: %v", user, err)
		return events
	}

	if at := s.cfg.HabitDigestAt; at != nil && at.Minutes() == minute && len(habits) > 0 {
		if s.once(firedKey{user: user, kind: EventHabitDigest}, day, func() (bool, error) {
			return true, s.notifier.Send(ctx, user, notify.HabitList(now, habits))
		}) {
			events = append(events, Event{User: user, Kind: EventHabitDigest})
		}
	}

	for _, h := range Due(habits, minute, s.cfg.Lead) {
		if s.once(firedKey{user: user, kind: EventReminder, habit: h.Key()}, day, func() (bool, error) {
			return true, s.notifier.Send(ctx, user, notify.Reminder(h))
		}) {
			events = append(events, Event{User: user, Kind: EventReminder, Key: h.Key()})
		}
	}
	return events
}

func (s *Scheduler) sendTasks(ctx context.Context, user domain.UserID, now time.Time) (bool, error) {
	tasks, err := s.lists.LoadTasks(ctx, user)
	if err != nil {
		return false, err
	}
	if len(tasks) == 0 {
		logging.Debugf("scheduler: no tasks for %d today\n", user)
		return false, nil
	}
	return true, s.notifier.Send(ctx, user, notify.TaskList(now, tasks))
}

// once runs send unless key already fired on day. A failed send stays unmarked
// so the next tick in the same minute retries it; a send that reports false
// counts as handled for the day.
func (s *Scheduler) once(key firedKey, day string, send func() (bool, error)) bool {
	s.mu.Lock()
	if s.fired[key] == day {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	sent, err := send()
	if err != nil {
		logging.Errorf("scheduler: %s for %d: %v", key.kind, key.user, err)
		return false
	}

	s.mu.Lock()
	s.fired[key] = day
	s.mu.Unlock()
	return sent
}

// FireMinute returns the minute of the day a reminder for h goes out. Habits
// earlier than the lead fire at midnight. ok is false for untimed habits.
func FireMinute(h domain.HabitItem, lead time.Duration) (minute int, ok bool) {
	if !h.HasTime() {
		return 0, false
	}
	return sheet.ClockFromMinutes(h.Time.Minutes() - int(lead/time.Minute)).Minutes(), true
}

// Due returns the habits whose reminder falls on minute.
func Due(habits []domain.HabitItem, minute int, lead time.Duration) []domain.HabitItem {
	var due []domain.HabitItem
	for _, h := range habits {
		if at, ok := FireMinute(h, lead); ok && at == minute {
			due = append(due, h)
		}
	}
	return due
}
