// Package checklist holds each user's task and habit lists for the current day
// and keeps completion toggles in sync with the spreadsheet.
package checklist

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"habit-bot/internal/cellstore"
	"habit-bot/internal/domain"
	"habit-bot/internal/errors"
	"habit-bot/internal/logging"
	"habit-bot/internal/sheet"

	"golang.org/x/sync/errgroup"
)

// Cache is the per-user checklist state store. It is safe for concurrent use;
// all operations on one user are serialized by that user's lock.
type Cache struct {
	store cellstore.Store
	now   func() time.Time

	mu    sync.Mutex
	users map[domain.UserID]*userState
}

type userState struct {
	mu sync.Mutex

	taskDay   string
	tasks     []domain.TaskItem // nil until a non-empty list is loaded for taskDay
	tasksKept bool              // tasks is final for taskDay

	habitDay   string
	habits     []domain.HabitItem
	habitsKept bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides time.Now; the returned time's location decides the calendar day.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache reading from and writing to store.
func New(store cellstore.Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		now:   time.Now,
		users: make(map[domain.UserID]*userState),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the cache's notion of the current time.
func (c *Cache) Now() time.Time {
	return c.now()
}

func (c *Cache) state(user domain.UserID) *userState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.users[user]
	if !ok {
		st = &userState{}
		c.users[user] = st
	}
	return st
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// LoadTasks returns today's tasks for user. The first complete, non-empty
// load of a day is cached and later calls that day return it without reading
// the sheet again; a new calendar day always re-resolves. A load during which
// the store could not be reached is shown but not kept.
func (c *Cache) LoadTasks(ctx context.Context, user domain.UserID) ([]domain.TaskItem, error) {
	now := c.now()

	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.tasksKept && st.taskDay == dayKey(now) {
		return domain.CloneTasks(st.tasks), nil
	}
	if err := c.loadTasksLocked(ctx, st, now); err != nil {
		return nil, err
	}
	return domain.CloneTasks(st.tasks), nil
}

func (c *Cache) loadTasksLocked(ctx context.Context, st *userState, now time.Time) error {
	items, complete, err := c.fetchTasks(ctx, now)
	if err != nil {
		return err
	}

	st.taskDay = dayKey(now)
	st.tasks = nil
	if len(items) > 0 {
		st.tasks = items
	}
	st.tasksKept = complete && len(items) > 0
	return nil
}

// fetchTasks reads the task block for date. complete is false when any read
// failed, in which case the result may be missing items.
func (c *Cache) fetchTasks(ctx context.Context, date time.Time) ([]domain.TaskItem, bool, error) {
	slots := sheet.TaskSlots(date)
	found := make([]*domain.TaskItem, len(slots))
	var failed atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		g.Go(func() error {
			text := c.read(gctx, slot.Text, &failed)
			if text.IsEmpty() {
				return nil
			}
			check := c.read(gctx, slot.Check, &failed)
			found[i] = &domain.TaskItem{
				Text:      text.String(),
				Done:      sheet.DecodeDone(check.Raw()),
				CheckCell: slot.Check,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	items := make([]domain.TaskItem, 0, len(found))
	for _, item := range found {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, !failed.Load(), nil
}

// read fetches one cell. A store failure reads as Null and sets failed.
func (c *Cache) read(ctx context.Context, cell sheet.CellAddress, failed *atomic.Bool) cellstore.Value {
	f, ok := c.store.(cellstore.Fetcher)
	if !ok {
		return c.store.Get(ctx, cell)
	}
	v, err := f.Fetch(ctx, cell)
	if err != nil {
		logging.Errorf("cell store: %v", err)
		failed.Store(true)
		return cellstore.Null()
	}
	return v
}

// LoadHabits reads today's habits for user from the sheet, replacing any
// cached list. Habits without a usable time are left out.
func (c *Cache) LoadHabits(ctx context.Context, user domain.UserID) ([]domain.HabitItem, error) {
	now := c.now()

	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	return c.loadHabitsLocked(ctx, st, now)
}

// Habits returns today's habits for user, reading the sheet until a
// complete, non-empty list has been loaded today.
func (c *Cache) Habits(ctx context.Context, user domain.UserID) ([]domain.HabitItem, error) {
	now := c.now()

	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.habitsKept && st.habitDay == dayKey(now) {
		return domain.CloneHabits(st.habits), nil
	}
	return c.loadHabitsLocked(ctx, st, now)
}

func (c *Cache) loadHabitsLocked(ctx context.Context, st *userState, now time.Time) ([]domain.HabitItem, error) {
	items, complete, err := c.fetchHabits(ctx, now)
	if err != nil {
		return nil, err
	}
	st.habitDay = dayKey(now)
	st.habits = items
	st.habitsKept = complete && len(items) > 0
	return domain.CloneHabits(items), nil
}

func (c *Cache) fetchHabits(ctx context.Context, date time.Time) ([]domain.HabitItem, bool, error) {
	slots := sheet.HabitSlots(date)
	found := make([]*domain.HabitItem, len(slots))
	var failed atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		g.Go(func() error {
			raw := c.read(gctx, slot.Time, &failed)
			clock, ok := sheet.ParseHabitTime(raw.Raw())
			if !ok {
				if !raw.IsEmpty() {
					logging.Debugf("%v\n", errors.NewMalformedTimeError(slot.Time.String(), raw.Raw()))
				}
				return nil
			}

			name := c.read(gctx, slot.Name, &failed)
			label := name.String()
			if name.IsEmpty() {
				label = domain.HabitPlaceholderName(slot.Index)
			}
			check := c.read(gctx, slot.Check, &failed)

			found[i] = &domain.HabitItem{
				Name:      label,
				Time:      &clock,
				Done:      sheet.DecodeDone(check.Raw()),
				CheckCell: slot.Check,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	items := make([]domain.HabitItem, 0, len(found))
	for _, item := range found {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, !failed.Load(), nil
}
