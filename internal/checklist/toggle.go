package checklist

import (
	"context"
	"strings"

	"habit-bot/internal/domain"
	"habit-bot/internal/errors"
	"habit-bot/internal/logging"
	"habit-bot/internal/sheet"
)

// ToggleResult describes one toggle. Applied is always true once a toggle
// returns without error: the cached item was flipped. Confirmed reports
// whether the sheet acknowledged the write; when it is false the cache and
// the sheet disagree until the next successful write.
type ToggleResult struct {
	Key       string
	Index     int
	Done      bool
	Applied   bool
	Confirmed bool
}

// TaskToggle is a ToggleResult together with the list to redisplay.
type TaskToggle struct {
	ToggleResult
	Tasks []domain.TaskItem
}

// HabitToggle is a ToggleResult together with the list to redisplay.
type HabitToggle struct {
	ToggleResult
	Habits []domain.HabitItem
}

// ToggleTask flips the task whose completion cell is key. When today's list
// has not been fully loaded yet it is read first, so a key from an earlier
// digest still resolves after a restart.
func (c *Cache) ToggleTask(ctx context.Context, user domain.UserID, key string) (*TaskToggle, error) {
	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	i := -1
	if c.tasksCurrent(st) {
		i = indexOfTask(st.tasks, key)
	}
	if i < 0 && !c.tasksFinal(st) {
		if err := c.loadTasksLocked(ctx, st, c.now()); err != nil {
			return nil, err
		}
		i = indexOfTask(st.tasks, key)
	}
	if i < 0 {
		return nil, errors.NewStaleItemError("tasks", key)
	}
	return c.toggleTaskLocked(ctx, user, st, i), nil
}

// ToggleTaskAt flips the task at a position in the rendered list. The index
// must refer to today's loaded list; anything else is a stale index.
func (c *Cache) ToggleTaskAt(ctx context.Context, user domain.UserID, index int) (*TaskToggle, error) {
	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	size := len(st.tasks)
	if !c.tasksCurrent(st) {
		size = 0
	}
	if index < 0 || index >= size {
		return nil, errors.NewStaleIndexError("tasks", index, size)
	}
	return c.toggleTaskLocked(ctx, user, st, index), nil
}

// ToggleHabit flips the habit whose completion cell is key, reading today's
// habits first when they have not been fully loaded.
func (c *Cache) ToggleHabit(ctx context.Context, user domain.UserID, key string) (*HabitToggle, error) {
	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	i := -1
	if c.habitsCurrent(st) {
		i = indexOfHabit(st.habits, key)
	}
	if i < 0 && !c.habitsFinal(st) {
		if _, err := c.loadHabitsLocked(ctx, st, c.now()); err != nil {
			return nil, err
		}
		i = indexOfHabit(st.habits, key)
	}
	if i < 0 {
		return nil, errors.NewStaleItemError("habits", key)
	}
	return c.toggleHabitLocked(ctx, user, st, i), nil
}

// ToggleHabitAt flips the habit at a position in the rendered list.
func (c *Cache) ToggleHabitAt(ctx context.Context, user domain.UserID, index int) (*HabitToggle, error) {
	st := c.state(user)
	st.mu.Lock()
	defer st.mu.Unlock()

	size := len(st.habits)
	if !c.habitsCurrent(st) {
		size = 0
	}
	if index < 0 || index >= size {
		return nil, errors.NewStaleIndexError("habits", index, size)
	}
	return c.toggleHabitLocked(ctx, user, st, index), nil
}

func (c *Cache) tasksCurrent(st *userState) bool {
	return st.tasks != nil && st.taskDay == dayKey(c.now())
}

func (c *Cache) habitsCurrent(st *userState) bool {
	return st.habitDay == dayKey(c.now())
}

func (c *Cache) tasksFinal(st *userState) bool {
	return st.tasksKept && c.tasksCurrent(st)
}

func (c *Cache) habitsFinal(st *userState) bool {
	return st.habitsKept && c.habitsCurrent(st)
}

func (c *Cache) toggleTaskLocked(ctx context.Context, user domain.UserID, st *userState, i int) *TaskToggle {
	item := &st.tasks[i]
	item.Done = !item.Done
	confirmed := c.write(ctx, user, item.CheckCell, item.Done)

	return &TaskToggle{
		ToggleResult: ToggleResult{
			Key:       item.Key(),
			Index:     i,
			Done:      item.Done,
			Applied:   true,
			Confirmed: confirmed,
		},
		Tasks: domain.CloneTasks(st.tasks),
	}
}

func (c *Cache) toggleHabitLocked(ctx context.Context, user domain.UserID, st *userState, i int) *HabitToggle {
	item := &st.habits[i]
	item.Done = !item.Done
	confirmed := c.write(ctx, user, item.CheckCell, item.Done)

	return &HabitToggle{
		ToggleResult: ToggleResult{
			Key:       item.Key(),
			Index:     i,
			Done:      item.Done,
			Applied:   true,
			Confirmed: confirmed,
		},
		Habits: domain.CloneHabits(st.habits),
	}
}

// write pushes the new flag to the sheet. The local flip is kept either way.
func (c *Cache) write(ctx context.Context, user domain.UserID, cell sheet.CellAddress, done bool) bool {
	if c.store.Set(ctx, cell, sheet.EncodeDone(done)) {
		return true
	}
	logging.Errorf("user %d: %s kept as %s locally but the sheet write failed", user, cell, sheet.EncodeDone(done))
	return false
}

func indexOfTask(items []domain.TaskItem, key string) int {
	for i, item := range items {
		if strings.EqualFold(item.Key(), key) {
			return i
		}
	}
	return -1
}

func indexOfHabit(items []domain.HabitItem, key string) int {
	for i, item := range items {
		if strings.EqualFold(item.Key(), key) {
			return i
		}
	}
	return -1
}
