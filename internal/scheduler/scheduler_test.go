package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"habit-bot/internal/cellstore"
	"habit-bot/internal/checklist"
	"habit-bot/internal/domain"
	"habit-bot/internal/notify"
	"habit-bot/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLists struct {
	mu     sync.Mutex
	tasks  map[domain.UserID][]domain.TaskItem
	habits map[domain.UserID][]domain.HabitItem
	err    error
}

func (f *fakeLists) LoadTasks(_ context.Context, user domain.UserID) ([]domain.TaskItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tasks[user], nil
}

func (f *fakeLists) Habits(_ context.Context, user domain.UserID) ([]domain.HabitItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.habits[user], nil
}

type fakeUsers struct {
	ids []domain.UserID
	err error
}

func (f fakeUsers) UserIDs(context.Context) ([]domain.UserID, error) {
	return f.ids, f.err
}

func clock(h, m int) *sheet.Clock {
	return &sheet.Clock{Hour: h, Minute: m}
}

func at(day, h, m, s int) time.Time {
	return time.Date(2026, time.October, day, h, m, s, 0, time.UTC)
}

func habit(name string, t *sheet.Clock, row int) domain.HabitItem {
	return domain.HabitItem{Name: name, Time: t, CheckCell: sheet.CellAddress{Column: "AI", Row: row}}
}

func TestTick_ReminderFiresOncePerDay(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{
		1: {habit("Run", clock(7, 5), 4)},
	}}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{Lead: 10 * time.Minute})
	ctx := context.Background()

	assert.Empty(t, s.Tick(ctx, at(19, 6, 54, 59)))

	events := s.Tick(ctx, at(19, 6, 55, 0))
	require.Len(t, events, 1)
	assert.Equal(t, Event{User: 1, Kind: EventReminder, Key: "AI4"}, events[0])

	assert.Empty(t, s.Tick(ctx, at(19, 6, 55, 30)), "same minute evaluated twice")
	assert.Empty(t, s.Tick(ctx, at(19, 6, 55, 0)), "clock adjusted backwards")
	assert.Empty(t, s.Tick(ctx, at(19, 6, 56, 0)))

	sent := rec.SentTo(1)
	require.Len(t, sent, 1)
	assert.Equal(t, "⏰ Run at 07:05", sent[0].Text)

	assert.Len(t, s.Tick(ctx, at(20, 6, 55, 0)), 1, "next day fires again")
}

func TestTick_UntimedHabitNeverFires(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{
		1: {habit("Stretch", nil, 5)},
	}}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{})
	ctx := context.Background()

	start := at(19, 0, 0, 0)
	for m := 0; m < 24*60; m++ {
		s.Tick(ctx, start.Add(time.Duration(m)*time.Minute))
	}
	assert.Empty(t, rec.Sent())
}

func TestTick_EarlyHabitFiresAtMidnight(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{
		1: {habit("Pills", clock(0, 5), 6)},
	}}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{})

	assert.Len(t, s.Tick(context.Background(), at(19, 0, 0, 10)), 1)
}

func TestTick_FailedSendRetriesWithinMinute(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{
		1: {habit("Run", clock(7, 5), 4)},
	}}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{})
	ctx := context.Background()

	rec.FailWith(errors.New("chat down"))
	assert.Empty(t, s.Tick(ctx, at(19, 6, 55, 0)))

	rec.FailWith(nil)
	assert.Len(t, s.Tick(ctx, at(19, 6, 55, 30)), 1)
	assert.Empty(t, s.Tick(ctx, at(19, 6, 55, 45)))
}

func TestTick_TaskDigest(t *testing.T) {
	lists := &fakeLists{
		tasks: map[domain.UserID][]domain.TaskItem{
			1: {{Text: "Write report", CheckCell: sheet.CellAddress{Column: "C", Row: 43}}},
		},
	}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1, 2}}, rec, Config{TaskDigestAt: clock(10, 0)})
	ctx := context.Background()

	events := s.Tick(ctx, at(19, 10, 0, 0))
	require.Len(t, events, 1)
	assert.Equal(t, Event{User: 1, Kind: EventTaskDigest}, events[0])
	assert.Empty(t, rec.SentTo(2), "users without tasks get nothing")

	msgs := rec.SentTo(1)
	require.Len(t, msgs, 1)
	assert.Equal(t, "📅 Plans for Monday, 19 October 2026:", msgs[0].Text)

	assert.Empty(t, s.Tick(ctx, at(19, 10, 0, 30)))
}

func TestTick_HabitDigest(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{
		1: {habit("Run", clock(7, 5), 4), habit("Read", clock(22, 0), 5)},
	}}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{HabitDigestAt: clock(6, 0)})

	events := s.Tick(context.Background(), at(19, 6, 0, 0))
	require.Len(t, events, 1)
	assert.Equal(t, EventHabitDigest, events[0].Kind)
	assert.Len(t, rec.SentTo(1)[0].Buttons(), 3)
}

func TestTick_ManyUsers(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{}}
	var ids []domain.UserID
	for i := 1; i <= 10; i++ {
		id := domain.UserID(i)
		ids = append(ids, id)
		lists.habits[id] = []domain.HabitItem{habit("Run", clock(7, 5), 4)}
	}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: ids}, rec, Config{})

	assert.Len(t, s.Tick(context.Background(), at(19, 6, 55, 0)), 10)
	for _, id := range ids {
		assert.Len(t, rec.SentTo(id), 1)
	}
}

func TestTick_SourceErrors(t *testing.T) {
	rec := notify.NewRecorder()

	s := New(&fakeLists{}, fakeUsers{err: errors.New("db locked")}, rec, Config{})
	assert.Nil(t, s.Tick(context.Background(), at(19, 6, 55, 0)))

	lists := &fakeLists{err: errors.New("store down")}
	s = New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{})
	assert.Empty(t, s.Tick(context.Background(), at(19, 6, 55, 0)))
	assert.Empty(t, rec.Sent())
}

func TestTick_ReminderSurvivesMidnightOutage(t *testing.T) {
	store := cellstore.NewMemory(map[string]interface{}{
		"C4": "Run", "D4": "07:05", "AI4": "FALSE",
	})
	var mu sync.Mutex
	now := at(19, 0, 0, 0)
	lists := checklist.New(store, checklist.WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}))
	tick := func(s *Scheduler, t time.Time) []Event {
		mu.Lock()
		now = t
		mu.Unlock()
		return s.Tick(context.Background(), t)
	}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec, Config{Lead: 10 * time.Minute})

	store.FailReads(true)
	assert.Empty(t, tick(s, at(19, 0, 0, 0)))
	store.FailReads(false)

	events := tick(s, at(19, 6, 55, 0))
	require.Len(t, events, 1)
	assert.Equal(t, Event{User: 1, Kind: EventReminder, Key: "AI4"}, events[0])
	assert.Len(t, rec.SentTo(1), 1)
}

func TestDue(t *testing.T) {
	habits := []domain.HabitItem{
		habit("Run", clock(7, 5), 4),
		habit("Walk", clock(7, 5), 5),
		habit("Read", clock(21, 0), 6),
		habit("Untimed", nil, 7),
	}

	due := Due(habits, 6*60+55, 10*time.Minute)
	require.Len(t, due, 2)
	assert.Equal(t, "Run", due[0].Name)
	assert.Equal(t, "Walk", due[1].Name)

	minute, ok := FireMinute(habits[2], 15*time.Minute)
	assert.True(t, ok)
	assert.Equal(t, 20*60+45, minute)

	_, ok = FireMinute(habits[3], time.Minute)
	assert.False(t, ok)
}

func TestRun_StopsOnCancel(t *testing.T) {
	lists := &fakeLists{habits: map[domain.UserID][]domain.HabitItem{
		1: {habit("Run", clock(7, 5), 4)},
	}}
	rec := notify.NewRecorder()
	s := New(lists, fakeUsers{ids: []domain.UserID{1}}, rec,
		Config{Interval: 5 * time.Millisecond},
		WithClock(func() time.Time { return at(19, 6, 55, 0) }))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx))
	assert.Len(t, rec.Sent(), 1)
}
