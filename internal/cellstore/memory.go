package cellstore

import (
	"context"
	"fmt"
	"sync"

	"habit-bot/internal/errors"
	"habit-bot/internal/sheet"
)

// SetCall records one write made through a Memory store.
type SetCall struct {
	Cell  sheet.CellAddress
	Value string
}

// Memory is an in-process Store. It backs tests and offline runs.
type Memory struct {
	mu         sync.Mutex
	cells      map[string]interface{}
	sets       []SetCall
	gets       int
	failWrites bool
	failReads  bool
}

// NewMemory creates a store seeded with cells keyed by A1 reference.
func NewMemory(cells map[string]interface{}) *Memory {
	m := &Memory{cells: make(map[string]interface{}, len(cells))}
	for ref, v := range cells {
		m.cells[ref] = v
	}
	return m
}

// Get implements Store. While reads are failing it returns Null.
func (m *Memory) Get(ctx context.Context, cell sheet.CellAddress) Value {
	v, err := m.Fetch(ctx, cell)
	if err != nil {
		return Null()
	}
	return v
}

// Fetch implements Fetcher.
func (m *Memory) Fetch(_ context.Context, cell sheet.CellAddress) (Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failReads {
		return Null(), errors.NewTransportError("get", cell.String(), fmt.Errorf("store offline"))
	}
	return NewValue(m.cells[cell.String()]), nil
}

// Set implements Store. When writes are failing the cell is left unchanged.
func (m *Memory) Set(_ context.Context, cell sheet.CellAddress, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets = append(m.sets, SetCall{Cell: cell, Value: value})
	if m.failWrites {
		return false
	}
	m.cells[cell.String()] = value
	return true
}

// Put replaces a cell value directly.
func (m *Memory) Put(ref string, v interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[ref] = v
}

// Cell returns the current raw value of ref.
func (m *Memory) Cell(ref string) interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[ref]
}

// FailWrites makes every subsequent Set report failure.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// FailReads makes every subsequent read fail as if the store were unreachable.
func (m *Memory) FailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = fail
}

// Sets returns the writes made so far, in order.
func (m *Memory) Sets() []SetCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SetCall, len(m.sets))
	copy(out, m.sets)
	return out
}

// Gets returns how many reads were made.
func (m *Memory) Gets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}
