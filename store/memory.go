package store

import (
	"context"
	"strconv"
	"sync"

	"terrawatch/models"
)

const defaultMemorySize = 100

// Memory keeps the last N runs in a ring.
type Memory struct {
	mu   sync.Mutex
	runs []models.Run
	size int
	seq  int
}

func NewMemory(size int) *Memory {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &Memory{size: size, runs: make([]models.Run, 0, size)}
}

func (m *Memory) Record(_ context.Context, run models.Run) (models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	run.ID = strconv.Itoa(m.seq)
	if len(m.runs) == m.size {
		copy(m.runs, m.runs[1:])
		m.runs = m.runs[:len(m.runs)-1]
	}
	m.runs = append(m.runs, run)
	return run, nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	out := make([]models.Run, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *Memory) Close(context.Context) error { return nil }
