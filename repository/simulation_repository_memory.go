package repository

import (
	"context"
	"sync"

	"sip-planner/domain"
)

// SimulationRepositoryMemory keeps the most recent simulations in memory.
// Once capacity is reached the oldest record is dropped.
type SimulationRepositoryMemory struct {
	mu       sync.Mutex
	data     []domain.SimulationRecord
	capacity int
}

// NewSimulationRepositoryMemory creates a new in-memory simulation repository.
func NewSimulationRepositoryMemory(capacity int) *SimulationRepositoryMemory {
	if capacity <= 0 {
		capacity = 1
	}
	return &SimulationRepositoryMemory{
		data:     make([]domain.SimulationRecord, 0, capacity),
		capacity: capacity,
	}
}

// Save stores the record in memory.
func (r *SimulationRepositoryMemory) Save(
	_ context.Context,
	record domain.SimulationRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) == r.capacity {
		copy(r.data, r.data[1:])
		r.data = r.data[:len(r.data)-1]
	}
	r.data = append(r.data, record)
	return nil
}

// Recent returns up to limit records, newest first.
func (r *SimulationRepositoryMemory) Recent(
	_ context.Context,
	limit int,
) ([]domain.SimulationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.SimulationRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
