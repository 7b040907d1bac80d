package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-memory Store for tests and the CLI's throwaway
// serve mode. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	plans map[string]SavedPlan
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		plans: make(map[string]SavedPlan),
	}
}

// SavePlan inserts or replaces the plan. CreatedAt is preserved when
// the ID already exists.
func (m *Memory) SavePlan(ctx context.Context, plan SavedPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.plans[plan.ID]; ok {
		plan.CreatedAt = existing.CreatedAt
	} else {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	m.plans[plan.ID] = plan
	return nil
}

// GetPlan returns a copy of the plan, or (nil, nil) when missing.
func (m *Memory) GetPlan(ctx context.Context, id string) (*SavedPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return nil, nil
	}
	cp := plan
	return &cp, nil
}

// ListPlans returns all plans, most recently updated first. Ties sort
// by name so the order is stable.
func (m *Memory) ListPlans(ctx context.Context) ([]SavedPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plans := make([]SavedPlan, 0, len(m.plans))
	for _, p := range m.plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].UpdatedAt.Equal(plans[j].UpdatedAt) {
			return plans[i].UpdatedAt.After(plans[j].UpdatedAt)
		}
		return plans[i].Name < plans[j].Name
	})
	return plans, nil
}

// DeletePlan removes the plan, returning ErrNotFound when the ID does
// not exist.
func (m *Memory) DeletePlan(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[id]; !ok {
		return ErrNotFound
	}
	delete(m.plans, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
