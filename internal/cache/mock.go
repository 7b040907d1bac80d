package cache

import "context"

// Mock is a Cache for tests. Data is exported so tests can inspect
// and pre-seed entries; SetErr forces write failures.
type Mock struct {
	Data   map[string]string
	SetErr error
}

// NewMock creates an empty mock cache.
func NewMock() *Mock {
	return &Mock{Data: make(map[string]string)}
}

func (m *Mock) Get(ctx context.Context, key string) (string, bool) {
	val, ok := m.Data[key]
	return val, ok
}

func (m *Mock) Set(ctx context.Context, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	return nil
}
