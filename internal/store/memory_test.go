package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*Memory)(nil)

func TestMemorySaveAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.SavePlan(ctx, SavedPlan{
		ID:        "plan-1",
		Name:      "First draft",
		SpecJSON:  `{"parent1":{"name":"Alex"}}`,
		RulesJSON: `{"standard_days":390}`,
	})
	require.NoError(t, err)

	got, err := m.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "plan-1", got.ID)
	assert.Equal(t, "First draft", got.Name)
	assert.Equal(t, `{"parent1":{"name":"Alex"}}`, got.SpecJSON)
	assert.Equal(t, `{"standard_days":390}`, got.RulesJSON)
	assert.False(t, got.CreatedAt.IsZero(), "store should stamp CreatedAt")
	assert.True(t, got.UpdatedAt.Equal(got.CreatedAt), "first save should stamp both timestamps together")
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()

	got, err := m.GetPlan(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got, "missing plan should be (nil, nil), not an error")
}

func TestMemoryUpdatePreservesCreatedAt(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SavePlan(ctx, SavedPlan{ID: "plan-1", Name: "Original"}))
	first, err := m.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	require.NoError(t, m.SavePlan(ctx, SavedPlan{ID: "plan-1", Name: "Renamed"}))
	second, err := m.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, "Renamed", second.Name)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "replacement should keep the original CreatedAt")
	assert.False(t, second.UpdatedAt.Before(second.CreatedAt))
}

func TestMemoryListPlansOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SavePlan(ctx, SavedPlan{ID: "plan-b", Name: "beta"}))
	require.NoError(t, m.SavePlan(ctx, SavedPlan{ID: "plan-a", Name: "alpha"}))

	plans, err := m.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, "plan-a", plans[0].ID, "most recently updated plan should come first")
	assert.Equal(t, "plan-b", plans[1].ID)
}

func TestMemoryListPlansEmpty(t *testing.T) {
	plans, err := NewMemory().ListPlans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestMemoryDeletePlan(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SavePlan(ctx, SavedPlan{ID: "plan-1", Name: "Doomed"}))
	require.NoError(t, m.DeletePlan(ctx, "plan-1"))

	got, err := m.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = m.DeletePlan(ctx, "plan-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGetPlanReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SavePlan(ctx, SavedPlan{ID: "plan-1", Name: "Original"}))

	got, err := m.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := m.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name, "callers should not be able to mutate stored plans")
}
