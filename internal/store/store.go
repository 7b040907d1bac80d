// Package store persists named leave plans so they can be reloaded,
// listed, and recomputed later. Plans are anonymous rows keyed by an
// opaque ID; there is no account or owner concept.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an operation targets a plan ID that does
// not exist. Lookups that merely miss return (nil, nil) instead.
var ErrNotFound = errors.New("plan not found")

// SavedPlan is a persisted plan configuration. The household spec and
// the benefit rules in force when the plan was saved are stored as JSON
// so the schema never has to chase the domain types.
type SavedPlan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SpecJSON  string    `json:"spec_json"`
	RulesJSON string    `json:"rules_json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the persistence interface for saved plans. Implementations
// stamp CreatedAt on first save and UpdatedAt on every save; callers
// only supply ID, Name, and the JSON payloads.
type Store interface {
	// SavePlan inserts the plan, or replaces its payload when the ID
	// already exists. CreatedAt survives replacement.
	SavePlan(ctx context.Context, plan SavedPlan) error

	// GetPlan returns the plan with the given ID, or (nil, nil) when
	// no such plan exists.
	GetPlan(ctx context.Context, id string) (*SavedPlan, error)

	// ListPlans returns all plans, most recently updated first.
	ListPlans(ctx context.Context) ([]SavedPlan, error)

	// DeletePlan removes the plan with the given ID. Returns
	// ErrNotFound when the ID does not exist.
	DeletePlan(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
