package api

import (
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// ComputeRequest is the body of the compute endpoints: the household
// plan plus optional overrides of the statutory rule constants. It
// mirrors the YAML plan file shape.
type ComputeRequest struct {
	Plan  domain.PlanSpec      `json:"plan"`
	Rules *domain.BenefitRules `json:"rules,omitempty"`
}

// SavePlanRequest creates or replaces a saved plan.
type SavePlanRequest struct {
	Name  string               `json:"name"`
	Plan  domain.PlanSpec      `json:"plan"`
	Rules *domain.BenefitRules `json:"rules,omitempty"`
}

// PlanSummaryDTO is one row in the saved-plan listing.
type PlanSummaryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PlanDTO is a full saved plan with the stored payload decoded back
// into domain types. Rules are the effective rules frozen at save
// time, not the caller's partial override.
type PlanDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Plan      domain.PlanSpec     `json:"plan"`
	Rules     domain.BenefitRules `json:"rules"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
