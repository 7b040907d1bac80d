package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// BenefitTier is the daily-rate level a leave day is paid at. TierNone marks
// a calendar filler with no benefit draw (both caregivers working).
type BenefitTier int

const (
	TierNone BenefitTier = iota
	TierMinimum
	TierStandard
	TierEmployerTopUp
)

// String returns the canonical wire name for the tier.
func (t BenefitTier) String() string {
	switch t {
	case TierEmployerTopUp:
		return "employer_top_up"
	case TierStandard:
		return "standard"
	case TierMinimum:
		return "minimum"
	default:
		return "none"
	}
}

// DrawsStandardPool reports whether days at this tier are charged against
// the standard-tier pool. Employer top-up rides on standard-tier days.
func (t BenefitTier) DrawsStandardPool() bool {
	return t == TierStandard || t == TierEmployerTopUp
}

// MarshalText implements encoding.TextMarshaler.
func (t BenefitTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *BenefitTier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "employer_top_up":
		*t = TierEmployerTopUp
	case "standard":
		*t = TierStandard
	case "minimum":
		*t = TierMinimum
	case "none", "":
		*t = TierNone
	default:
		return fmt.Errorf("unknown benefit tier %q", text)
	}
	return nil
}

// PeriodOrigin records how a period came to exist. Exactly one origin per
// period; transfer provenance (TransferredFrom) is meaningful only for
// OriginTopUp periods funded from the other caregiver's pool.
type PeriodOrigin int

const (
	OriginPlanned PeriodOrigin = iota
	OriginSharedInitial
	OriginFiller
	OriginTopUp
)

// String returns the canonical wire name for the origin.
func (o PeriodOrigin) String() string {
	switch o {
	case OriginSharedInitial:
		return "shared_initial"
	case OriginFiller:
		return "filler"
	case OriginTopUp:
		return "top_up"
	default:
		return "planned"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o PeriodOrigin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *PeriodOrigin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "shared_initial":
		*o = OriginSharedInitial
	case "filler":
		*o = OriginFiller
	case "top_up":
		*o = OriginTopUp
	case "planned", "":
		*o = OriginPlanned
	default:
		return fmt.Errorf("unknown period origin %q", text)
	}
	return nil
}

// LeavePeriod is one dated span of the plan for one caregiver (or both).
// Start and End are inclusive calendar days; the calendar span may exceed
// BenefitDays when the leave is spread across fewer than 7 days per week.
// For BothParents periods BenefitDays counts days charged to EACH pool and
// the daily figures are the combined draw of both caregivers.
type LeavePeriod struct {
	Parent      ParentID    `json:"parent"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Tier        BenefitTier `json:"tier"`
	BenefitDays int         `json:"benefitDays"`
	DaysPerWeek int         `json:"daysPerWeek"`

	DailyBenefit   decimal.Decimal `json:"dailyBenefit"`         // statutory benefit per benefit day
	DailyTopUp     decimal.Decimal `json:"dailyTopUp,omitempty"` // employer top-up per benefit day
	HouseholdDaily decimal.Decimal `json:"householdDaily"`       // combined net household income per calendar day

	Origin          PeriodOrigin `json:"origin"`
	TransferredFrom ParentID     `json:"transferredFrom,omitempty"`

	// NeedsPlacement marks a floating period whose dates are provisional
	// until the sequencer assigns its slot. Never true in a final result.
	NeedsPlacement bool `json:"-" yaml:"-"`
}

// CalendarDays returns the inclusive span length in calendar days.
func (p LeavePeriod) CalendarDays() int {
	return dateutil.DaysInclusive(p.Start, p.End)
}

// Overlaps reports whether the two periods share at least one calendar day.
func (p LeavePeriod) Overlaps(other LeavePeriod) bool {
	return dateutil.OverlapDays(p.Start, p.End, other.Start, other.End) > 0
}

// Contains reports whether the given day falls inside the period.
func (p LeavePeriod) Contains(day time.Time) bool {
	d := dateutil.Normalize(day)
	return !d.Before(dateutil.Normalize(p.Start)) && !d.After(dateutil.Normalize(p.End))
}

// Covers reports whether the period applies to the given single caregiver,
// counting BothParents periods for either.
func (p LeavePeriod) Covers(id ParentID) bool {
	return p.Parent == id || p.Parent == BothParents
}

// BenefitIncome returns the total benefit paid over the period for one
// covered caregiver.
func (p LeavePeriod) BenefitIncome() decimal.Decimal {
	return p.DailyBenefit.Mul(decimal.NewFromInt(int64(p.BenefitDays)))
}

// AdjacentTo reports whether other starts the day after p ends.
func (p LeavePeriod) AdjacentTo(other LeavePeriod) bool {
	return dateutil.AddDays(p.End, 1).Equal(dateutil.Normalize(other.Start))
}

// Mergeable reports whether other can be folded into p: same caregiver,
// tier, weekly cadence, immediately adjacent, and household income within
// öre tolerance.
func (p LeavePeriod) Mergeable(other LeavePeriod) bool {
	if p.Parent != other.Parent || p.Tier != other.Tier || p.DaysPerWeek != other.DaysPerWeek {
		return false
	}
	if !p.AdjacentTo(other) {
		return false
	}
	tolerance := decimal.NewFromFloat(0.01)
	return p.HouseholdDaily.Sub(other.HouseholdDaily).Abs().LessThanOrEqual(tolerance)
}
