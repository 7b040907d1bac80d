package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

func TestAllocatePoolsPreferredSplit(t *testing.T) {
	rules := domain.DefaultRules()
	pools := AllocatePools(rules, decimal.NewFromInt(10), decimal.NewFromInt(5))

	p1 := pools.Remaining(domain.Parent1)
	p2 := pools.Remaining(domain.Parent2)

	// 210 transferable days split 2:1 on top of the 90-day reserves.
	assert.Equal(t, 230, p1.Standard, "caregiver 1 standard days")
	assert.Equal(t, 90, p1.ReservedStandard)
	assert.Equal(t, 60, p1.Minimum)
	assert.Equal(t, 160, p2.Standard, "caregiver 2 standard days")
	assert.Equal(t, 90, p2.ReservedStandard)
	assert.Equal(t, 30, p2.Minimum)

	assert.Equal(t, rules.StandardDays, p1.Standard+p2.Standard, "standard quota conserved")
	assert.Equal(t, rules.MinimumDays, p1.Minimum+p2.Minimum, "minimum quota conserved")
}

func TestAllocatePoolsNoPreference(t *testing.T) {
	pools := AllocatePools(domain.DefaultRules(), decimal.Zero, decimal.Zero)

	p1 := pools.Remaining(domain.Parent1)
	p2 := pools.Remaining(domain.Parent2)

	assert.Equal(t, 195, p1.Standard, "even split when neither caregiver states a preference")
	assert.Equal(t, p1.Standard, p2.Standard)
	assert.Equal(t, 45, p1.Minimum)
	assert.Equal(t, p1.Minimum, p2.Minimum)
}

func TestAllocatePoolsOneSided(t *testing.T) {
	pools := AllocatePools(domain.DefaultRules(), decimal.NewFromInt(12), decimal.Zero)

	p1 := pools.Remaining(domain.Parent1)
	p2 := pools.Remaining(domain.Parent2)

	assert.Equal(t, 300, p1.Standard, "all transferable days lean to caregiver 1")
	assert.Equal(t, 90, p2.Standard, "caregiver 2 keeps only the reserve")
	assert.Equal(t, 90, p1.Minimum)
	assert.Equal(t, 0, p2.Minimum)
}

func TestAllocatePoolsReservedClamped(t *testing.T) {
	rules := domain.DefaultRules()
	rules.StandardDays = 100
	rules.ReservedDays = 90

	pools := AllocatePools(rules, decimal.NewFromInt(10), decimal.NewFromInt(5))

	p1 := pools.Remaining(domain.Parent1)
	p2 := pools.Remaining(domain.Parent2)

	assert.Equal(t, 50, p1.Standard, "reserve clamps to half the quota")
	assert.Equal(t, 50, p1.ReservedStandard)
	assert.Equal(t, 50, p2.Standard)
	assert.Equal(t, 100, p1.Standard+p2.Standard)
}

func TestPoolSetReturnClampsToInitial(t *testing.T) {
	pools := AllocatePools(domain.DefaultRules(), decimal.Zero, decimal.Zero)

	assert.Equal(t, 20, pools.TakeStandard(domain.Parent1, 20))
	assert.Equal(t, 5, pools.Return(domain.Parent1, domain.TierStandard, 5))
	assert.Equal(t, 15, pools.Return(domain.Parent1, domain.TierStandard, 50), "refund clamps at the initial allocation")
	assert.Equal(t, 195, pools.Remaining(domain.Parent1).Standard)

	assert.Equal(t, 10, pools.TakeMinimum(domain.Parent2, 10))
	assert.Equal(t, 10, pools.Return(domain.Parent2, domain.TierMinimum, 99))
	assert.Equal(t, 45, pools.Remaining(domain.Parent2).Minimum)
}

func TestPoolSetReturnEmployerTopUpHitsStandard(t *testing.T) {
	pools := AllocatePools(domain.DefaultRules(), decimal.Zero, decimal.Zero)

	pools.Take(domain.Parent1, domain.TierEmployerTopUp, 30)
	assert.Equal(t, 165, pools.Remaining(domain.Parent1).Standard, "top-up days charge the standard pool")

	pools.Return(domain.Parent1, domain.TierEmployerTopUp, 30)
	assert.Equal(t, 195, pools.Remaining(domain.Parent1).Standard, "and refund back into it")
}
