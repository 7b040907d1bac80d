package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// AllocatePools splits the total day quotas between the caregivers. Each
// caregiver keeps the reserved standard-tier floor; the transferable
// remainder and the minimum-tier quota are split proportionally to the
// preferred-duration share, evenly when both preferences are zero. Day
// totals are conserved exactly: whatever rounding takes from one caregiver
// the other receives.
func AllocatePools(rules domain.BenefitRules, preferred1, preferred2 decimal.Decimal) domain.PoolSet {
	share1 := preferredShare(preferred1, preferred2)

	reserved := rules.ReservedDays
	if reserved*2 > rules.StandardDays {
		reserved = rules.StandardDays / 2
	}

	transferable := rules.StandardDays - reserved*2
	extra1 := proportion(transferable, share1)
	min1 := proportion(rules.MinimumDays, share1)

	alloc1 := domain.DayPool{
		Standard:         reserved + extra1,
		Minimum:          min1,
		ReservedStandard: reserved,
	}
	alloc2 := domain.DayPool{
		Standard:         reserved + (transferable - extra1),
		Minimum:          rules.MinimumDays - min1,
		ReservedStandard: reserved,
	}

	return domain.NewPoolSet(alloc1, alloc2)
}

// preferredShare returns caregiver 1's share of the preferred leave
// duration, 0.5 when neither caregiver stated a preference.
func preferredShare(preferred1, preferred2 decimal.Decimal) decimal.Decimal {
	sum := preferred1.Add(preferred2)
	if !sum.IsPositive() {
		return decimal.NewFromFloat(0.5)
	}
	return preferred1.Div(sum)
}

// proportion rounds share x total to the nearest whole day.
func proportion(total int, share decimal.Decimal) int {
	if total <= 0 {
		return 0
	}
	n := int(decimal.NewFromInt(int64(total)).Mul(share).Round(0).IntPart())
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}
