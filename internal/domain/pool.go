package domain

// DayPool holds one caregiver's remaining benefit days per tier.
// ReservedStandard is the non-transferable part of the standard count; a
// caregiver's own draws consume the reserved share first so the largest
// possible remainder stays transferable.
type DayPool struct {
	Standard         int `json:"standard"`
	Minimum          int `json:"minimum"`
	ReservedStandard int `json:"reservedStandard"`
}

// Total returns the remaining days across both tiers.
func (p DayPool) Total() int {
	return p.Standard + p.Minimum
}

// PoolSet tracks both caregivers' day pools through one pipeline run. Pools
// are mutated only through the Take/Transfer operations, which clamp every
// draw so no count ever goes negative.
type PoolSet struct {
	remaining [2]DayPool
	initial   [2]DayPool
}

// NewPoolSet builds a pool set from the per-caregiver allocations.
func NewPoolSet(alloc1, alloc2 DayPool) PoolSet {
	return PoolSet{
		remaining: [2]DayPool{alloc1, alloc2},
		initial:   [2]DayPool{alloc1, alloc2},
	}
}

// Remaining returns the current pool for a single caregiver.
func (s *PoolSet) Remaining(id ParentID) DayPool {
	return s.remaining[id.Index()]
}

// Initial returns the allocation a single caregiver started with.
func (s *PoolSet) Initial(id ParentID) DayPool {
	return s.initial[id.Index()]
}

// Used returns the days a single caregiver has consumed so far.
func (s *PoolSet) Used(id ParentID) DayPool {
	i, r := s.initial[id.Index()], s.remaining[id.Index()]
	return DayPool{
		Standard: i.Standard - r.Standard,
		Minimum:  i.Minimum - r.Minimum,
	}
}

// TakeStandard draws up to n standard-tier days from the caregiver's own
// pool and returns the number actually taken.
func (s *PoolSet) TakeStandard(id ParentID, n int) int {
	if n <= 0 {
		return 0
	}
	pool := &s.remaining[id.Index()]
	taken := min(n, pool.Standard)
	pool.Standard -= taken
	pool.ReservedStandard = max(0, pool.ReservedStandard-taken)
	return taken
}

// TakeMinimum draws up to n minimum-tier days from the caregiver's own
// pool and returns the number actually taken.
func (s *PoolSet) TakeMinimum(id ParentID, n int) int {
	if n <= 0 {
		return 0
	}
	pool := &s.remaining[id.Index()]
	taken := min(n, pool.Minimum)
	pool.Minimum -= taken
	return taken
}

// Take draws days at the given tier from the caregiver's own pool.
// Employer top-up days are charged to the standard pool.
func (s *PoolSet) Take(id ParentID, tier BenefitTier, n int) int {
	switch {
	case tier.DrawsStandardPool():
		return s.TakeStandard(id, n)
	case tier == TierMinimum:
		return s.TakeMinimum(id, n)
	default:
		return 0
	}
}

// TransferableStandard returns the standard-tier days the caregiver could
// hand over: the remainder above their reserved share.
func (s *PoolSet) TransferableStandard(id ParentID) int {
	pool := s.remaining[id.Index()]
	return pool.Standard - pool.ReservedStandard
}

// TransferableMinimum returns the minimum-tier days the caregiver could
// hand over. Minimum days carry no reserved floor.
func (s *PoolSet) TransferableMinimum(id ParentID) int {
	return s.remaining[id.Index()].Minimum
}

// Transferable returns the days the caregiver could hand over at a tier.
func (s *PoolSet) Transferable(id ParentID, tier BenefitTier) int {
	if tier.DrawsStandardPool() {
		return s.TransferableStandard(id)
	}
	if tier == TierMinimum {
		return s.TransferableMinimum(id)
	}
	return 0
}

// TakeTransferred draws up to n days at the given tier from the OTHER
// caregiver's transferable remainder, on behalf of the receiver. Returns
// the number actually taken. Reserved standard days never move.
func (s *PoolSet) TakeTransferred(from ParentID, tier BenefitTier, n int) int {
	if n <= 0 {
		return 0
	}
	n = min(n, s.Transferable(from, tier))
	pool := &s.remaining[from.Index()]
	if tier.DrawsStandardPool() {
		pool.Standard -= n
		return n
	}
	pool.Minimum -= n
	return n
}

// Return refunds days back to the caregiver's pool at the given tier,
// clamped so the remainder never exceeds the initial allocation. Refunded
// standard days do not restore the reserved share.
func (s *PoolSet) Return(id ParentID, tier BenefitTier, n int) int {
	if n <= 0 {
		return 0
	}
	pool := &s.remaining[id.Index()]
	initial := s.initial[id.Index()]
	if tier.DrawsStandardPool() {
		n = min(n, initial.Standard-pool.Standard)
		pool.Standard += n
		return n
	}
	if tier == TierMinimum {
		n = min(n, initial.Minimum-pool.Minimum)
		pool.Minimum += n
		return n
	}
	return 0
}

// Available returns the days reachable for a caregiver at a tier: their own
// remainder plus the other caregiver's transferable share.
func (s *PoolSet) Available(id ParentID, tier BenefitTier) int {
	own := 0
	if tier.DrawsStandardPool() {
		own = s.remaining[id.Index()].Standard
	} else if tier == TierMinimum {
		own = s.remaining[id.Index()].Minimum
	}
	return own + s.Transferable(id.Other(), tier)
}

// TotalRemaining returns the days left across both caregivers and tiers.
func (s *PoolSet) TotalRemaining() int {
	return s.remaining[0].Total() + s.remaining[1].Total()
}

// Exhausted reports whether no benefit days remain anywhere.
func (s *PoolSet) Exhausted() bool {
	return s.TotalRemaining() == 0
}
