package types

import "cosmossdk.io/math"

// TickLevel aggregates the four order flows resting at one tick within a
// batch (spec §3 "Tick Level"). The bitmap bit for this tick must be set
// iff the sum of these four fields is non-zero — callers mutate aggregates
// only through BatchAggregates so that invariant is enforced in one place.
type TickLevel struct {
	MakerBuy  math.Int
	MakerSell math.Int
	TakerBuy  math.Int
	TakerSell math.Int
}

// ZeroTickLevel returns an empty level.
func ZeroTickLevel() TickLevel {
	z := math.ZeroInt()
	return TickLevel{MakerBuy: z, MakerSell: z, TakerBuy: z, TakerSell: z}
}

// IsEmpty reports whether every aggregate at this level is zero.
func (l TickLevel) IsEmpty() bool {
	return l.MakerBuy.IsZero() && l.MakerSell.IsZero() && l.TakerBuy.IsZero() && l.TakerSell.IsZero()
}

// Get returns the aggregate matching (side, flow), or zero for an
// unspecified side or flow - see Apply below for the mutating counterpart.
func (l TickLevel) Get(side Side, flow Flow) math.Int {
	switch {
	case flow == FlowMaker && side == SideBuy:
		return l.MakerBuy
	case flow == FlowMaker && side == SideSell:
		return l.MakerSell
	case flow == FlowTaker && side == SideBuy:
		return l.TakerBuy
	case flow == FlowTaker && side == SideSell:
		return l.TakerSell
	default:
		return math.ZeroInt()
	}
}

// Apply adds delta (which may be negative) to the aggregate selected by
// (side, flow) and returns the updated level. Returns an error if the
// result would go negative - an aggregate underflow signals a bug in the
// caller's bookkeeping, never a user error (spec §7).
func (l TickLevel) Apply(side Side, flow Flow, delta math.Int) (TickLevel, error) {
	switch {
	case flow == FlowMaker && side == SideBuy:
		v := l.MakerBuy.Add(delta)
		if v.IsNegative() {
			return l, ErrAggregateUnderflow
		}
		l.MakerBuy = v
	case flow == FlowMaker && side == SideSell:
		v := l.MakerSell.Add(delta)
		if v.IsNegative() {
			return l, ErrAggregateUnderflow
		}
		l.MakerSell = v
	case flow == FlowTaker && side == SideBuy:
		v := l.TakerBuy.Add(delta)
		if v.IsNegative() {
			return l, ErrAggregateUnderflow
		}
		l.TakerBuy = v
	case flow == FlowTaker && side == SideSell:
		v := l.TakerSell.Add(delta)
		if v.IsNegative() {
			return l, ErrAggregateUnderflow
		}
		l.TakerSell = v
	default:
		return l, ErrInvalidSide
	}
	return l, nil
}
