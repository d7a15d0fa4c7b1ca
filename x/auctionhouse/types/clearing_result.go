package types

import "cosmossdk.io/math"

// ClearingResult is the outcome of one side's auction for one batch
// (spec §3 "Clearing Result"). Once Finalized is true the result is
// immutable - keeper code must never overwrite a finalized result.
type ClearingResult struct {
	Side                 Side
	ClearingTick         int32
	MarginalFillMakerBps uint16
	MarginalFillTakerBps uint16
	ClearedQty           math.Int
	Finalized            bool
}

// EmptyClearingResult returns the zero-trade result for a side: no active
// ticks crossed, nothing cleared.
func EmptyClearingResult(side Side) ClearingResult {
	return ClearingResult{
		Side:       side,
		ClearedQty: math.ZeroInt(),
	}
}

// InTheMoney implements spec §4.2 in_the_money.
func (c ClearingResult) InTheMoney(order Order) bool {
	if !c.Finalized {
		return false
	}
	if order.Flow == FlowTaker {
		return c.ClearedQty.IsPositive()
	}
	switch order.Side {
	case SideBuy:
		return order.PriceTick >= c.ClearingTick
	case SideSell:
		return order.PriceTick <= c.ClearingTick
	default:
		return false
	}
}

// FilledQty implements spec §4.2 filled_qty.
//
// Takers carry a sentinel price_tick (they match at any price), so the
// "order.price_tick != clearing_tick" comparison from spec §4.2 only
// discriminates makers resting away from the clearing tick (who fill
// fully) from makers resting exactly at it (who are pro-rated). Takers
// are always treated as sitting at the clearing tick: they are pro-rated
// by marginal_fill_taker_bps, which the clearing engine already sets to
// 10000 whenever every taker could be filled in full (spec §4.2 steps 3-4).
func (c ClearingResult) FilledQty(order Order) math.Int {
	if !c.InTheMoney(order) {
		return math.ZeroInt()
	}
	if order.Flow == FlowTaker {
		return order.Qty.MulRaw(int64(c.MarginalFillTakerBps)).QuoRaw(int64(BPS))
	}
	if order.PriceTick != c.ClearingTick {
		return order.Qty
	}
	return order.Qty.MulRaw(int64(c.MarginalFillMakerBps)).QuoRaw(int64(BPS))
}
