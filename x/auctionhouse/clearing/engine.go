// Package clearing implements the pure batch clearing scan (spec §4.2).
// It holds no store access and never suspends: both ComputeBuyClearing
// and ComputeSellClearing are deterministic functions of the aggregates
// and bitmap handed to them, in the shape of the teacher's
// MatchingEngine.Match - accumulate across ordered levels, stop at the
// level that crosses the opposing side's total demand/supply.
package clearing

import (
	"cosmossdk.io/math"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/tickbitmap"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// ComputeBuyClearing matches taker-buy demand against maker-sell supply,
// walking active ticks ascending (spec §4.2 "Buy scan").
func ComputeBuyClearing(agg *types.BatchAggregates, bitmap *tickbitmap.Bitmap) types.ClearingResult {
	return computeScan(agg, bitmap, types.SideBuy)
}

// ComputeSellClearing matches taker-sell supply against maker-buy demand,
// walking active ticks descending (spec §4.2 "sell-side is symmetric").
func ComputeSellClearing(agg *types.BatchAggregates, bitmap *tickbitmap.Bitmap) types.ClearingResult {
	return computeScan(agg, bitmap, types.SideSell)
}

// computeScan implements both directions of spec §4.2 by running a Cursor
// to completion in one call. The Auction House keeper's step_finalize
// uses the same Cursor incrementally, bounded by max_steps per call and
// persisted between them (spec §4.1, §9).
func computeScan(agg *types.BatchAggregates, bitmap *tickbitmap.Bitmap, side types.Side) types.ClearingResult {
	cursor := NewCursor(agg, side)
	for !cursor.Done {
		cursor.Step(agg, bitmap)
	}
	return cursor.Result
}

// supplySide returns the side whose maker aggregate is the opposing
// liquidity for the given demand side: buy demand is met by sell supply.
func supplySide(side types.Side) types.Side {
	return side.Opposite()
}

func totalDemand(agg *types.BatchAggregates, side types.Side, flow types.Flow) math.Int {
	total := math.ZeroInt()
	for _, level := range agg.Levels {
		total = total.Add(level.Get(side, flow))
	}
	return total
}

// bpsFraction computes floor(numerator * BPS / denominator), the rounding
// rule spec §4.2 mandates for every marginal-fill fraction.
func bpsFraction(numerator, denominator math.Int) uint16 {
	if !denominator.IsPositive() {
		return 0
	}
	frac := numerator.MulRaw(int64(types.BPS)).Quo(denominator)
	return uint16(frac.Int64())
}
