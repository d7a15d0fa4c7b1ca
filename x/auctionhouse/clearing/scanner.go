package clearing

import (
	"cosmossdk.io/math"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/tickbitmap"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// Cursor is the persistable state of an in-progress buy or sell scan
// (spec §9 "Partial finalization cursor"). The Auction House keeper
// persists one Cursor per (market, batch, side) so step_finalize can
// resume a bounded scan across calls instead of re-walking from scratch.
type Cursor struct {
	Side             types.Side
	Demand           math.Int
	CumulativeSupply math.Int
	NextTick         int32
	Limit            int32
	Ascending        bool
	SawActive        bool
	LastActiveTick   int32
	Done             bool
	Result           types.ClearingResult
}

// NewCursor starts a fresh scan for side against agg's current totals,
// per spec §4.2 step 1 ("Let D = Σ taker_buy..."). A zero-demand side
// finishes immediately with an empty, finalized result.
func NewCursor(agg *types.BatchAggregates, side types.Side) Cursor {
	demand := totalDemand(agg, side, types.FlowTaker)
	if !demand.IsPositive() {
		result := types.EmptyClearingResult(side)
		result.Finalized = true
		return Cursor{Side: side, Demand: demand, CumulativeSupply: math.ZeroInt(), Done: true, Result: result}
	}

	ascending := side == types.SideBuy
	tick, limit := types.MinTick, types.MaxTick
	if !ascending {
		tick, limit = types.MaxTick, types.MinTick
	}
	return Cursor{
		Side:             side,
		Demand:           demand,
		CumulativeSupply: math.ZeroInt(),
		NextTick:         tick,
		Limit:            limit,
		Ascending:        ascending,
	}
}

// Step advances the scan by checking at most one active tick (spec §4.1
// "each step_finalize call processes at most max_steps active ticks").
// It returns true once the scan has finished, whether by crossing demand
// or by exhausting the bitmap.
func (c *Cursor) Step(agg *types.BatchAggregates, bitmap *tickbitmap.Bitmap) bool {
	if c.Done {
		return true
	}

	var next int32
	if c.Ascending {
		next = bitmap.NextActive(c.NextTick, c.Limit)
	} else {
		next = bitmap.PrevActive(c.NextTick, c.Limit)
	}
	if next == tickbitmap.NotFound {
		c.finishExhausted()
		return true
	}

	c.SawActive = true

	supply := agg.Level(next).Get(supplySide(c.Side), types.FlowMaker)
	if supply.IsPositive() {
		if c.CumulativeSupply.Add(supply).GTE(c.Demand) {
			c.finishCrossed(next, supply)
			return true
		}
		c.CumulativeSupply = c.CumulativeSupply.Add(supply)
		c.LastActiveTick = next
	}

	if c.Ascending {
		c.NextTick = next + 1
	} else {
		c.NextTick = next - 1
	}
	return false
}

// StepN advances the scan by at most maxSteps active ticks and reports
// whether it finished within that budget.
func (c *Cursor) StepN(agg *types.BatchAggregates, bitmap *tickbitmap.Bitmap, maxSteps int) bool {
	for i := 0; i < maxSteps; i++ {
		if c.Step(agg, bitmap) {
			return true
		}
	}
	return c.Done
}

func (c *Cursor) finishCrossed(tick int32, supply math.Int) {
	needed := c.Demand.Sub(c.CumulativeSupply)
	result := types.EmptyClearingResult(c.Side)
	result.ClearingTick = tick
	result.ClearedQty = c.Demand
	result.MarginalFillTakerBps = types.BPS
	if needed.LT(supply) {
		result.MarginalFillMakerBps = bpsFraction(needed, supply)
	} else {
		result.MarginalFillMakerBps = types.BPS
	}
	result.Finalized = true
	c.Result = result
	c.Done = true
}

func (c *Cursor) finishExhausted() {
	result := types.EmptyClearingResult(c.Side)
	if c.SawActive && c.CumulativeSupply.IsPositive() {
		result.ClearingTick = c.LastActiveTick
		result.ClearedQty = c.CumulativeSupply
		result.MarginalFillMakerBps = types.BPS
		result.MarginalFillTakerBps = bpsFraction(c.CumulativeSupply, c.Demand)
	}
	result.Finalized = true
	c.Result = result
	c.Done = true
}

// SaveTo copies the cursor's resumable fields into a BatchState so the
// keeper can persist them between step_finalize calls.
func (c Cursor) SaveTo(bs *types.BatchState) {
	bs.CursorDemand = c.Demand
	bs.CursorCumulativeSupply = c.CumulativeSupply
	bs.CursorNextTick = c.NextTick
	bs.CursorLimit = c.Limit
	bs.CursorAscending = c.Ascending
	bs.CursorSawActive = c.SawActive
	bs.CursorLastActiveTick = c.LastActiveTick
	bs.CursorDone = c.Done
}

// LoadCursor reconstructs a Cursor from a BatchState previously populated
// by SaveTo, resuming a scan in progress.
func LoadCursor(side types.Side, bs types.BatchState) Cursor {
	return Cursor{
		Side:             side,
		Demand:           bs.CursorDemand,
		CumulativeSupply: bs.CursorCumulativeSupply,
		NextTick:         bs.CursorNextTick,
		Limit:            bs.CursorLimit,
		Ascending:        bs.CursorAscending,
		SawActive:        bs.CursorSawActive,
		LastActiveTick:   bs.CursorLastActiveTick,
		Done:             bs.CursorDone,
	}
}
