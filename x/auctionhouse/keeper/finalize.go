package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/clearing"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// StepFinalize implements spec §4.1 step_finalize: advances the
// finalization state machine up to maxSteps active ticks and returns the
// resulting phase and whether the batch is now fully finalized.
func (k *Keeper) StepFinalize(ctx sdk.Context, marketID, batchID uint64, maxSteps int) (types.BatchPhase, bool, error) {
	bs, ok := k.GetBatchState(ctx, marketID, batchID)
	if !ok {
		return types.BatchPhaseOpen, false, types.ErrNotFound
	}
	if bs.Phase == types.BatchPhaseOpen {
		return bs.Phase, false, types.ErrBatchNotEnded
	}
	if bs.Phase == types.BatchPhaseFinalized {
		return bs.Phase, true, types.ErrAlreadyFinalized
	}
	phase := k.stepFinalize(ctx, marketID, batchID, maxSteps)
	return phase, phase == types.BatchPhaseFinalized, nil
}

// stepFinalize drives the ENDED -> CLEARING_BUY -> CLEARING_SELL ->
// FINALIZED machine (spec §4.1 "Finalization state machine"), persisting
// the scan cursor between calls (spec §9). It is also invoked internally
// by submit_order's batch roll-over (spec §4.1 "Batch roll-over").
func (k *Keeper) stepFinalize(ctx sdk.Context, marketID, batchID uint64, maxSteps int) types.BatchPhase {
	bs, ok := k.GetBatchState(ctx, marketID, batchID)
	if !ok {
		return types.BatchPhaseOpen
	}

	if bs.Phase == types.BatchPhaseEnded {
		bs.Phase = types.BatchPhaseClearingBuy
		bs.CursorDemand = math.Int{}
	}

	if bs.Phase == types.BatchPhaseClearingBuy {
		agg := k.getAggregates(ctx, marketID, batchID)
		bm := k.getBitmap(ctx, marketID, batchID)
		cursor := loadOrStartCursor(types.SideBuy, bs, agg)
		done := cursor.StepN(agg, bm, maxSteps)
		if done {
			k.setClearingResult(ctx, marketID, batchID, types.SideBuy, cursor.Result)
			ctx.EventManager().EmitEvent(types.NewBatchFinalizedEvent(marketID, batchID, types.SideBuy))
			bs.Phase = types.BatchPhaseClearingSell
			bs.CursorDemand = math.Int{}
		} else {
			cursor.SaveTo(&bs)
			k.setBatchState(ctx, bs)
			return bs.Phase
		}
	}

	if bs.Phase == types.BatchPhaseClearingSell {
		agg := k.getAggregates(ctx, marketID, batchID)
		bm := k.getBitmap(ctx, marketID, batchID)
		cursor := loadOrStartCursor(types.SideSell, bs, agg)
		done := cursor.StepN(agg, bm, maxSteps)
		if done {
			k.setClearingResult(ctx, marketID, batchID, types.SideSell, cursor.Result)
			ctx.EventManager().EmitEvent(types.NewBatchFinalizedEvent(marketID, batchID, types.SideSell))
			bs.Phase = types.BatchPhaseFinalized
		} else {
			cursor.SaveTo(&bs)
		}
	}

	k.setBatchState(ctx, bs)
	return bs.Phase
}

// loadOrStartCursor resumes a persisted scan cursor, or starts a fresh
// one if this is the first step_finalize call to touch this phase
// (detected via the sentinel math.Int{} left by the phase
// transition above).
func loadOrStartCursor(side types.Side, bs types.BatchState, agg *types.BatchAggregates) clearing.Cursor {
	if bs.CursorDemand.IsNil() {
		return clearing.NewCursor(agg, side)
	}
	return clearing.LoadCursor(side, bs)
}
