package types

import "cosmossdk.io/math"

// BatchState is the persisted finalization machine for one (market_id,
// batch_id), carrying the phase and, while CLEARING_BUY/CLEARING_SELL is
// in progress, the scan cursor so step_finalize can resume across calls
// (spec §4.1 "Finalization state machine", §9 "Partial finalization
// cursor").
type BatchState struct {
	MarketID uint64
	BatchID  uint64
	Phase    BatchPhase

	// Cursor fields, meaningful only while Phase is CLEARING_BUY or
	// CLEARING_SELL. Mirrors clearing.Cursor's exported fields so the
	// keeper can marshal/unmarshal it without importing the clearing
	// package's internal scan helpers into the storage layer.
	CursorDemand           math.Int
	CursorCumulativeSupply math.Int
	CursorNextTick         int32
	CursorLimit            int32
	CursorAscending        bool
	CursorSawActive        bool
	CursorLastActiveTick   int32
	CursorDone             bool
}

// NewBatchState returns the initial OPEN state for a freshly opened batch.
func NewBatchState(marketID, batchID uint64) BatchState {
	return BatchState{MarketID: marketID, BatchID: batchID, Phase: BatchPhaseOpen}
}
