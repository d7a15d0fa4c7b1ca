package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/tickbitmap"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

func (k *Keeper) setBatchState(ctx sdk.Context, bs types.BatchState) {
	bz, err := json.Marshal(bs)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(batchStateKey(bs.MarketID, bs.BatchID), bz)
}

// GetBatchState implements the finalization machine's read-only surface.
func (k *Keeper) GetBatchState(ctx sdk.Context, marketID, batchID uint64) (types.BatchState, bool) {
	bz := k.store(ctx).Get(batchStateKey(marketID, batchID))
	if bz == nil {
		return types.BatchState{}, false
	}
	var bs types.BatchState
	if err := json.Unmarshal(bz, &bs); err != nil {
		k.logger.Error("corrupt batch state", "market_id", marketID, "batch_id", batchID, "err", err)
		return types.BatchState{}, false
	}
	return bs, true
}

func (k *Keeper) getAggregates(ctx sdk.Context, marketID, batchID uint64) *types.BatchAggregates {
	bz := k.store(ctx).Get(aggregatesKey(marketID, batchID))
	if bz == nil {
		return types.NewBatchAggregates()
	}
	agg := types.NewBatchAggregates()
	if err := json.Unmarshal(bz, agg); err != nil {
		k.logger.Error("corrupt batch aggregates", "market_id", marketID, "batch_id", batchID, "err", err)
		return types.NewBatchAggregates()
	}
	return agg
}

func (k *Keeper) setAggregates(ctx sdk.Context, marketID, batchID uint64, agg *types.BatchAggregates) {
	bz, err := json.Marshal(agg)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(aggregatesKey(marketID, batchID), bz)
}

func (k *Keeper) getBitmap(ctx sdk.Context, marketID, batchID uint64) *tickbitmap.Bitmap {
	bz := k.store(ctx).Get(bitmapKey(marketID, batchID))
	if bz == nil {
		return tickbitmap.New()
	}
	bm := tickbitmap.New()
	if err := json.Unmarshal(bz, bm); err != nil {
		k.logger.Error("corrupt tick bitmap", "market_id", marketID, "batch_id", batchID, "err", err)
		return tickbitmap.New()
	}
	return bm
}

func (k *Keeper) setBitmap(ctx sdk.Context, marketID, batchID uint64, bm *tickbitmap.Bitmap) {
	bz, err := json.Marshal(bm)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(bitmapKey(marketID, batchID), bz)
}

func (k *Keeper) setOrder(ctx sdk.Context, order types.Order) {
	bz, err := json.Marshal(order)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(orderKey(order.OrderID), bz)
}

// GetOrder implements the get_order read surface.
func (k *Keeper) GetOrder(ctx sdk.Context, orderID [32]byte) (types.Order, bool) {
	bz := k.store(ctx).Get(orderKey(orderID))
	if bz == nil {
		return types.Order{}, false
	}
	var order types.Order
	if err := json.Unmarshal(bz, &order); err != nil {
		k.logger.Error("corrupt order record", "err", err)
		return types.Order{}, false
	}
	return order, true
}

func (k *Keeper) setOrderState(ctx sdk.Context, state types.OrderState) {
	bz, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(orderStateKey(state.OrderID), bz)
}

// GetOrderState returns an order's mutable state.
func (k *Keeper) GetOrderState(ctx sdk.Context, orderID [32]byte) (types.OrderState, bool) {
	bz := k.store(ctx).Get(orderStateKey(orderID))
	if bz == nil {
		return types.OrderState{}, false
	}
	var state types.OrderState
	if err := json.Unmarshal(bz, &state); err != nil {
		k.logger.Error("corrupt order state record", "err", err)
		return types.OrderState{}, false
	}
	return state, true
}

func (k *Keeper) setClearingResult(ctx sdk.Context, marketID, batchID uint64, side types.Side, result types.ClearingResult) {
	bz, err := json.Marshal(result)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(clearingKey(marketID, batchID, side), bz)
}

// GetClearing implements the get_clearing read surface.
func (k *Keeper) GetClearing(ctx sdk.Context, marketID, batchID uint64, side types.Side) (types.ClearingResult, bool) {
	bz := k.store(ctx).Get(clearingKey(marketID, batchID, side))
	if bz == nil {
		return types.ClearingResult{}, false
	}
	var result types.ClearingResult
	if err := json.Unmarshal(bz, &result); err != nil {
		k.logger.Error("corrupt clearing result", "err", err)
		return types.ClearingResult{}, false
	}
	return result, true
}

// GetTickLevel implements the get_tick_level read surface.
func (k *Keeper) GetTickLevel(ctx sdk.Context, marketID, batchID uint64, tick int32) types.TickLevel {
	return k.getAggregates(ctx, marketID, batchID).Level(tick)
}

func (k *Keeper) markNonceUsed(ctx sdk.Context, trader string, marketID, batchID uint64, nonce string) {
	k.store(ctx).Set(usedNonceKey(trader, marketID, batchID, nonce), []byte{1})
}

func (k *Keeper) isNonceUsed(ctx sdk.Context, trader string, marketID, batchID uint64, nonce string) bool {
	return k.store(ctx).Has(usedNonceKey(trader, marketID, batchID, nonce))
}
