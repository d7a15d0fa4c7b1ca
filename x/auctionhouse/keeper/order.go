package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// submitRolloverMaxSteps bounds the incremental finalization work a single
// submit_order call performs on a just-ended batch before opening the
// next one (spec §4.1 "Batch roll-over" amortizes clearing work across
// submitters rather than running a dedicated keeper process).
const submitRolloverMaxSteps = 16

// SubmitOrder implements spec §4.1 submit_order. trader is both the
// caller and the order owner — the keeper has no separate signer
// envelope, so "caller == order.trader" (spec's authorization
// constraint) holds by construction.
func (k *Keeper) SubmitOrder(
	ctx sdk.Context,
	trader string,
	marketID uint64,
	side types.Side,
	flow types.Flow,
	priceTick int32,
	qty math.Int,
	nonce math.Int,
	expiry int64,
) ([32]byte, uint64, error) {
	market, ok := k.GetMarket(ctx, marketID)
	if !ok {
		return [32]byte{}, 0, types.ErrInvalidMarket
	}
	if !market.Active {
		return [32]byte{}, 0, types.ErrMarketInactive
	}
	if !qty.IsPositive() {
		return [32]byte{}, 0, types.ErrInvalidQty
	}
	if flow == types.FlowMaker && (priceTick < types.MinTick || priceTick > types.MaxTick) {
		return [32]byte{}, 0, types.ErrTickOutOfRange
	}
	if side != types.SideBuy && side != types.SideSell {
		return [32]byte{}, 0, types.ErrInvalidSide
	}
	if flow == types.FlowTaker {
		priceTick = types.TakerTickSentinel
	}

	market = k.rollBatchIfEnded(ctx, market)

	if expiry != 0 && expiry < market.BatchEndUnix() {
		return [32]byte{}, 0, types.ErrOrderExpired
	}

	nonceStr := nonce.String()
	if k.isNonceUsed(ctx, trader, marketID, market.BatchID, nonceStr) {
		return [32]byte{}, 0, types.ErrDuplicateNonce
	}

	orderID := computeOrderID(trader, marketID, market.BatchID, side, flow, priceTick, qty.String(), nonceStr, expiry)
	if _, exists := k.GetOrder(ctx, orderID); exists {
		return [32]byte{}, 0, types.ErrDuplicateOrder
	}

	order := types.Order{
		OrderID:   orderID,
		Trader:    trader,
		MarketID:  marketID,
		BatchID:   market.BatchID,
		Side:      side,
		Flow:      flow,
		PriceTick: priceTick,
		Qty:       qty,
		Nonce:     nonce,
		Expiry:    expiry,
	}

	cacheCtx, writeCache := ctx.CacheContext()

	agg := k.getAggregates(cacheCtx, marketID, market.BatchID)
	empty, err := agg.Apply(priceTick, side, flow, qty)
	if err != nil {
		return [32]byte{}, 0, err
	}
	k.setAggregates(cacheCtx, marketID, market.BatchID, agg)

	bm := k.getBitmap(cacheCtx, marketID, market.BatchID)
	if !empty {
		bm.Set(priceTick)
	}
	k.setBitmap(cacheCtx, marketID, market.BatchID, bm)

	k.setOrder(cacheCtx, order)
	k.setOrderState(cacheCtx, types.NewOrderState(orderID, qty))
	k.markNonceUsed(cacheCtx, trader, marketID, market.BatchID, nonceStr)

	cacheCtx.EventManager().EmitEvent(types.NewOrderSubmittedEvent(orderID, trader, marketID, market.BatchID))
	writeCache()

	k.TrackExpiry(marketID, expiry, orderID)
	return orderID, market.BatchID, nil
}

// rollBatchIfEnded advances market to a fresh batch if its current one has
// ended, running a bounded slice of the old batch's finalization first
// (spec §4.1 "Batch roll-over"). Returns the (possibly updated) market.
func (k *Keeper) rollBatchIfEnded(ctx sdk.Context, market types.Market) types.Market {
	if ctx.BlockTime().Unix() < market.BatchEndUnix() {
		return market
	}

	oldBatchID := market.BatchID
	bs, ok := k.GetBatchState(ctx, market.MarketID, oldBatchID)
	if !ok {
		bs = types.NewBatchState(market.MarketID, oldBatchID)
	}
	if bs.Phase == types.BatchPhaseOpen {
		bs.Phase = types.BatchPhaseEnded
		k.setBatchState(ctx, bs)
	}
	if bs.Phase != types.BatchPhaseFinalized {
		k.stepFinalize(ctx, market.MarketID, oldBatchID, submitRolloverMaxSteps)
	}

	market.BatchID++
	market.BatchStartUnix = market.BatchEndUnix()
	k.setMarket(ctx, market)
	k.setBatchState(ctx, types.NewBatchState(market.MarketID, market.BatchID))
	return market
}

// CancelOrder implements spec §4.1 cancel_order.
func (k *Keeper) CancelOrder(ctx sdk.Context, caller string, orderID [32]byte) error {
	order, ok := k.GetOrder(ctx, orderID)
	if !ok {
		return types.ErrOrderNotFound
	}
	if caller != order.Trader {
		return types.ErrNotOwner
	}
	state, ok := k.GetOrderState(ctx, orderID)
	if !ok {
		return types.ErrOrderNotFound
	}
	if state.Cancelled {
		return types.ErrAlreadyCancelled
	}
	if state.ClaimedQty.IsPositive() {
		return types.ErrAlreadyClaimed
	}

	bs, ok := k.GetBatchState(ctx, order.MarketID, order.BatchID)
	if ok && bs.Phase != types.BatchPhaseOpen {
		return types.ErrBatchExpired
	}

	cacheCtx, writeCache := ctx.CacheContext()

	agg := k.getAggregates(cacheCtx, order.MarketID, order.BatchID)
	empty, err := agg.Apply(order.PriceTick, order.Side, order.Flow, state.RemainingQty.Neg())
	if err != nil {
		return err
	}
	k.setAggregates(cacheCtx, order.MarketID, order.BatchID, agg)

	if empty {
		bm := k.getBitmap(cacheCtx, order.MarketID, order.BatchID)
		bm.Clear(order.PriceTick)
		k.setBitmap(cacheCtx, order.MarketID, order.BatchID, bm)
	}

	state.RemainingQty = math.ZeroInt()
	state.Cancelled = true
	k.setOrderState(cacheCtx, state)

	cacheCtx.EventManager().EmitEvent(types.NewOrderCancelledEvent(orderID, order.Trader))
	writeCache()

	k.UntrackExpiry(order.MarketID, order.Expiry, orderID)
	return nil
}
