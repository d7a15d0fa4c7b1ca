package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ahtypes "github.com/dfba-labs/dfba-core/x/auctionhouse/types"
	"github.com/dfba-labs/dfba-core/x/settlement/types"
)

// clearingSideFor returns the ClearingResult side relevant to order (spec
// §4.2: the buy auction matches taker-buy demand against maker-sell
// supply, so both a taker-buy order and the maker-sell orders that filled
// it read the same side-buy result). Takers read their own side's
// auction; makers read the opposite side's, since a maker supplies the
// auction run against the opposing demand.
func clearingSideFor(order ahtypes.Order) ahtypes.Side {
	if order.Flow == ahtypes.FlowTaker {
		return order.Side
	}
	return order.Side.Opposite()
}

// Claim implements spec §4.4 "On claim": idempotent claimed_qty = 0 ->
// filled transition, payout or refund, and the order-state update back
// to the Auction House. The whole operation runs inside one cache
// context so a failure anywhere leaves the order's claim state and the
// escrow lock both untouched (spec §7 "fully applied ... or fully
// reverted").
func (k *Keeper) Claim(ctx sdk.Context, caller string, orderID [32]byte) error {
	order, ok := k.auctionHouse.GetOrder(ctx, orderID)
	if !ok {
		return types.ErrOrderNotFound
	}
	state, ok := k.auctionHouse.GetOrderState(ctx, orderID)
	if !ok {
		return types.ErrOrderNotFound
	}
	if caller != "" && caller != order.Trader {
		return types.ErrOrderNotFound
	}
	if state.ClaimedQty.IsPositive() {
		return types.ErrAlreadyClaimed
	}
	if state.Cancelled {
		return types.ErrCancelled
	}

	clearing, ok := k.auctionHouse.GetClearing(ctx, order.MarketID, order.BatchID, clearingSideFor(order))
	if !ok || !clearing.Finalized {
		return types.ErrNotFinalized
	}

	lock, ok := k.GetLockedFunds(ctx, orderID)
	if !ok {
		return types.ErrLockNotFound
	}

	market, ok := k.auctionHouse.GetMarket(ctx, order.MarketID)
	if !ok {
		return ahtypes.ErrInvalidMarket
	}

	cacheCtx, writeCache := ctx.CacheContext()

	if !clearing.InTheMoney(order) {
		if err := k.refund(cacheCtx, market, order, lock); err != nil {
			return err
		}
		k.deleteLockedFunds(cacheCtx, orderID)
		if err := k.auctionHouse.UpdateOrderState(cacheCtx, types.CollaboratorIdentity, orderID, math.ZeroInt(), order.Qty); err != nil {
			return err
		}
		cacheCtx.EventManager().EmitEvent(types.NewOrderClaimedEvent(orderID, order.Trader, math.ZeroInt(), math.ZeroInt(), math.ZeroInt()))
		writeCache()
		k.auctionHouse.UntrackExpiry(order.MarketID, order.Expiry, orderID)
		return nil
	}

	fill := clearing.FilledQty(order)
	fillPrice := ahtypes.TickToPrice(clearing.ClearingTick)
	notional := fill.Mul(fillPrice).Quo(ahtypes.Wad)
	fee, recipient := k.feeModel.FeeFor(cacheCtx, order.MarketID, order.Flow == ahtypes.FlowMaker, notional)

	var payErr error
	if market.Kind == ahtypes.MarketKindPerp {
		payErr = k.settlePerpFill(cacheCtx, market, order, fill, fillPrice, lock, fee)
	} else {
		payErr = k.settleSpotFill(cacheCtx, market, order, fill, notional, lock, fee, recipient)
	}
	if payErr != nil {
		return payErr
	}

	k.deleteLockedFunds(cacheCtx, orderID)
	remaining := order.Qty.Sub(fill)
	if err := k.auctionHouse.UpdateOrderState(cacheCtx, types.CollaboratorIdentity, orderID, fill, remaining); err != nil {
		return err
	}
	cacheCtx.EventManager().EmitEvent(types.NewOrderClaimedEvent(orderID, order.Trader, fill, fillPrice, fee))
	writeCache()

	k.auctionHouse.UntrackExpiry(order.MarketID, order.Expiry, orderID)
	return nil
}

// refund returns the full locked amount to the trader (spec §4.4 "If not
// in the money").
func (k *Keeper) refund(ctx sdk.Context, market ahtypes.Market, order ahtypes.Order, lock types.LockedFunds) error {
	if lock.BaseAmount.IsPositive() {
		token := market.BaseToken
		if market.Kind == ahtypes.MarketKindPerp {
			token = market.Collateral
		}
		if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, token, types.EscrowAccount, order.Trader, lock.BaseAmount); err != nil {
			return err
		}
	}
	if lock.QuoteAmount.IsPositive() {
		token := market.QuoteToken
		if market.Kind == ahtypes.MarketKindPerp {
			token = market.Collateral
		}
		if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, token, types.EscrowAccount, order.Trader, lock.QuoteAmount); err != nil {
			return err
		}
	}
	ctx.EventManager().EmitEvent(types.NewFundsRefundedEvent(order.OrderID, order.Trader, lock.BaseAmount, lock.QuoteAmount))
	return nil
}

// settleSpotFill implements spec §4.4's buy/sell claim payout math: buy
// fills pay out base and refund excess quote, sell fills pay out
// notional-minus-fee quote and refund unsold base.
func (k *Keeper) settleSpotFill(ctx sdk.Context, market ahtypes.Market, order ahtypes.Order, fill, notional math.Int, lock types.LockedFunds, fee math.Int, recipient string) error {
	switch order.Side {
	case ahtypes.SideBuy:
		if fill.IsPositive() {
			if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.BaseToken, types.EscrowAccount, order.Trader, fill); err != nil {
				return err
			}
		}
		spent := notional.Add(fee)
		excess := lock.QuoteAmount.Sub(spent)
		if excess.IsPositive() {
			if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.QuoteToken, types.EscrowAccount, order.Trader, excess); err != nil {
				return err
			}
		}
		if fee.IsPositive() && recipient != "" {
			if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.QuoteToken, types.EscrowAccount, recipient, fee); err != nil {
				return err
			}
		}
	case ahtypes.SideSell:
		payout := notional.Sub(fee)
		if payout.IsPositive() {
			if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.QuoteToken, types.EscrowAccount, order.Trader, payout); err != nil {
				return err
			}
		}
		unsold := lock.BaseAmount.Sub(fill)
		if unsold.IsPositive() {
			if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.BaseToken, types.EscrowAccount, order.Trader, unsold); err != nil {
				return err
			}
		}
		if fee.IsPositive() && recipient != "" {
			if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.QuoteToken, types.EscrowAccount, recipient, fee); err != nil {
				return err
			}
		}
	default:
		return ahtypes.ErrInvalidSide
	}
	return nil
}

// settlePerpFill implements the perp EXPANSION claim path: instead of
// token transfers, the fill adjusts a Position's signed size and entry
// price, reusing filled_qty/in_the_money from the shared clearing result
// (spec §4.4's closing sentence). Locked margin is prorated by fill/qty:
// the unfilled share is refunded to the trader and the filled share, less
// the fee, becomes position margin. Funding, liquidation, and ADL remain
// out of scope (spec §1 Non-goals).
func (k *Keeper) settlePerpFill(ctx sdk.Context, market ahtypes.Market, order ahtypes.Order, fill, fillPrice math.Int, lock types.LockedFunds, fee math.Int) error {
	sizeDelta := fill
	if order.Side == ahtypes.SideSell {
		sizeDelta = fill.Neg()
	}

	marginUsed := lock.QuoteAmount
	if order.Qty.IsPositive() && fill.LT(order.Qty) {
		marginUsed = lock.QuoteAmount.Mul(fill).Quo(order.Qty)
	}
	marginRefund := lock.QuoteAmount.Sub(marginUsed)
	if marginRefund.IsPositive() {
		if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.Collateral, types.EscrowAccount, order.Trader, marginRefund); err != nil {
			return err
		}
	}
	if fee.IsPositive() {
		if marginUsed.LT(fee) {
			return types.ErrInsufficientFunds
		}
		marginUsed = marginUsed.Sub(fee)
	}

	pos := k.GetPosition(ctx, order.Trader, market.MarketID)
	pos = pos.ApplyFill(sizeDelta, fillPrice, marginUsed)
	k.setPosition(ctx, pos)
	return nil
}
