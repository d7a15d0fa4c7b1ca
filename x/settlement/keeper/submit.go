package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ahtypes "github.com/dfba-labs/dfba-core/x/auctionhouse/types"
	"github.com/dfba-labs/dfba-core/x/settlement/types"
)

// Submit implements spec §4.4 "On submit": lock escrow (spot) or margin
// (perp, EXPANSION), then forward to AuctionHouse.SubmitOrder. The spot
// lock is priced at the priceTick passed in, takers included (the Auction
// House records takers at TakerTickSentinel only after the lock is
// taken), so a taker submitted at tick 0 locks nothing but its fee on a
// zero notional. The lock and the forward happen in the same
// cache context so a forwarding failure leaves no stray lock behind.
func (k *Keeper) Submit(
	ctx sdk.Context,
	trader string,
	marketID uint64,
	side ahtypes.Side,
	flow ahtypes.Flow,
	priceTick int32,
	qty math.Int,
	nonce math.Int,
	expiry int64,
) ([32]byte, uint64, error) {
	market, ok := k.auctionHouse.GetMarket(ctx, marketID)
	if !ok {
		return [32]byte{}, 0, ahtypes.ErrInvalidMarket
	}

	cacheCtx, writeCache := ctx.CacheContext()

	var lock types.LockedFunds
	var lockErr error
	if market.Kind == ahtypes.MarketKindPerp {
		lock, lockErr = k.lockPerpMargin(cacheCtx, market, trader, side, flow, qty)
	} else {
		lock, lockErr = k.lockSpotEscrow(cacheCtx, market, trader, side, flow, priceTick, qty)
	}
	if lockErr != nil {
		return [32]byte{}, 0, lockErr
	}

	orderID, batchID, err := k.auctionHouse.SubmitOrder(cacheCtx, trader, marketID, side, flow, priceTick, qty, nonce, expiry)
	if err != nil {
		return [32]byte{}, 0, err
	}

	lock.OrderID = orderID
	k.setLockedFunds(cacheCtx, lock)
	cacheCtx.EventManager().EmitEvent(types.NewFundsLockedEvent(orderID, trader, lock.BaseAmount, lock.QuoteAmount))
	writeCache()

	return orderID, batchID, nil
}

// lockSpotEscrow implements spec §4.4's spot submit-side locking math.
func (k *Keeper) lockSpotEscrow(ctx sdk.Context, market ahtypes.Market, trader string, side ahtypes.Side, flow ahtypes.Flow, priceTick int32, qty math.Int) (types.LockedFunds, error) {
	price := ahtypes.TickToPrice(priceTick)
	notional := qty.Mul(price).Quo(ahtypes.Wad)
	fee, _ := k.feeModel.FeeFor(ctx, market.MarketID, flow == ahtypes.FlowMaker, notional)

	switch side {
	case ahtypes.SideBuy:
		quoteAmount := notional.Add(fee)
		if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.QuoteToken, trader, types.EscrowAccount, quoteAmount); err != nil {
			return types.LockedFunds{}, err
		}
		return types.NewLockedFunds([32]byte{}, math.ZeroInt(), quoteAmount), nil
	case ahtypes.SideSell:
		if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.BaseToken, trader, types.EscrowAccount, qty); err != nil {
			return types.LockedFunds{}, err
		}
		return types.NewLockedFunds([32]byte{}, qty, math.ZeroInt()), nil
	default:
		return types.LockedFunds{}, ahtypes.ErrInvalidSide
	}
}

// lockPerpMargin implements the perp EXPANSION variant: margin is locked
// from the trader's collateral token using the oracle mark price and a
// fixed initial-margin rate, grounded on
// x/clearinghouse/keeper/settlement.go's calculateInitialMargin (there a
// 5% LegacyDec constant; here the same 5% expressed in bps). Margin is
// recorded in LockedFunds.QuoteAmount since a perp market has only one
// settlement token (collateral), not a base/quote pair.
func (k *Keeper) lockPerpMargin(ctx sdk.Context, market ahtypes.Market, trader string, side ahtypes.Side, flow ahtypes.Flow, qty math.Int) (types.LockedFunds, error) {
	_ = side
	_ = flow
	markPrice, ok := k.oracle.GetPrice(ctx, market.MarketID)
	if !ok {
		return types.LockedFunds{}, types.ErrUnknownMarketKind
	}
	notional := qty.Mul(markPrice).Quo(ahtypes.Wad)
	margin := notional.MulRaw(initialMarginRateBps).QuoRaw(int64(ahtypes.BPS))

	if err := k.vault.DebitCredit(ctx, types.CollaboratorIdentity, market.Collateral, trader, types.EscrowAccount, margin); err != nil {
		return types.LockedFunds{}, err
	}
	return types.NewLockedFunds([32]byte{}, math.ZeroInt(), margin), nil
}
