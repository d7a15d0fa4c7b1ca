package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// CreateMarket implements spec §4.1 create_market: admin only, returns a
// fresh market_id and opens batch 1.
func (k *Keeper) CreateMarket(ctx sdk.Context, caller string, kind types.MarketKind, baseOrCollateral, quoteOrOracle string, batchDuration int64) (uint64, error) {
	if caller != k.admin {
		return 0, types.ErrUnauthorized
	}
	if baseOrCollateral == "" || quoteOrOracle == "" {
		return 0, types.ErrInvalidToken
	}
	if batchDuration <= 0 {
		return 0, types.ErrInvalidMarket
	}

	marketID := k.nextMarketID(ctx)
	market := types.Market{
		MarketID:       marketID,
		Kind:           kind,
		Active:         true,
		BatchID:        1,
		BatchStartUnix: ctx.BlockTime().Unix(),
		BatchDuration:  batchDuration,
	}
	switch kind {
	case types.MarketKindSpot:
		market.BaseToken, market.QuoteToken = baseOrCollateral, quoteOrOracle
	case types.MarketKindPerp:
		market.Collateral, market.OracleID = baseOrCollateral, quoteOrOracle
	default:
		return 0, types.ErrInvalidMarket
	}

	k.setMarket(ctx, market)
	k.setBatchState(ctx, types.NewBatchState(marketID, market.BatchID))
	return marketID, nil
}

func (k *Keeper) nextMarketID(ctx sdk.Context) uint64 {
	store := k.store(ctx)
	bz := store.Get(marketCounterKey)
	var counter uint64
	if bz != nil {
		counter = sdk.BigEndianToUint64(bz)
	}
	counter++
	store.Set(marketCounterKey, be64(counter))
	return counter
}

func (k *Keeper) setMarket(ctx sdk.Context, market types.Market) {
	bz, err := json.Marshal(market)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(marketKey(market.MarketID), bz)
}

// GetMarket implements the read-only get_market surface.
func (k *Keeper) GetMarket(ctx sdk.Context, marketID uint64) (types.Market, bool) {
	bz := k.store(ctx).Get(marketKey(marketID))
	if bz == nil {
		return types.Market{}, false
	}
	var market types.Market
	if err := json.Unmarshal(bz, &market); err != nil {
		k.logger.Error("corrupt market record", "market_id", marketID, "err", err)
		return types.Market{}, false
	}
	return market, true
}
