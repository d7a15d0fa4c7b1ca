// Package keeper implements a concrete reference FeeModel (spec §6):
// a per-market, per-role (maker/taker) fee schedule in basis points.
// Grounded on the per-market TakerFeeRate/MakerFeeRate fields and
// calculateFee helper in x/orderbook/keeper/matching.go, generalized
// into its own pluggable collaborator rather than a field baked into
// the matching engine.
package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/feemodel/types"
)

var marketFeesKeyPrefix = []byte{0x01}

// Keeper is the concrete FeeModel implementation, satisfying
// settlement/types.FeeModel.
type Keeper struct {
	storeKey storetypes.StoreKey
	logger   log.Logger
}

// NewKeeper creates a new fee model keeper.
func NewKeeper(storeKey storetypes.StoreKey, logger log.Logger) *Keeper {
	return &Keeper{storeKey: storeKey, logger: logger.With("module", "x/feemodel")}
}

func marketFeesKey(marketID uint64) []byte {
	key := append([]byte{}, marketFeesKeyPrefix...)
	return append(key, sdk.Uint64ToBigEndian(marketID)...)
}

// SetMarketFees installs or replaces the fee schedule for a market.
func (k *Keeper) SetMarketFees(ctx sdk.Context, fees types.MarketFees) {
	bz, err := json.Marshal(fees)
	if err != nil {
		panic(err)
	}
	ctx.KVStore(k.storeKey).Set(marketFeesKey(fees.MarketID), bz)
}

// GetMarketFees returns the fee schedule for marketID, if one was set.
func (k *Keeper) GetMarketFees(ctx sdk.Context, marketID uint64) (types.MarketFees, bool) {
	bz := ctx.KVStore(k.storeKey).Get(marketFeesKey(marketID))
	if bz == nil {
		return types.MarketFees{}, false
	}
	var fees types.MarketFees
	if err := json.Unmarshal(bz, &fees); err != nil {
		k.logger.Error("corrupt market fee schedule", "market_id", marketID, "err", err)
		return types.MarketFees{}, false
	}
	return fees, true
}

// FeeFor returns (fee_amount, recipient) for a trade of the given
// notional, satisfying settlement/types.FeeModel. Markets without an
// explicit schedule pay zero fee to an empty recipient rather than erroring,
// since fee collection is optional infrastructure layered on top of
// clearing (spec §6 marks FeeModel entirely pluggable).
func (k *Keeper) FeeFor(ctx sdk.Context, marketID uint64, isMaker bool, notional math.Int) (math.Int, string) {
	fees, ok := k.GetMarketFees(ctx, marketID)
	if !ok {
		return math.ZeroInt(), ""
	}
	return fees.Fee(isMaker, notional), fees.FeeRecipient
}
