package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/settlement/types"
)

func (k *Keeper) setLockedFunds(ctx sdk.Context, lock types.LockedFunds) {
	bz, err := json.Marshal(lock)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(lockedFundsKey(lock.OrderID), bz)
}

// GetLockedFunds returns the escrow lock recorded for order_id, if any.
func (k *Keeper) GetLockedFunds(ctx sdk.Context, orderID [32]byte) (types.LockedFunds, bool) {
	bz := k.store(ctx).Get(lockedFundsKey(orderID))
	if bz == nil {
		return types.LockedFunds{}, false
	}
	var lock types.LockedFunds
	if err := json.Unmarshal(bz, &lock); err != nil {
		panic(err)
	}
	return lock, true
}

func (k *Keeper) deleteLockedFunds(ctx sdk.Context, orderID [32]byte) {
	k.store(ctx).Delete(lockedFundsKey(orderID))
}

func (k *Keeper) setPosition(ctx sdk.Context, pos types.Position) {
	bz, err := json.Marshal(pos)
	if err != nil {
		panic(err)
	}
	k.store(ctx).Set(positionKey(pos.Trader, pos.MarketID), bz)
}

// GetPosition returns trader's position in marketID, or a flat position
// if none has been recorded yet.
func (k *Keeper) GetPosition(ctx sdk.Context, trader string, marketID uint64) types.Position {
	bz := k.store(ctx).Get(positionKey(trader, marketID))
	if bz == nil {
		return types.NewPosition(trader, marketID)
	}
	var pos types.Position
	if err := json.Unmarshal(bz, &pos); err != nil {
		panic(err)
	}
	return pos
}
