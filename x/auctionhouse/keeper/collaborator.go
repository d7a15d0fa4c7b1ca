package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// IsAuthorizedUpdater reports whether caller may invoke UpdateOrderState.
func (k *Keeper) IsAuthorizedUpdater(caller string) bool {
	return k.authorizedUpdaters[caller]
}

// UpdateOrderState implements spec §4.1 update_order_state: authorized
// collaborator only, monotone update (claimed_qty non-decreasing,
// remaining_qty non-increasing, neither exceeds the original qty).
// Settlement Claim is the sole caller in this repo, invoked after it
// computes a fill via GetClearing.
func (k *Keeper) UpdateOrderState(ctx sdk.Context, caller string, orderID [32]byte, claimedQty, remainingQty math.Int) error {
	if !k.IsAuthorizedUpdater(caller) {
		return types.ErrUnauthorized
	}
	state, ok := k.GetOrderState(ctx, orderID)
	if !ok {
		return types.ErrOrderNotFound
	}
	if claimedQty.LT(state.ClaimedQty) || remainingQty.GT(state.RemainingQty) {
		return types.ErrMonotonicityViolation
	}
	original := state.OriginalQty()
	if claimedQty.Add(remainingQty).GT(original) {
		return types.ErrMonotonicityViolation
	}

	state.ClaimedQty = claimedQty
	state.RemainingQty = remainingQty
	k.setOrderState(ctx, state)
	return nil
}
