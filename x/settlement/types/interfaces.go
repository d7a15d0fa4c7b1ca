// Package types defines the collaborator interfaces Settlement Claim
// depends on (spec §6): a token-custody vault and a pluggable fee model.
// Concrete reference implementations live in x/vault and x/feemodel; the
// settlement keeper only depends on these interfaces, mirroring the
// teacher's expected-keeper pattern (x/orderbook/keeper/keeper.go's
// PerpetualKeeper interface).
package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"cosmossdk.io/math"

	ahtypes "github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// AuctionHouse is the expected-keeper surface Settlement Claim consumes
// (spec §2 "Settlement Claim reads from Auction House only"), mirroring
// the teacher's PerpetualKeeper expected-interface pattern in
// x/orderbook/keeper/keeper.go.
type AuctionHouse interface {
	GetMarket(ctx sdk.Context, marketID uint64) (ahtypes.Market, bool)
	SubmitOrder(ctx sdk.Context, trader string, marketID uint64, side ahtypes.Side, flow ahtypes.Flow, priceTick int32, qty, nonce math.Int, expiry int64) ([32]byte, uint64, error)
	CancelOrder(ctx sdk.Context, caller string, orderID [32]byte) error
	GetOrder(ctx sdk.Context, orderID [32]byte) (ahtypes.Order, bool)
	GetOrderState(ctx sdk.Context, orderID [32]byte) (ahtypes.OrderState, bool)
	GetBatchState(ctx sdk.Context, marketID, batchID uint64) (ahtypes.BatchState, bool)
	GetClearing(ctx sdk.Context, marketID, batchID uint64, side ahtypes.Side) (ahtypes.ClearingResult, bool)
	UpdateOrderState(ctx sdk.Context, caller string, orderID [32]byte, claimedQty, remainingQty math.Int) error
	UntrackExpiry(marketID uint64, expiry int64, orderID [32]byte)
}

// Vault is the collaborator token-custody surface (spec §6). caller must
// be an address the vault has authorized via AuthorizeSettler before
// DebitCredit will move a balance that is not the caller's own.
type Vault interface {
	DebitCredit(ctx sdk.Context, caller, token, from, to string, amount math.Int) error
	BalanceOf(ctx sdk.Context, user, token string) math.Int
}

// FeeModel is the collaborator fee-schedule surface (spec §6).
type FeeModel interface {
	// FeeFor returns (fee_amount, recipient) for a trade of the given
	// notional, on the given market, for the maker or taker role.
	FeeFor(ctx sdk.Context, marketID uint64, isMaker bool, notional math.Int) (math.Int, string)
}

// Oracle is the collaborator price feed used only by the perp settlement
// path (spec §6, perp only).
type Oracle interface {
	GetPrice(ctx sdk.Context, marketID uint64) (math.Int, bool) // 18-decimal fixed point
}

// EscrowAccount is the identity settlement uses to hold locked funds
// in-flight between submit and claim/cancel.
const EscrowAccount = "dfba/escrow"

// CollaboratorIdentity is the identity Settlement Claim presents to the
// Auction House's update_order_state, which only an authorized
// collaborator may call (spec §9 "capability structs injected at
// construction"). An Engine wiring Settlement Claim must grant this
// identity updater access on the Auction House keeper.
const CollaboratorIdentity = "dfba/settlement"
