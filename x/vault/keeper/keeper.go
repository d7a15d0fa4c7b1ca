// Package keeper implements a concrete reference Vault (spec §6): internal
// balance custody with debit_credit and an authorization list restricting
// who may move balances that are not their own. Grounded on the
// store-backed account ledger pattern in
// x/clearinghouse/keeper/settlement.go (GetOrCreateAccount/SetAccount),
// generalized from one perp collateral account per trader to one balance
// per (user, token).
package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/vault/types"
)

var (
	balanceKeyPrefix = []byte{0x01}
	settlerKeyPrefix = []byte{0x02}
)

// Keeper is the concrete Vault implementation, satisfying the
// settlement/types.Vault interface.
type Keeper struct {
	storeKey storetypes.StoreKey
	logger   log.Logger
	admin    string
}

// NewKeeper creates a new vault keeper.
func NewKeeper(storeKey storetypes.StoreKey, logger log.Logger, admin string) *Keeper {
	return &Keeper{storeKey: storeKey, logger: logger.With("module", "x/vault"), admin: admin}
}

func balanceKey(user, token string) []byte {
	key := append([]byte{}, balanceKeyPrefix...)
	key = append(key, []byte(token)...)
	key = append(key, 0x00)
	key = append(key, []byte(user)...)
	return key
}

func settlerKey(addr string) []byte {
	return append(append([]byte{}, settlerKeyPrefix...), []byte(addr)...)
}

// balanceRecord is the JSON-on-disk shape of a balance entry, following
// the teacher's json.Marshal-per-key idiom (x/orderbook/keeper/keeper.go
// SetOrder/GetOrder) rather than proto-generated types.
type balanceRecord struct {
	Amount math.Int `json:"amount"`
}

// Deposit credits amount of token to user's internal balance. It models
// the external collaborator's real-funds-in entrypoint; DFBA Core's
// settlement path only ever moves balances that are already inside the
// vault via DebitCredit.
func (k *Keeper) Deposit(ctx sdk.Context, user, token string, amount math.Int) {
	k.setBalance(ctx, user, token, k.BalanceOf(ctx, user, token).Add(amount))
}

// BalanceOf returns user's internal balance of token.
func (k *Keeper) BalanceOf(ctx sdk.Context, user, token string) math.Int {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(balanceKey(user, token))
	if bz == nil {
		return math.ZeroInt()
	}
	var rec balanceRecord
	if err := json.Unmarshal(bz, &rec); err != nil {
		k.logger.Error("corrupt balance record", "user", user, "token", token, "err", err)
		return math.ZeroInt()
	}
	return rec.Amount
}

func (k *Keeper) setBalance(ctx sdk.Context, user, token string, amount math.Int) {
	bz, err := json.Marshal(balanceRecord{Amount: amount})
	if err != nil {
		panic(err)
	}
	ctx.KVStore(k.storeKey).Set(balanceKey(user, token), bz)
}

// DebitCredit moves amount of token from `from` to `to`, failing if
// `from`'s balance is insufficient (spec §6 collaborator vault surface).
// caller must be self-transferring (from == to) or an authorized settler
// (spec §5 "only registered settlement components may move non-self
// balances"), mirroring x/auctionhouse/keeper/collaborator.go's
// UpdateOrderState authorization check.
func (k *Keeper) DebitCredit(ctx sdk.Context, caller, token, from, to string, amount math.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	if from != to && !k.IsAuthorizedSettler(ctx, caller) {
		return types.ErrUnauthorizedSettler
	}
	fromBal := k.BalanceOf(ctx, from, token)
	if fromBal.LT(amount) {
		return types.ErrInsufficientBalance
	}
	k.setBalance(ctx, from, token, fromBal.Sub(amount))
	k.setBalance(ctx, to, token, k.BalanceOf(ctx, to, token).Add(amount))
	return nil
}

// AuthorizeSettler grants settlement-component write access, mirroring
// the spec's "vault enforces an authorization list" (spec §5).
func (k *Keeper) AuthorizeSettler(ctx sdk.Context, addr string) {
	ctx.KVStore(k.storeKey).Set(settlerKey(addr), []byte{1})
}

// IsAuthorizedSettler reports whether addr may move non-self balances.
func (k *Keeper) IsAuthorizedSettler(ctx sdk.Context, addr string) bool {
	return ctx.KVStore(k.storeKey).Has(settlerKey(addr))
}
