// Package keeper implements the Auction House (spec §4.1): the state
// owner for markets, per-batch order tables, per-tick aggregates, tick
// bitmaps, and clearing results. Grounded on the store-backed keeper
// shape of x/orderbook/keeper/keeper.go (store key prefixes, per-key
// json.Marshal, counter-backed ID generation, event emission via
// ctx.EventManager()).
package keeper

import (
	"encoding/binary"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
	settlementtypes "github.com/dfba-labs/dfba-core/x/settlement/types"
)

// Compile-time check that Keeper satisfies the expected-keeper surface
// Settlement Claim depends on.
var _ settlementtypes.AuctionHouse = (*Keeper)(nil)

// Store key prefixes, per SPEC_FULL.md §4.1 storage layout.
var (
	marketKeyPrefix      = []byte{0x01}
	batchStateKeyPrefix  = []byte{0x02}
	aggregatesKeyPrefix  = []byte{0x03}
	bitmapKeyPrefix      = []byte{0x04}
	orderKeyPrefix       = []byte{0x05}
	orderStateKeyPrefix  = []byte{0x06}
	clearingKeyPrefix    = []byte{0x07}
	usedNonceKeyPrefix   = []byte{0x08}
	marketCounterKey     = []byte{0x09}
)

// Keeper is the Auction House's concrete state owner.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger
	admin    string

	// authorizedUpdaters is the capability struct granting
	// update_order_state access (spec §9 "capability structs injected at
	// construction, not a type hierarchy"), populated with the settlement
	// components permitted to call it.
	authorizedUpdaters map[string]bool

	expiry *expiryIndex
}

// NewKeeper constructs an Auction House keeper. authorizedUpdaters lists
// the collaborator identities permitted to call UpdateOrderState.
func NewKeeper(cdc codec.BinaryCodec, storeKey storetypes.StoreKey, logger log.Logger, admin string, authorizedUpdaters ...string) *Keeper {
	set := make(map[string]bool, len(authorizedUpdaters))
	for _, u := range authorizedUpdaters {
		set[u] = true
	}
	return &Keeper{
		cdc:                cdc,
		storeKey:           storeKey,
		logger:             logger.With("module", "x/auctionhouse"),
		admin:              admin,
		authorizedUpdaters: set,
		expiry:             newExpiryIndex(),
	}
}

func (k *Keeper) Logger() log.Logger {
	return k.logger
}

func (k *Keeper) store(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func be64(v uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	return bz
}

func marketKey(marketID uint64) []byte {
	return append(append([]byte{}, marketKeyPrefix...), be64(marketID)...)
}

func batchStateKey(marketID, batchID uint64) []byte {
	key := append([]byte{}, batchStateKeyPrefix...)
	key = append(key, be64(marketID)...)
	return append(key, be64(batchID)...)
}

func aggregatesKey(marketID, batchID uint64) []byte {
	key := append([]byte{}, aggregatesKeyPrefix...)
	key = append(key, be64(marketID)...)
	return append(key, be64(batchID)...)
}

func bitmapKey(marketID, batchID uint64) []byte {
	key := append([]byte{}, bitmapKeyPrefix...)
	key = append(key, be64(marketID)...)
	return append(key, be64(batchID)...)
}

func orderKey(orderID [32]byte) []byte {
	return append(append([]byte{}, orderKeyPrefix...), orderID[:]...)
}

func orderStateKey(orderID [32]byte) []byte {
	return append(append([]byte{}, orderStateKeyPrefix...), orderID[:]...)
}

func clearingKey(marketID, batchID uint64, side types.Side) []byte {
	key := append([]byte{}, clearingKeyPrefix...)
	key = append(key, be64(marketID)...)
	key = append(key, be64(batchID)...)
	return append(key, byte(side))
}

func usedNonceKey(trader string, marketID, batchID uint64, nonce string) []byte {
	key := append([]byte{}, usedNonceKeyPrefix...)
	key = append(key, []byte(trader)...)
	key = append(key, 0x00)
	key = append(key, be64(marketID)...)
	key = append(key, be64(batchID)...)
	key = append(key, 0x00)
	return append(key, []byte(nonce)...)
}
