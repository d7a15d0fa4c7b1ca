// Package keeper implements Settlement Claim (spec §4.4): escrow locking
// at submit, payout/refund at claim, and the idempotent
// claimed_qty = 0 -> filled transition. Grounded on the store-backed
// keeper shape of x/auctionhouse/keeper and on
// x/clearinghouse/keeper/settlement.go's atomic CacheContext/write()
// settlement pattern.
package keeper

import (
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/settlement/types"
)

var lockedFundsKeyPrefix = []byte{0x01}
var positionKeyPrefix = []byte{0x02}

// initialMarginRateBps is the fixed initial-margin rate applied to perp
// submits, grounded on x/clearinghouse/keeper/settlement.go's
// calculateInitialMargin (5%, there expressed as a LegacyDec constant).
const initialMarginRateBps = 500

// Keeper is Settlement Claim's concrete state owner. It depends only on
// the Auction House, vault, fee-model, and oracle collaborator
// interfaces (spec §6), never their concrete keepers.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	auctionHouse types.AuctionHouse
	vault        types.Vault
	feeModel     types.FeeModel
	oracle       types.Oracle
}

// NewKeeper constructs a Settlement Claim keeper wired to its
// collaborators.
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
	auctionHouse types.AuctionHouse,
	vault types.Vault,
	feeModel types.FeeModel,
	oracle types.Oracle,
) *Keeper {
	return &Keeper{
		cdc:          cdc,
		storeKey:     storeKey,
		logger:       logger.With("module", "x/settlement"),
		auctionHouse: auctionHouse,
		vault:        vault,
		feeModel:     feeModel,
		oracle:       oracle,
	}
}

func (k *Keeper) Logger() log.Logger {
	return k.logger
}

func (k *Keeper) store(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func lockedFundsKey(orderID [32]byte) []byte {
	return append(append([]byte{}, lockedFundsKeyPrefix...), orderID[:]...)
}

func positionKey(trader string, marketID uint64) []byte {
	key := append([]byte{}, positionKeyPrefix...)
	key = append(key, []byte(trader)...)
	key = append(key, 0x00)
	return append(key, be64(marketID)...)
}

func be64(v uint64) []byte {
	bz := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		bz[i] = byte(v)
		v >>= 8
	}
	return bz
}
