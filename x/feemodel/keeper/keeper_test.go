package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/dfba-labs/dfba-core/x/feemodel/keeper"
	"github.com/dfba-labs/dfba-core/x/feemodel/types"
)

func setupKeeper(tb testing.TB) (*keeper.Keeper, sdk.Context) {
	tb.Helper()
	storeKey := storetypes.NewKVStoreKey("feemodel")
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}
	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return keeper.NewKeeper(storeKey, log.NewNopLogger()), ctx
}

func TestFeeForUnknownMarketIsZero(t *testing.T) {
	k, ctx := setupKeeper(t)
	fee, recipient := k.FeeFor(ctx, 1, true, math.NewInt(1_000_000))
	require.True(t, fee.IsZero())
	require.Equal(t, "", recipient)
}

func TestFeeForAppliesMakerTakerSplit(t *testing.T) {
	k, ctx := setupKeeper(t)
	k.SetMarketFees(ctx, types.MarketFees{MarketID: 1, TakerFeeBps: 5, MakerFeeBps: 2, FeeRecipient: "treasury"})

	takerFee, recipient := k.FeeFor(ctx, 1, false, math.NewInt(1_000_000))
	require.True(t, takerFee.Equal(math.NewInt(500)))
	require.Equal(t, "treasury", recipient)

	makerFee, _ := k.FeeFor(ctx, 1, true, math.NewInt(1_000_000))
	require.True(t, makerFee.Equal(math.NewInt(200)))
}
