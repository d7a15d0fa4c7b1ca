package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/keeper"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

const testAdmin = "admin"

func setupKeeper(tb testing.TB) (*keeper.Keeper, func(time.Time) sdk.Context) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey("auctionhouse")
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	k := keeper.NewKeeper(nil, storeKey, log.NewNopLogger(), testAdmin, "settlement")
	ctxAt := func(ts time.Time) sdk.Context {
		return sdk.NewContext(stateStore, cmtproto.Header{Time: ts}, false, log.NewNopLogger())
	}
	return k, ctxAt
}

func createTestMarket(tb testing.TB, k *keeper.Keeper, ctx sdk.Context, batchDuration int64) uint64 {
	tb.Helper()
	marketID, err := k.CreateMarket(ctx, testAdmin, types.MarketKindSpot, "btc", "usdc", batchDuration)
	require.NoError(tb, err)
	return marketID
}

func TestCreateMarketRequiresAdmin(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	_, err := k.CreateMarket(ctx, "not-admin", types.MarketKindSpot, "btc", "usdc", 10)
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestSubmitOrderRejectsUnknownMarketOrZeroQty(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	t0 := time.Unix(1000, 0)
	ctx := ctxAt(t0)
	marketID := createTestMarket(t, k, ctx, 10)

	_, _, err := k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, 100, math.ZeroInt(), math.NewInt(1), 0)
	require.ErrorIs(t, err, types.ErrInvalidQty)

	_, _, err = k.SubmitOrder(ctx, "alice", marketID+1, types.SideBuy, types.FlowMaker, 100, math.NewInt(1), math.NewInt(1), 0)
	require.ErrorIs(t, err, types.ErrInvalidMarket)
}

func TestSubmitOrderRejectsDuplicateNonce(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	marketID := createTestMarket(t, k, ctx, 10)

	_, _, err := k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, 100, math.NewInt(5), math.NewInt(1), 0)
	require.NoError(t, err)

	_, _, err = k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, 200, math.NewInt(5), math.NewInt(1), 0)
	require.ErrorIs(t, err, types.ErrDuplicateNonce)
}

func TestSubmitOrderRejectsTickOutOfRangeForMakers(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	marketID := createTestMarket(t, k, ctx, 10)

	_, _, err := k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, types.MaxTick+1, math.NewInt(5), math.NewInt(1), 0)
	require.ErrorIs(t, err, types.ErrTickOutOfRange)
}

// TestSubmitCancelRoundTrip covers spec §8's "cancel is a true inverse of
// submit for the aggregate and bitmap": after cancelling the only order
// resting at a tick, the tick level must be empty and the order marked
// cancelled. The bitmap has no exported getter, so its bit is not
// asserted here.
func TestSubmitCancelRoundTrip(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	marketID := createTestMarket(t, k, ctx, 10)

	orderID, batchID, err := k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, 150, math.NewInt(7), math.NewInt(1), 0)
	require.NoError(t, err)
	require.True(t, k.GetTickLevel(ctx, marketID, batchID, 150).MakerBuy.Equal(math.NewInt(7)))

	require.NoError(t, k.CancelOrder(ctx, "alice", orderID))

	level := k.GetTickLevel(ctx, marketID, batchID, 150)
	require.True(t, level.IsEmpty())

	state, ok := k.GetOrderState(ctx, orderID)
	require.True(t, ok)
	require.True(t, state.Cancelled)
	require.True(t, state.RemainingQty.IsZero())
}

func TestCancelOrderRejectsNonOwner(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	marketID := createTestMarket(t, k, ctx, 10)

	orderID, _, err := k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, 150, math.NewInt(7), math.NewInt(1), 0)
	require.NoError(t, err)

	err = k.CancelOrder(ctx, "bob", orderID)
	require.ErrorIs(t, err, types.ErrNotOwner)
}

// TestUpdateOrderStateEnforcesMonotonicity covers spec §8's order-state
// monotonicity invariant: claimed_qty never decreases, remaining_qty
// never increases, and neither may exceed the order's original quantity.
func TestUpdateOrderStateEnforcesMonotonicity(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	marketID := createTestMarket(t, k, ctx, 10)

	orderID, _, err := k.SubmitOrder(ctx, "alice", marketID, types.SideBuy, types.FlowMaker, 150, math.NewInt(10), math.NewInt(1), 0)
	require.NoError(t, err)

	require.NoError(t, k.UpdateOrderState(ctx, "settlement", orderID, math.NewInt(4), math.NewInt(6)))

	err = k.UpdateOrderState(ctx, "settlement", orderID, math.NewInt(2), math.NewInt(6))
	require.ErrorIs(t, err, types.ErrMonotonicityViolation)

	err = k.UpdateOrderState(ctx, "settlement", orderID, math.NewInt(4), math.NewInt(8))
	require.ErrorIs(t, err, types.ErrMonotonicityViolation)

	err = k.UpdateOrderState(ctx, "unknown-caller", orderID, math.NewInt(5), math.NewInt(5))
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

// TestBatchRolloverFinalizesCrossingOrders drives a maker-sell/taker-buy
// crossing batch through submit_order's auto roll-over, covering spec
// §4.2's buy auction (taker-buy demand against maker-sell supply) and
// §8's fill-conservation invariant: cleared_qty never exceeds the
// resting maker aggregate it was matched against.
func TestBatchRolloverFinalizesCrossingOrders(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	t0 := time.Unix(2_000_000_000, 0)
	ctx := ctxAt(t0)
	marketID := createTestMarket(t, k, ctx, 10)

	_, batchID, err := k.SubmitOrder(ctx, "alice", marketID, types.SideSell, types.FlowMaker, 100, math.NewInt(10), math.NewInt(1), 0)
	require.NoError(t, err)
	_, _, err = k.SubmitOrder(ctx, "bob", marketID, types.SideBuy, types.FlowTaker, 100, math.NewInt(10), math.NewInt(1), 0)
	require.NoError(t, err)

	rolloverCtx := ctxAt(t0.Add(11 * time.Second))
	_, _, err = k.SubmitOrder(rolloverCtx, "carol", marketID, types.SideBuy, types.FlowTaker, 0, math.NewInt(1), math.NewInt(1), 0)
	require.NoError(t, err)

	bs, ok := k.GetBatchState(rolloverCtx, marketID, batchID)
	require.True(t, ok)
	require.Equal(t, types.BatchPhaseFinalized, bs.Phase)

	buy, ok := k.GetClearing(rolloverCtx, marketID, batchID, types.SideBuy)
	require.True(t, ok)
	require.True(t, buy.Finalized)
	require.Equal(t, int32(100), buy.ClearingTick)
	require.True(t, buy.ClearedQty.Equal(math.NewInt(10)))
	require.Equal(t, types.BPS, buy.MarginalFillMakerBps)
	require.Equal(t, types.BPS, buy.MarginalFillTakerBps)

	sell, ok := k.GetClearing(rolloverCtx, marketID, batchID, types.SideSell)
	require.True(t, ok)
	require.True(t, sell.Finalized)
	require.True(t, sell.ClearedQty.IsZero())
}

// TestStepFinalizeRejectsOpenBatch covers spec §4.1's precondition that
// step_finalize only applies to a batch that has already ended.
func TestStepFinalizeRejectsOpenBatch(t *testing.T) {
	k, ctxAt := setupKeeper(t)
	ctx := ctxAt(time.Unix(1000, 0))
	marketID := createTestMarket(t, k, ctx, 10)

	_, _, err := k.StepFinalize(ctx, marketID, 1, 16)
	require.ErrorIs(t, err, types.ErrBatchNotEnded)
}
