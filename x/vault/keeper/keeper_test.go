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

	"github.com/dfba-labs/dfba-core/x/vault/keeper"
	"github.com/dfba-labs/dfba-core/x/vault/types"
)

func setupKeeper(tb testing.TB) (*keeper.Keeper, sdk.Context) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey("vault")
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return keeper.NewKeeper(storeKey, log.NewNopLogger(), "admin"), ctx
}

func TestDepositAndBalance(t *testing.T) {
	k, ctx := setupKeeper(t)
	k.Deposit(ctx, "alice", "usdc", math.NewInt(100))
	require.True(t, k.BalanceOf(ctx, "alice", "usdc").Equal(math.NewInt(100)))
}

func TestDebitCreditMovesBalance(t *testing.T) {
	k, ctx := setupKeeper(t)
	k.Deposit(ctx, "alice", "usdc", math.NewInt(100))
	k.AuthorizeSettler(ctx, "settlement-module")
	err := k.DebitCredit(ctx, "settlement-module", "usdc", "alice", "bob", math.NewInt(40))
	require.NoError(t, err)
	require.True(t, k.BalanceOf(ctx, "alice", "usdc").Equal(math.NewInt(60)))
	require.True(t, k.BalanceOf(ctx, "bob", "usdc").Equal(math.NewInt(40)))
}

func TestDebitCreditInsufficientBalance(t *testing.T) {
	k, ctx := setupKeeper(t)
	k.Deposit(ctx, "alice", "usdc", math.NewInt(10))
	k.AuthorizeSettler(ctx, "settlement-module")
	err := k.DebitCredit(ctx, "settlement-module", "usdc", "alice", "bob", math.NewInt(40))
	require.Error(t, err)
	require.True(t, k.BalanceOf(ctx, "alice", "usdc").Equal(math.NewInt(10)))
	require.True(t, k.BalanceOf(ctx, "bob", "usdc").IsZero())
}

// TestDebitCreditRejectsUnauthorizedCaller covers spec §5's firm
// guarantee: only a registered settlement component may move a balance
// that is not its own.
func TestDebitCreditRejectsUnauthorizedCaller(t *testing.T) {
	k, ctx := setupKeeper(t)
	k.Deposit(ctx, "alice", "usdc", math.NewInt(100))
	err := k.DebitCredit(ctx, "alice", "usdc", "alice", "bob", math.NewInt(40))
	require.ErrorIs(t, err, types.ErrUnauthorizedSettler)
	require.True(t, k.BalanceOf(ctx, "alice", "usdc").Equal(math.NewInt(100)))
	require.True(t, k.BalanceOf(ctx, "bob", "usdc").IsZero())
}

// TestDebitCreditAllowsSelfTransfer covers the from==to no-op path, which
// never moves a non-self balance and so needs no authorization.
func TestDebitCreditAllowsSelfTransfer(t *testing.T) {
	k, ctx := setupKeeper(t)
	k.Deposit(ctx, "alice", "usdc", math.NewInt(100))
	err := k.DebitCredit(ctx, "alice", "usdc", "alice", "alice", math.NewInt(40))
	require.NoError(t, err)
	require.True(t, k.BalanceOf(ctx, "alice", "usdc").Equal(math.NewInt(100)))
}

func TestAuthorizeSettler(t *testing.T) {
	k, ctx := setupKeeper(t)
	require.False(t, k.IsAuthorizedSettler(ctx, "settlement-module"))
	k.AuthorizeSettler(ctx, "settlement-module")
	require.True(t, k.IsAuthorizedSettler(ctx, "settlement-module"))
}
