package app

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	ahtypes "github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// TestEngineSubmitFinalizeClaim drives one full batch lifecycle through
// the real Engine (no fakes): create a spot market, lock escrow for a
// maker-sell resting at a tick and a taker-buy that crosses it, roll the
// batch over by submitting past its end, then claim both fills and check
// the resulting vault balances (spec §4 end to end).
func TestEngineSubmitFinalizeClaim(t *testing.T) {
	e := NewEngine(log.NewNopLogger())

	t0 := time.Unix(1_700_000_000, 0)
	setupCtx := e.NewContext(t0)

	marketID, err := e.AuctionHouse.CreateMarket(setupCtx, adminAddress, ahtypes.MarketKindSpot, "btc", "usdc", 10)
	require.NoError(t, err)

	e.Vault.Deposit(setupCtx, "alice", "btc", math.NewInt(10))
	e.Vault.Deposit(setupCtx, "bob", "usdc", math.NewInt(1_000))

	sellCtx := e.NewContext(t0)
	aliceOrderID, batchID, err := e.Settlement.Submit(
		sellCtx, "alice", marketID, ahtypes.SideSell, ahtypes.FlowMaker,
		100, math.NewInt(10), math.NewInt(1), 0,
	)
	require.NoError(t, err)
	require.True(t, e.Vault.BalanceOf(sellCtx, "alice", "btc").IsZero())

	// bob's taker order carries the real tick so submit-time escrow locks
	// the full notional, sidestepping the zero-price taker edge case
	// (spec §4.4, DESIGN.md "Known literal-spec edge case").
	buyCtx := e.NewContext(t0)
	bobOrderID, _, err := e.Settlement.Submit(
		buyCtx, "bob", marketID, ahtypes.SideBuy, ahtypes.FlowTaker,
		100, math.NewInt(10), math.NewInt(1), 0,
	)
	require.NoError(t, err)
	require.True(t, e.Vault.BalanceOf(buyCtx, "bob", "usdc").IsZero())

	t1 := t0.Add(11 * time.Second)
	rolloverCtx := e.NewContext(t1)
	_, _, err = e.AuctionHouse.SubmitOrder(
		rolloverCtx, "carol", marketID, ahtypes.SideBuy, ahtypes.FlowTaker,
		0, math.NewInt(1), math.NewInt(1), 0,
	)
	require.NoError(t, err)

	bs, ok := e.AuctionHouse.GetBatchState(rolloverCtx, marketID, batchID)
	require.True(t, ok)
	require.Equal(t, ahtypes.BatchPhaseFinalized, bs.Phase)

	buyClearing, ok := e.AuctionHouse.GetClearing(rolloverCtx, marketID, batchID, ahtypes.SideBuy)
	require.True(t, ok)
	require.True(t, buyClearing.Finalized)
	require.Equal(t, int32(100), buyClearing.ClearingTick)
	require.True(t, buyClearing.ClearedQty.Equal(math.NewInt(10)))

	claimCtx := e.NewContext(t1)
	require.NoError(t, e.Settlement.Claim(claimCtx, "alice", aliceOrderID))
	require.NoError(t, e.Settlement.Claim(claimCtx, "bob", bobOrderID))

	require.True(t, e.Vault.BalanceOf(claimCtx, "alice", "btc").IsZero())
	require.True(t, e.Vault.BalanceOf(claimCtx, "alice", "usdc").Equal(math.NewInt(1_000)))
	require.True(t, e.Vault.BalanceOf(claimCtx, "bob", "usdc").IsZero())
	require.True(t, e.Vault.BalanceOf(claimCtx, "bob", "btc").Equal(math.NewInt(10)))
}
