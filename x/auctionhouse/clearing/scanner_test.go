package clearing_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/clearing"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/tickbitmap"
	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

func TestCursorStepNMatchesFullScan(t *testing.T) {
	agg := types.NewBatchAggregates()
	bm := tickbitmap.New()

	_, err := agg.Apply(900, types.SideSell, types.FlowMaker, math.NewInt(100))
	require.NoError(t, err)
	bm.Set(900)
	_, err = agg.Apply(0, types.SideBuy, types.FlowTaker, math.NewInt(100))
	require.NoError(t, err)

	full := clearing.ComputeBuyClearing(agg, bm)

	cursor := clearing.NewCursor(agg, types.SideBuy)
	steps := 0
	for !cursor.Done {
		cursor.StepN(agg, bm, 1)
		steps++
		if steps > 1000 {
			t.Fatal("cursor did not converge")
		}
	}
	require.Equal(t, full, cursor.Result)
}

func TestCursorResumesAcrossCalls(t *testing.T) {
	agg := types.NewBatchAggregates()
	bm := tickbitmap.New()

	for _, tick := range []int32{100, 200, 300} {
		_, err := agg.Apply(tick, types.SideSell, types.FlowMaker, math.NewInt(50))
		require.NoError(t, err)
		bm.Set(tick)
	}
	_, err := agg.Apply(0, types.SideBuy, types.FlowTaker, math.NewInt(120))
	require.NoError(t, err)

	cursor := clearing.NewCursor(agg, types.SideBuy)
	require.False(t, cursor.StepN(agg, bm, 1))
	require.False(t, cursor.Done)
	require.False(t, cursor.StepN(agg, bm, 1))
	require.True(t, cursor.StepN(agg, bm, 1))
	require.True(t, cursor.Done)
	require.Equal(t, int32(300), cursor.Result.ClearingTick)
	require.True(t, cursor.Result.ClearedQty.Equal(math.NewInt(120)))
}
