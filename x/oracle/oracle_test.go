package oracle_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/dfba-labs/dfba-core/x/oracle"
)

func TestGetPriceUnsetMarket(t *testing.T) {
	o := oracle.NewInMemory(time.Minute)
	_, ok := o.GetPrice(sdk.Context{}, 1)
	require.False(t, ok)
}

func TestSetAndGetPrice(t *testing.T) {
	o := oracle.NewInMemory(time.Minute)
	o.SetPrice(1, math.NewInt(50_000))
	price, ok := o.GetPrice(sdk.Context{}, 1)
	require.True(t, ok)
	require.True(t, price.Equal(math.NewInt(50_000)))
}

func TestNoStalenessCheckWhenMaxAgeZero(t *testing.T) {
	o := oracle.NewInMemory(0)
	o.SetPrice(1, math.NewInt(50_000))
	_, ok := o.GetPrice(sdk.Context{}, 1)
	require.True(t, ok)
}
