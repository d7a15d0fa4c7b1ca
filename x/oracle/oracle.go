// Package oracle provides a minimal in-memory price feed satisfying
// settlement/types.Oracle, used only by the perp settlement variant
// (spec §6, perp only). Grounded on x/perpetual/keeper/oracle.go's
// OracleConfig.MaxPriceAge staleness check and per-market last-price
// tracking, trimmed from that file's multi-source weighted aggregation
// and EMA smoothing down to the single admin-fed price DFBA Core needs:
// clearing itself never touches mark price, only the perp submit path
// consults it, to size the initial margin it locks.
package oracle

import (
	"sync"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type priceEntry struct {
	price     math.Int
	updatedAt time.Time
}

// InMemory is a concrete Oracle backed by a process-local map, intended
// for tests and for environments where an external price feed is pushed
// in via SetPrice rather than pulled from a chain-native module.
type InMemory struct {
	mu      sync.RWMutex
	prices  map[uint64]priceEntry
	maxAge  time.Duration
	nowFunc func() time.Time
}

// NewInMemory creates an oracle that treats prices older than maxAge as
// stale. maxAge <= 0 disables the staleness check.
func NewInMemory(maxAge time.Duration) *InMemory {
	return &InMemory{
		prices:  make(map[uint64]priceEntry),
		maxAge:  maxAge,
		nowFunc: time.Now,
	}
}

// SetPrice records the latest 18-decimal fixed-point price for marketID.
func (o *InMemory) SetPrice(marketID uint64, price math.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[marketID] = priceEntry{price: price, updatedAt: o.nowFunc()}
}

// GetPrice satisfies settlement/types.Oracle. It returns false if no
// price was ever set, or if the last update is older than maxAge.
func (o *InMemory) GetPrice(_ sdk.Context, marketID uint64) (math.Int, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	entry, ok := o.prices[marketID]
	if !ok {
		return math.ZeroInt(), false
	}
	if o.maxAge > 0 && o.nowFunc().Sub(entry.updatedAt) > o.maxAge {
		return math.ZeroInt(), false
	}
	return entry.price, true
}
