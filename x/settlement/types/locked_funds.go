package types

import "cosmossdk.io/math"

// LockedFunds tracks escrowed balances per order_id (spec §3 "Locked
// Funds"). Deleted upon claim or cancel refund.
type LockedFunds struct {
	OrderID     [32]byte
	BaseAmount  math.Int
	QuoteAmount math.Int
}

// NewLockedFunds constructs a lock with the given base/quote amounts.
func NewLockedFunds(orderID [32]byte, base, quote math.Int) LockedFunds {
	return LockedFunds{OrderID: orderID, BaseAmount: base, QuoteAmount: quote}
}
