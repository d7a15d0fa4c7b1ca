package types

import "cosmossdk.io/math"

// Order is immutable after submit (spec §3 "Order").
type Order struct {
	OrderID   [32]byte
	Trader    string
	MarketID  uint64
	BatchID   uint64
	Side      Side
	Flow      Flow
	PriceTick int32 // only meaningful for makers; takers carry TakerTickSentinel
	Qty       math.Int
	Nonce     math.Int
	Expiry    int64 // unix seconds; zero means "no expiry"
}

// TakerTickSentinel is the PriceTick value takers carry; takers match at
// any price and this value is never consulted by the clearing engine.
const TakerTickSentinel int32 = 0

// OrderState is the mutable side of an order (spec §3 "Order State").
type OrderState struct {
	OrderID      [32]byte
	RemainingQty math.Int
	ClaimedQty   math.Int
	Cancelled    bool
}

// NewOrderState returns the initial state for a freshly submitted order.
func NewOrderState(orderID [32]byte, qty math.Int) OrderState {
	return OrderState{
		OrderID:      orderID,
		RemainingQty: qty,
		ClaimedQty:   math.ZeroInt(),
		Cancelled:    false,
	}
}

// OriginalQty reconstructs the order's original quantity from its current
// state, used by invariant checks: claimed + remaining <= original.
func (s OrderState) OriginalQty() math.Int {
	return s.RemainingQty.Add(s.ClaimedQty)
}
