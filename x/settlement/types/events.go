package types

import (
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"cosmossdk.io/math"
)

// Event names emitted by settlement (spec §6).
const (
	EventTypeOrderClaimed   = "order_claimed"
	EventTypeFundsLocked    = "funds_locked"
	EventTypeFundsRefunded  = "funds_refunded"

	AttributeOrderID  = "order_id"
	AttributeTrader   = "trader"
	AttributeFillQty  = "fill_qty"
	AttributeFillPrice = "fill_price"
	AttributeFee      = "fee"
	AttributeBase     = "base"
	AttributeQuote    = "quote"
)

func hexID(id [32]byte) string { return hex.EncodeToString(id[:]) }

// NewOrderClaimedEvent builds the OrderClaimed event (spec §6).
func NewOrderClaimedEvent(orderID [32]byte, trader string, fillQty, fillPrice, fee math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeOrderClaimed,
		sdk.NewAttribute(AttributeOrderID, hexID(orderID)),
		sdk.NewAttribute(AttributeTrader, trader),
		sdk.NewAttribute(AttributeFillQty, fillQty.String()),
		sdk.NewAttribute(AttributeFillPrice, fillPrice.String()),
		sdk.NewAttribute(AttributeFee, fee.String()),
	)
}

// NewFundsLockedEvent builds the FundsLocked event (spec §6).
func NewFundsLockedEvent(orderID [32]byte, trader string, base, quote math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeFundsLocked,
		sdk.NewAttribute(AttributeOrderID, hexID(orderID)),
		sdk.NewAttribute(AttributeTrader, trader),
		sdk.NewAttribute(AttributeBase, base.String()),
		sdk.NewAttribute(AttributeQuote, quote.String()),
	)
}

// NewFundsRefundedEvent builds the FundsRefunded event (spec §6).
func NewFundsRefundedEvent(orderID [32]byte, trader string, base, quote math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeFundsRefunded,
		sdk.NewAttribute(AttributeOrderID, hexID(orderID)),
		sdk.NewAttribute(AttributeTrader, trader),
		sdk.NewAttribute(AttributeBase, base.String()),
		sdk.NewAttribute(AttributeQuote, quote.String()),
	)
}
