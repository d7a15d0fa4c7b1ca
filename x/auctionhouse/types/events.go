package types

import (
	"encoding/hex"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Event type and attribute names emitted by the Auction House, consumed
// by the indexer read surface (spec §6).
const (
	EventTypeOrderSubmitted = "order_submitted"
	EventTypeOrderCancelled = "order_cancelled"
	EventTypeBatchFinalized = "batch_finalized"

	AttributeOrderID  = "order_id"
	AttributeTrader   = "trader"
	AttributeMarketID = "market_id"
	AttributeBatchID  = "batch_id"
	AttributeSide     = "side"
)

func orderIDHex(id [32]byte) string {
	return hex.EncodeToString(id[:])
}

// NewOrderSubmittedEvent builds the OrderSubmitted event (spec §6).
func NewOrderSubmittedEvent(orderID [32]byte, trader string, marketID, batchID uint64) sdk.Event {
	return sdk.NewEvent(
		EventTypeOrderSubmitted,
		sdk.NewAttribute(AttributeOrderID, orderIDHex(orderID)),
		sdk.NewAttribute(AttributeTrader, trader),
		sdk.NewAttribute(AttributeMarketID, uintToStr(marketID)),
		sdk.NewAttribute(AttributeBatchID, uintToStr(batchID)),
	)
}

// NewOrderCancelledEvent builds the OrderCancelled event (spec §6).
func NewOrderCancelledEvent(orderID [32]byte, trader string) sdk.Event {
	return sdk.NewEvent(
		EventTypeOrderCancelled,
		sdk.NewAttribute(AttributeOrderID, orderIDHex(orderID)),
		sdk.NewAttribute(AttributeTrader, trader),
	)
}

// NewBatchFinalizedEvent builds the BatchFinalized event (spec §6).
func NewBatchFinalizedEvent(marketID, batchID uint64, side Side) sdk.Event {
	return sdk.NewEvent(
		EventTypeBatchFinalized,
		sdk.NewAttribute(AttributeMarketID, uintToStr(marketID)),
		sdk.NewAttribute(AttributeBatchID, uintToStr(batchID)),
		sdk.NewAttribute(AttributeSide, side.String()),
	)
}

func uintToStr(v uint64) string {
	return strconv.FormatUint(v, 10)
}
