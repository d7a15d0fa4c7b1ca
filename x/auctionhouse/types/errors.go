package types

import "cosmossdk.io/errors"

// Module error codes, registered the way the teacher registers
// per-module stable error identifiers (x/orderbook/types/errors.go).
var (
	ErrUnauthorized   = errors.Register("auctionhouse", 1, "unauthorized")
	ErrMarketInactive = errors.Register("auctionhouse", 2, "market inactive")
	ErrInvalidMarket  = errors.Register("auctionhouse", 3, "invalid market")
	ErrInvalidToken   = errors.Register("auctionhouse", 4, "invalid token identity")
	ErrDuplicateMarket = errors.Register("auctionhouse", 5, "duplicate market")

	ErrInvalidQty       = errors.Register("auctionhouse", 10, "quantity must be positive")
	ErrTickOutOfRange   = errors.Register("auctionhouse", 11, "price tick out of range")
	ErrInvalidSide      = errors.Register("auctionhouse", 12, "invalid order side")
	ErrDuplicateNonce   = errors.Register("auctionhouse", 13, "nonce already used by trader in this batch")
	ErrBatchExpired     = errors.Register("auctionhouse", 14, "batch has already ended")
	ErrDuplicateOrder   = errors.Register("auctionhouse", 15, "duplicate order")
	ErrOrderExpired     = errors.Register("auctionhouse", 16, "order expiry precedes batch end")

	ErrOrderNotFound    = errors.Register("auctionhouse", 20, "order not found")
	ErrAlreadyCancelled = errors.Register("auctionhouse", 21, "order already cancelled")
	ErrAlreadyClaimed   = errors.Register("auctionhouse", 22, "order already claimed")
	ErrNotOwner         = errors.Register("auctionhouse", 23, "caller does not own this order")

	ErrBatchNotEnded    = errors.Register("auctionhouse", 30, "batch has not ended yet")
	ErrAlreadyFinalized = errors.Register("auctionhouse", 31, "batch already finalized")
	ErrNotFinalized     = errors.Register("auctionhouse", 32, "batch not finalized")

	ErrMonotonicityViolation = errors.Register("auctionhouse", 40, "order state update violates monotonicity")

	ErrNotFound = errors.Register("auctionhouse", 50, "not found")

	// ErrAggregateUnderflow is fatal: it signals a bug in the caller's
	// bookkeeping, never a user error (spec §7).
	ErrAggregateUnderflow = errors.Register("auctionhouse", 90, "tick level aggregate underflow")
)
