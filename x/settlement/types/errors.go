package types

import "cosmossdk.io/errors"

// Module error codes, per-module registry idiom from
// x/clearinghouse/types/errors.go.
var (
	ErrOrderNotFound     = errors.Register("settlement", 1, "order not found")
	ErrAlreadyClaimed    = errors.Register("settlement", 2, "order already claimed")
	ErrCancelled         = errors.Register("settlement", 3, "order was cancelled")
	ErrNotFinalized      = errors.Register("settlement", 4, "clearing result not finalized")
	ErrLockNotFound      = errors.Register("settlement", 5, "locked funds not found for order")
	ErrInsufficientFunds = errors.Register("settlement", 6, "insufficient balance")
	ErrUnknownMarketKind = errors.Register("settlement", 7, "unknown market kind")
)
