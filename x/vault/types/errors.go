package types

import "cosmossdk.io/errors"

var (
	ErrInsufficientBalance = errors.Register("vault", 1, "insufficient balance")
	ErrUnauthorizedSettler = errors.Register("vault", 2, "caller is not an authorized settler")
)
