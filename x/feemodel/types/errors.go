package types

import "cosmossdk.io/errors"

var ErrUnknownMarket = errors.Register("feemodel", 1, "no fee schedule set for market")
