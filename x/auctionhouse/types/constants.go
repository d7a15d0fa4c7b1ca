package types

import "cosmossdk.io/math"

// Fixed-point scales used throughout the core, per spec §6.
const (
	// BPS is the basis-point scale; marginal fill fractions are expressed
	// in 1/BPS units.
	BPS uint16 = 10_000

	// MinTick and MaxTick bound price_tick: a signed 24-bit range.
	MinTick int32 = -(1<<23 - 1)
	MaxTick int32 = 1<<23 - 1
)

// Wad is the 18-decimal fixed-point scale used for tick->price conversion
// and notional calculations.
var Wad = math.NewIntFromUint64(1_000_000_000_000_000_000)

// MarketKind distinguishes spot from perpetual markets.
type MarketKind int32

const (
	MarketKindUnspecified MarketKind = iota
	MarketKindSpot
	MarketKindPerp
)

func (k MarketKind) String() string {
	switch k {
	case MarketKindSpot:
		return "spot"
	case MarketKindPerp:
		return "perp"
	default:
		return "unspecified"
	}
}

// Side is the direction of an order.
type Side int32

const (
	SideUnspecified Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unspecified"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Flow distinguishes price-limited makers from any-price takers.
type Flow int32

const (
	FlowUnspecified Flow = iota
	FlowMaker
	FlowTaker
)

func (f Flow) String() string {
	switch f {
	case FlowMaker:
		return "maker"
	case FlowTaker:
		return "taker"
	default:
		return "unspecified"
	}
}

// BatchPhase is the finalization state machine's current state (spec §4.1).
type BatchPhase int32

const (
	BatchPhaseOpen BatchPhase = iota
	BatchPhaseEnded
	BatchPhaseClearingBuy
	BatchPhaseClearingSell
	BatchPhaseFinalized
)

func (p BatchPhase) String() string {
	switch p {
	case BatchPhaseOpen:
		return "OPEN"
	case BatchPhaseEnded:
		return "ENDED"
	case BatchPhaseClearingBuy:
		return "CLEARING_BUY"
	case BatchPhaseClearingSell:
		return "CLEARING_SELL"
	case BatchPhaseFinalized:
		return "FINALIZED"
	default:
		return "UNKNOWN"
	}
}
