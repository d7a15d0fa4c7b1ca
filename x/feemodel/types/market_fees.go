package types

import "cosmossdk.io/math"

// MarketFees holds the per-market taker/maker fee schedule, in basis
// points, and the fee recipient address. Mirrors the per-market
// TakerFeeRate/MakerFeeRate fields carried on x/perpetual/types.Market
// and x/orderbook/keeper.Market, generalized from a LegacyDec rate to an
// integer bps rate consistent with the rest of DFBA Core's fixed-point
// arithmetic.
type MarketFees struct {
	MarketID      uint64
	TakerFeeBps   uint16
	MakerFeeBps   uint16
	FeeRecipient  string
}

// DefaultMarketFees returns a conservative default schedule (5 bps
// taker, 2 bps maker), matching the order of magnitude of the teacher's
// defaults (0.05% taker / 0.02% maker).
func DefaultMarketFees(marketID uint64, recipient string) MarketFees {
	return MarketFees{
		MarketID:     marketID,
		TakerFeeBps:  5,
		MakerFeeBps:  2,
		FeeRecipient: recipient,
	}
}

// Fee computes the fee amount for a trade of the given notional.
func (m MarketFees) Fee(isMaker bool, notional math.Int) math.Int {
	bps := m.TakerFeeBps
	if isMaker {
		bps = m.MakerFeeBps
	}
	if bps == 0 {
		return math.ZeroInt()
	}
	return notional.MulRaw(int64(bps)).QuoRaw(10_000)
}
