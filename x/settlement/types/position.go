package types

import "cosmossdk.io/math"

// Position is the perp-variant analogue of a spot claim's token transfer
// (spec §4.4 "Perp variant"): instead of crediting token balances, claim
// adjusts a trader's signed size and entry price. Funding, liquidation,
// and ADL are out of scope (spec §1 Non-goals); this is only enough
// bookkeeping to demonstrate filled_qty/in_the_money are shared with the
// spot path, per spec §4.4's closing sentence.
type Position struct {
	Trader     string
	MarketID   uint64
	Size       math.Int // positive = long, negative = short
	EntryPrice math.Int // 18-decimal fixed point, volume-weighted
	Margin     math.Int
}

// NewPosition returns a flat (zero-size) position.
func NewPosition(trader string, marketID uint64) Position {
	return Position{Trader: trader, MarketID: marketID, Size: math.ZeroInt(), EntryPrice: math.ZeroInt(), Margin: math.ZeroInt()}
}

// ApplyFill folds a fill of signed size delta at fillPrice into the
// position, volume-weighting the entry price when the fill extends the
// existing side and realizing no PnL tracking beyond that (funding/
// liquidation/ADL are out of scope per spec §1).
func (p Position) ApplyFill(sizeDelta, fillPrice, marginDelta math.Int) Position {
	newSize := p.Size.Add(sizeDelta)
	if p.Size.IsZero() || sameSign(p.Size, sizeDelta) {
		p.EntryPrice = volumeWeightedPrice(p.Size, p.EntryPrice, sizeDelta, fillPrice)
	} else if newSize.IsZero() {
		p.EntryPrice = math.ZeroInt()
	}
	p.Size = newSize
	p.Margin = p.Margin.Add(marginDelta)
	return p
}

func sameSign(a, b math.Int) bool {
	if a.IsZero() || b.IsZero() {
		return true
	}
	return a.IsPositive() == b.IsPositive()
}

func volumeWeightedPrice(existingSize, existingPrice, deltaSize, deltaPrice math.Int) math.Int {
	existingAbs := existingSize.Abs()
	deltaAbs := deltaSize.Abs()
	totalAbs := existingAbs.Add(deltaAbs)
	if !totalAbs.IsPositive() {
		return deltaPrice
	}
	weighted := existingPrice.Mul(existingAbs).Add(deltaPrice.Mul(deltaAbs))
	return weighted.Quo(totalAbs)
}
