package types

import "cosmossdk.io/math"

// Market holds the per-market configuration and current batch pointer
// (spec §3 "Market"). Spot markets settle in base/quote tokens; perp
// markets settle against collateral and an oracle-quoted mark price.
type Market struct {
	MarketID uint64
	Kind     MarketKind

	// Spot fields.
	BaseToken  string
	QuoteToken string

	// Perp fields.
	Collateral string
	OracleID   string

	Active         bool
	BatchID        uint64
	BatchStartUnix int64
	BatchDuration  int64 // seconds, configurable per deployment
}

// BatchEndUnix returns the unix timestamp at which the current batch ends.
func (m *Market) BatchEndUnix() int64 {
	return m.BatchStartUnix + m.BatchDuration
}

// TickToPrice is the pluggable tick->price conversion (spec §9). The
// reference mapping is the identity: price = tick, scaled to WAD so the
// rest of the engine can treat price as an 18-decimal fixed-point value
// without special-casing. A future deployment can substitute a
// `1.0001^tick` curve without touching clearing semantics.
func TickToPrice(tick int32) math.Int {
	return math.NewInt(int64(tick)).Mul(Wad)
}
