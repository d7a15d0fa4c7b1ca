package types

import "cosmossdk.io/math"

// BatchAggregates holds the per-tick level totals for one (market, batch).
// The clearing engine and tick bitmap both operate over this structure;
// the Auction House keeper is the only writer.
type BatchAggregates struct {
	Levels map[int32]TickLevel
}

// NewBatchAggregates returns an empty aggregate set.
func NewBatchAggregates() *BatchAggregates {
	return &BatchAggregates{Levels: make(map[int32]TickLevel)}
}

// Level returns the level at tick, or the zero level if none exists.
func (a *BatchAggregates) Level(tick int32) TickLevel {
	if l, ok := a.Levels[tick]; ok {
		return l
	}
	return ZeroTickLevel()
}

// Apply adds delta to the (side, flow) aggregate at tick. The level entry
// is deleted once it becomes empty so empty levels never linger in the
// map - mirroring the tick bitmap's "no zero words persisted" discipline.
// Returns the resulting level's emptiness, letting the caller clear the
// matching bitmap bit in the same transactional step.
func (a *BatchAggregates) Apply(tick int32, side Side, flow Flow, delta math.Int) (empty bool, err error) {
	l := a.Level(tick)
	l, err = l.Apply(side, flow, delta)
	if err != nil {
		return false, err
	}
	if l.IsEmpty() {
		delete(a.Levels, tick)
		return true, nil
	}
	a.Levels[tick] = l
	return false, nil
}
