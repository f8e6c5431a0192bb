package domain

import "fmt"

// FeeParams is the immutable fee configuration. Fee fields are expressed in
// parts per million of trade notional (1_000_000 ppm = 100%); deviation
// thresholds are basis points of the peg. The set is validated once at
// configuration time, not per call.
type FeeParams struct {
	BaseFeePPM     uint64 // fee charged while deviation sits inside the dead-zone
	MinFeePPM      uint64 // inclusive lower clamp bound
	MaxFeePPM      uint64 // inclusive upper clamp bound
	DeadzoneBps    uint64 // deviation below which no adjustment applies
	SlopeTowardPPM uint64 // fee reduction per whole pct point beyond the dead-zone
	SlopeAwayPPM   uint64 // fee increase per whole pct point beyond the dead-zone
	ArbTriggerBps  uint64 // deviation at which the fee snaps to its extreme bound
}

// Validate checks the ordering invariants of the parameter set. Zero-valued
// slopes and dead-zone are legal; unsigned types rule out negatives.
func (p FeeParams) Validate() error {
	if p.MinFeePPM > p.BaseFeePPM || p.BaseFeePPM > p.MaxFeePPM {
		return fmt.Errorf("%w: fee bounds must satisfy min <= base <= max (min=%d base=%d max=%d)",
			ErrInvalidParameters, p.MinFeePPM, p.BaseFeePPM, p.MaxFeePPM)
	}
	if p.ArbTriggerBps <= p.DeadzoneBps {
		return fmt.Errorf("%w: arb trigger (%d bps) must exceed the dead-zone (%d bps)",
			ErrInvalidParameters, p.ArbTriggerBps, p.DeadzoneBps)
	}
	return nil
}

// FeeZone classifies which branch of the fee schedule produced a result.
type FeeZone string

const (
	ZoneDead      FeeZone = "dead_zone"
	ZoneGraduated FeeZone = "graduated"
	ZoneArbitrage FeeZone = "arbitrage"
)

// FeeDiagnostics is the per-call trace returned alongside the fee. It is
// ephemeral: created and consumed per call, never persisted. Diagnostics
// exist for observability and testing, not for control flow.
type FeeDiagnostics struct {
	BaseFee      uint64  // base fee from the parameter set
	Unclamped    uint64  // computed value before clamping, saturated rather than wrapped
	ClampedFee   uint64  // final fee, always equal to the returned value
	DeviationBps uint64  // |pool - peg| in basis points of the peg
	PctUnits     uint64  // whole pct points beyond the dead-zone; zero outside the graduated zone
	Toward       bool    // whether the trade moves the pool price toward the peg
	ArbZone      bool    // whether the arbitrage zone bypassed the linear ramp
	Zone         FeeZone // resolved schedule branch
}
