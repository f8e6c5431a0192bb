// Package engine implements the peg-tracking dynamic fee derivation: a pure,
// stateless computation that prices a pending swap against how far the pool
// sits from its reference price and which way the swap would move it.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"math/bits"

	"github.com/holiman/uint256"

	"github.com/alanyoungcy/pegfee/internal/domain"
)

// bpsScale converts a relative price gap into basis points of the peg.
var bpsScale = uint256.NewInt(10_000)

// Engine computes swap fees from a validated, immutable parameter set. It
// holds no mutable state and performs no I/O; Compute is safe for unlimited
// concurrent callers.
type Engine struct {
	params domain.FeeParams
	logger *slog.Logger
}

// New validates params once and returns an Engine bound to them. Callers that
// reconfigure parameters build a new Engine; an existing one never changes.
func New(params domain.FeeParams, logger *slog.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		params: params,
		logger: logger.With(slog.String("component", "fee_engine")),
	}, nil
}

// Params returns a copy of the parameter set the engine was built with.
func (e *Engine) Params() domain.FeeParams { return e.params }

// Compute derives the fee for one pending trade. Trades that move the pool
// price toward the peg are discounted below the base fee, trades that move it
// away are surcharged, and past the arbitrage trigger the fee snaps straight
// to its extreme bound. The returned fee always lies in [MinFeePPM,
// MaxFeePPM]; the diagnostics carry every intermediate value.
func (e *Engine) Compute(obs domain.PriceObservation) (uint64, domain.FeeDiagnostics, error) {
	if obs.PoolPrice == nil || obs.PoolPrice.IsZero() {
		return 0, domain.FeeDiagnostics{}, fmt.Errorf("%w: pool price must be strictly positive", domain.ErrInvalidPrice)
	}
	if obs.PegPrice == nil || obs.PegPrice.IsZero() {
		return 0, domain.FeeDiagnostics{}, fmt.Errorf("%w: peg price must be strictly positive", domain.ErrInvalidPrice)
	}
	if !obs.Direction.Valid() {
		return 0, domain.FeeDiagnostics{}, fmt.Errorf("%w: unrecognized trade direction %q", domain.ErrInvalidParameters, string(obs.Direction))
	}

	p := e.params
	devBps := deviationBps(obs.PoolPrice, obs.PegPrice)
	toward := isToward(obs.PoolPrice, obs.PegPrice, obs.Direction)

	diag := domain.FeeDiagnostics{
		BaseFee:      p.BaseFeePPM,
		DeviationBps: devBps,
		Toward:       toward,
	}

	var unclamped uint64
	switch {
	case devBps >= p.ArbTriggerBps:
		// External arbitrage is expected to dominate here; skip the ramp.
		diag.ArbZone = true
		diag.Zone = domain.ZoneArbitrage
		if toward {
			unclamped = p.MinFeePPM
		} else {
			unclamped = p.MaxFeePPM
		}
	case devBps > p.DeadzoneBps:
		diag.Zone = domain.ZoneGraduated
		pctUnits := (devBps - p.DeadzoneBps) / 100
		diag.PctUnits = pctUnits
		if toward {
			magnitude := saturatingMul(pctUnits, p.SlopeTowardPPM)
			if magnitude > p.BaseFeePPM {
				unclamped = 0
			} else {
				unclamped = p.BaseFeePPM - magnitude
			}
		} else {
			unclamped = saturatingAdd(p.BaseFeePPM, saturatingMul(pctUnits, p.SlopeAwayPPM))
		}
	default:
		diag.Zone = domain.ZoneDead
		unclamped = p.BaseFeePPM
	}

	diag.Unclamped = unclamped
	fee := clamp(unclamped, p.MinFeePPM, p.MaxFeePPM)
	diag.ClampedFee = fee

	e.logger.Debug("fee computed",
		slog.Uint64("fee_ppm", fee),
		slog.Uint64("unclamped_ppm", unclamped),
		slog.Uint64("deviation_bps", devBps),
		slog.Uint64("pct_units", diag.PctUnits),
		slog.String("direction", string(obs.Direction)),
		slog.Bool("toward", toward),
		slog.String("zone", string(diag.Zone)),
	)
	return fee, diag, nil
}

// deviationBps returns |pool - peg| * 10000 / peg with truncating division.
// The multiply happens before the divide in 256-bit width; a quotient that
// cannot fit 64 bits saturates to MaxUint64, which lands in the arbitrage
// zone for any sane trigger.
func deviationBps(pool, peg *uint256.Int) uint64 {
	diff := new(uint256.Int)
	if pool.Lt(peg) {
		diff.Sub(peg, pool)
	} else {
		diff.Sub(pool, peg)
	}
	scaled, overflow := new(uint256.Int).MulOverflow(diff, bpsScale)
	if overflow {
		return math.MaxUint64
	}
	scaled.Div(scaled, peg)
	if !scaled.IsUint64() {
		return math.MaxUint64
	}
	return scaled.Uint64()
}

// isToward resolves directionality by ordering alone: a downward trade is
// toward the peg iff the pool sits above it, an upward trade iff the pool
// sits below it. At the peg either direction counts as toward.
func isToward(pool, peg *uint256.Int, dir domain.TradeDirection) bool {
	switch pool.Cmp(peg) {
	case 0:
		return true
	case 1:
		return dir == domain.DirectionPriceDown
	default:
		return dir == domain.DirectionPriceUp
	}
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func clamp(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
