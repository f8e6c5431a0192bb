package engine

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/alanyoungcy/pegfee/internal/domain"
)

// SchedulePoint is one row of the fee curve: the fee charged at a given
// deviation for a toward-peg trade and for an away-from-peg trade.
type SchedulePoint struct {
	DeviationBps uint64
	TowardFeePPM uint64
	AwayFeePPM   uint64
}

// pegUnit is 1e18 / 10000: one basis point of a 1.0 peg, used to synthesize
// exact deviations for the schedule.
var pegUnit = uint256.NewInt(100_000_000_000_000)

// Schedule evaluates the fee curve from zero deviation up to maxBps in steps
// of stepBps, by feeding Compute synthetic observations with the pool priced
// above a 1.0 peg. Useful for inspecting a parameter set before it goes live.
func (e *Engine) Schedule(maxBps, stepBps uint64) ([]SchedulePoint, error) {
	if stepBps == 0 {
		return nil, fmt.Errorf("%w: schedule step must be positive", domain.ErrInvalidParameters)
	}

	peg := new(uint256.Int).Mul(pegUnit, bpsScale)
	points := make([]SchedulePoint, 0, maxBps/stepBps+1)
	for dev := uint64(0); dev <= maxBps; dev += stepBps {
		pool := new(uint256.Int).Mul(pegUnit, uint256.NewInt(10_000+dev))

		// Pool sits above the peg, so price-down is the toward direction.
		towardFee, _, err := e.Compute(domain.PriceObservation{
			PoolPrice: pool,
			PegPrice:  peg,
			Direction: domain.DirectionPriceDown,
		})
		if err != nil {
			return nil, err
		}
		awayFee, _, err := e.Compute(domain.PriceObservation{
			PoolPrice: pool,
			PegPrice:  peg,
			Direction: domain.DirectionPriceUp,
		})
		if err != nil {
			return nil, err
		}

		points = append(points, SchedulePoint{
			DeviationBps: dev,
			TowardFeePPM: towardFee,
			AwayFeePPM:   awayFee,
		})
	}
	return points, nil
}
