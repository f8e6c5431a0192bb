package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/pegfee/internal/domain"
)

func TestScheduleCurve(t *testing.T) {
	eng, err := New(testParams(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	points, err := eng.Schedule(6000, 100)
	require.NoError(t, err)
	require.Len(t, points, 61)

	// At the peg both directions charge the base fee.
	require.Equal(t, uint64(0), points[0].DeviationBps)
	require.Equal(t, uint64(3000), points[0].TowardFeePPM)
	require.Equal(t, uint64(3000), points[0].AwayFeePPM)

	// 500 bps out: the graduated scenario values.
	require.Equal(t, uint64(500), points[5].DeviationBps)
	require.Equal(t, uint64(2400), points[5].TowardFeePPM)
	require.Equal(t, uint64(7800), points[5].AwayFeePPM)

	// Past the arbitrage trigger the curve sits at the bounds.
	last := points[len(points)-1]
	require.Equal(t, uint64(6000), last.DeviationBps)
	require.Equal(t, uint64(500), last.TowardFeePPM)
	require.Equal(t, uint64(10000), last.AwayFeePPM)

	// The away curve never dips below the toward curve anywhere.
	for _, p := range points {
		require.LessOrEqual(t, p.TowardFeePPM, p.AwayFeePPM, "deviation %d", p.DeviationBps)
	}
}

func TestScheduleRejectsZeroStep(t *testing.T) {
	eng, err := New(testParams(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = eng.Schedule(1000, 0)
	require.ErrorIs(t, err, domain.ErrInvalidParameters)
}
