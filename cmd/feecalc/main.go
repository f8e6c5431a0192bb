// Command feecalc is a diagnostic tool for the peg-tracking fee schedule. It
// loads configuration, validates it, computes the fee for a supplied pool
// price and trade direction against the configured peg, and can print the
// full fee curve across a deviation range.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/holiman/uint256"

	"github.com/alanyoungcy/pegfee/internal/config"
	"github.com/alanyoungcy/pegfee/internal/domain"
	"github.com/alanyoungcy/pegfee/internal/engine"
	"github.com/alanyoungcy/pegfee/internal/sqrtprice"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	poolPrice := flag.String("pool", "", "pool price as a decimal string, e.g. 1.0020")
	sqrtPool := flag.String("sqrt-pool", "", "pool price as a raw Q64.96 sqrt price instead of -pool")
	pegPrice := flag.String("peg", "", "peg price override (defaults to the configured peg)")
	direction := flag.String("direction", "down", "direction the trade pushes the pool price: down or up")
	schedule := flag.Bool("schedule", false, "print the fee curve instead of a single fee")
	scheduleMax := flag.Uint64("schedule-max-bps", 6000, "largest deviation in the printed curve")
	scheduleStep := flag.Uint64("schedule-step-bps", 100, "deviation step of the printed curve")
	flag.Parse()

	// Setup structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Set log level from config.
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	eng, err := engine.New(cfg.FeeParams(), logger)
	if err != nil {
		logger.Error("failed to build fee engine", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *schedule {
		if err := printSchedule(eng, *scheduleMax, *scheduleStep); err != nil {
			logger.Error("failed to compute fee schedule", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if *poolPrice == "" && *sqrtPool == "" {
		logger.Error("missing required -pool (or -sqrt-pool) flag")
		flag.Usage()
		os.Exit(2)
	}

	var pool *uint256.Int
	if *sqrtPool != "" {
		raw, err := uint256.FromDecimal(*sqrtPool)
		if err != nil {
			logger.Error("invalid sqrt pool price", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if pool, err = sqrtprice.ToPrice(raw); err != nil {
			logger.Error("invalid sqrt pool price", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		var err error
		if pool, err = domain.ParsePrice(*poolPrice); err != nil {
			logger.Error("invalid pool price", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	peg, err := cfg.PegPrice()
	if err != nil {
		logger.Error("invalid peg price", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *pegPrice != "" {
		if peg, err = domain.ParsePrice(*pegPrice); err != nil {
			logger.Error("invalid peg price override", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var dir domain.TradeDirection
	switch *direction {
	case "down":
		dir = domain.DirectionPriceDown
	case "up":
		dir = domain.DirectionPriceUp
	default:
		logger.Error("direction must be down or up", slog.String("direction", *direction))
		os.Exit(2)
	}

	fee, diag, err := eng.Compute(domain.PriceObservation{
		PoolPrice: pool,
		PegPrice:  peg,
		Direction: dir,
	})
	if err != nil {
		logger.Error("fee computation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("fee computed",
		slog.String("pool_price", domain.FormatPrice(pool)),
		slog.String("peg_price", domain.FormatPrice(peg)),
		slog.String("direction", dir.String()),
		slog.Uint64("fee_ppm", fee),
		slog.Uint64("unclamped_ppm", diag.Unclamped),
		slog.Uint64("deviation_bps", diag.DeviationBps),
		slog.Uint64("pct_units", diag.PctUnits),
		slog.Bool("toward", diag.Toward),
		slog.String("zone", string(diag.Zone)),
	)
	fmt.Printf("%d\n", fee)
}

func printSchedule(eng *engine.Engine, maxBps, stepBps uint64) error {
	points, err := eng.Schedule(maxBps, stepBps)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "deviation_bps\ttoward_fee_ppm\taway_fee_ppm")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%d\t%d\n", p.DeviationBps, p.TowardFeePPM, p.AwayFeePPM)
	}
	return w.Flush()
}
