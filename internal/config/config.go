// Package config defines the fee engine configuration and provides
// validation helpers.
package config

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/alanyoungcy/pegfee/internal/domain"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by PEGFEE_* environment variables.
type Config struct {
	Fee      FeeConfig `toml:"fee"`
	Peg      PegConfig `toml:"peg"`
	LogLevel string    `toml:"log_level"`
}

// FeeConfig holds the fee schedule parameters. Fee values are parts per
// million, thresholds are basis points of the peg.
type FeeConfig struct {
	BaseFeePPM     uint64 `toml:"base_fee_ppm"`
	MinFeePPM      uint64 `toml:"min_fee_ppm"`
	MaxFeePPM      uint64 `toml:"max_fee_ppm"`
	DeadzoneBps    uint64 `toml:"deadzone_bps"`
	SlopeTowardPPM uint64 `toml:"slope_toward_ppm"`
	SlopeAwayPPM   uint64 `toml:"slope_away_ppm"`
	ArbTriggerBps  uint64 `toml:"arb_trigger_bps"`
}

// PegConfig holds the reference price the pool is expected to track. In
// production the peg comes from an external oracle; here it is pinned in
// configuration and treated as a trusted positive price.
type PegConfig struct {
	Price string `toml:"price"` // decimal string, e.g. "1.0"
}

// Defaults returns the built-in configuration: a 0.30% base fee discounted
// down to 0.05% or surcharged up to 1.00%, a 25 bps dead-zone, and a 50%
// deviation arbitrage trigger.
func Defaults() Config {
	return Config{
		Fee: FeeConfig{
			BaseFeePPM:     3000,
			MinFeePPM:      500,
			MaxFeePPM:      10000,
			DeadzoneBps:    25,
			SlopeTowardPPM: 150,
			SlopeAwayPPM:   1200,
			ArbTriggerBps:  5000,
		},
		Peg:      PegConfig{Price: "1.0"},
		LogLevel: "info",
	}
}

// FeeParams maps the fee section onto the domain parameter set.
func (c *Config) FeeParams() domain.FeeParams {
	return domain.FeeParams{
		BaseFeePPM:     c.Fee.BaseFeePPM,
		MinFeePPM:      c.Fee.MinFeePPM,
		MaxFeePPM:      c.Fee.MaxFeePPM,
		DeadzoneBps:    c.Fee.DeadzoneBps,
		SlopeTowardPPM: c.Fee.SlopeTowardPPM,
		SlopeAwayPPM:   c.Fee.SlopeAwayPPM,
		ArbTriggerBps:  c.Fee.ArbTriggerBps,
	}
}

// PegPrice parses the configured peg into a 1e18 fixed-point price.
func (c *Config) PegPrice() (*uint256.Int, error) {
	return domain.ParsePrice(c.Peg.Price)
}

// Validate checks the configuration as a whole: the fee parameter ordering
// invariants and the peg price. It is called once after Load; Compute never
// re-validates parameters.
func (c *Config) Validate() error {
	if err := c.FeeParams().Validate(); err != nil {
		return err
	}
	if _, err := c.PegPrice(); err != nil {
		return fmt.Errorf("peg price: %w", err)
	}
	return nil
}
