package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies PEGFEE_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known PEGFEE_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators adjust the schedule at deploy time without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Fee ──
	setUint64(&cfg.Fee.BaseFeePPM, "PEGFEE_FEE_BASE_FEE_PPM")
	setUint64(&cfg.Fee.MinFeePPM, "PEGFEE_FEE_MIN_FEE_PPM")
	setUint64(&cfg.Fee.MaxFeePPM, "PEGFEE_FEE_MAX_FEE_PPM")
	setUint64(&cfg.Fee.DeadzoneBps, "PEGFEE_FEE_DEADZONE_BPS")
	setUint64(&cfg.Fee.SlopeTowardPPM, "PEGFEE_FEE_SLOPE_TOWARD_PPM")
	setUint64(&cfg.Fee.SlopeAwayPPM, "PEGFEE_FEE_SLOPE_AWAY_PPM")
	setUint64(&cfg.Fee.ArbTriggerBps, "PEGFEE_FEE_ARB_TRIGGER_BPS")

	// ── Peg ──
	setStr(&cfg.Peg.Price, "PEGFEE_PEG_PRICE")

	// ── Engine ──
	setStr(&cfg.LogLevel, "PEGFEE_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setUint64(dst *uint64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
