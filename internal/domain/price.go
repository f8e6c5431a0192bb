package domain

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// PriceDecimals is the fixed-point scale shared by all prices in the system:
// a price of 1.0 is represented as 10^18.
const PriceDecimals = 18

// TradeDirection indicates which way the pending trade pushes the pool price.
type TradeDirection string

const (
	// DirectionPriceDown means the trade lowers the pool price.
	DirectionPriceDown TradeDirection = "price_down"

	// DirectionPriceUp means the trade raises the pool price.
	DirectionPriceUp TradeDirection = "price_up"
)

// String returns a human-readable description of the direction.
func (d TradeDirection) String() string {
	switch d {
	case DirectionPriceDown:
		return "price down"
	case DirectionPriceUp:
		return "price up"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the two recognized directions.
func (d TradeDirection) Valid() bool {
	return d == DirectionPriceDown || d == DirectionPriceUp
}

// PriceObservation is the per-trade input to the fee engine: the pool's
// current price, the external reference price it should track, and the
// direction the pending trade pushes the pool price. Both prices use the
// same 1e18 fixed-point scale and must be strictly positive.
type PriceObservation struct {
	PoolPrice *uint256.Int
	PegPrice  *uint256.Int
	Direction TradeDirection
}

// ParsePrice converts a human-readable decimal string (e.g. "1.0020") into a
// 1e18 fixed-point price. The value must be strictly positive and carry at
// most PriceDecimals decimal places.
func ParsePrice(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, s, err)
	}
	scaled := d.Shift(PriceDecimals)
	if scaled.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q must be strictly positive", ErrInvalidPrice, s)
	}
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidPrice, s, PriceDecimals)
	}
	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: %q does not fit in 256 bits at scale 1e%d", ErrInvalidPrice, s, PriceDecimals)
	}
	return v, nil
}

// FormatPrice renders a 1e18 fixed-point price back into a decimal string.
func FormatPrice(p *uint256.Int) string {
	if p == nil {
		return "0"
	}
	return decimal.NewFromBigInt(p.ToBig(), -PriceDecimals).String()
}
