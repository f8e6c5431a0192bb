// Package sqrtprice converts between 1e18 fixed-point prices and the pool's
// native Q64.96 square-root price encoding. Both directions are monotonic,
// so price ordering (and with it the fee engine's toward/away resolution at
// the dead-zone boundary) survives a round trip through the pool encoding.
package sqrtprice

import (
	"fmt"
	"math/big"

	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/alanyoungcy/pegfee/internal/domain"
)

// sqrtPriceBits caps the encoded value the way the host pool does: a Q64.96
// square-root price occupies at most 160 bits.
const sqrtPriceBits = 160

var (
	priceScale = ethmath.BigPow(10, domain.PriceDecimals)
	q192       = ethmath.BigPow(2, 192)
)

// FromPrice encodes a 1e18 fixed-point price as
// floor(sqrt(price * 2^192 / 1e18)). The intermediate product exceeds 256
// bits for large prices, so the conversion runs through big.Int.
func FromPrice(price *uint256.Int) (*uint256.Int, error) {
	if price == nil || price.IsZero() {
		return nil, fmt.Errorf("%w: price must be strictly positive", domain.ErrInvalidPrice)
	}
	ratio := new(big.Int).Mul(price.ToBig(), q192)
	ratio.Div(ratio, priceScale)
	root := new(big.Int).Sqrt(ratio)
	if root.BitLen() > sqrtPriceBits {
		return nil, fmt.Errorf("%w: price exceeds the Q64.96 range", domain.ErrInvalidPrice)
	}
	out, overflow := uint256.FromBig(root)
	if overflow {
		return nil, fmt.Errorf("%w: price exceeds the Q64.96 range", domain.ErrInvalidPrice)
	}
	return out, nil
}

// ToPrice decodes a Q64.96 square-root price back into a 1e18 fixed-point
// price: floor(sqrtPriceX96^2 * 1e18 / 2^192).
func ToPrice(sqrtPriceX96 *uint256.Int) (*uint256.Int, error) {
	if sqrtPriceX96 == nil || sqrtPriceX96.IsZero() {
		return nil, fmt.Errorf("%w: sqrt price must be strictly positive", domain.ErrInvalidPrice)
	}
	if sqrtPriceX96.BitLen() > sqrtPriceBits {
		return nil, fmt.Errorf("%w: sqrt price exceeds the Q64.96 range", domain.ErrInvalidPrice)
	}
	raw := sqrtPriceX96.ToBig()
	sq := new(big.Int).Mul(raw, raw)
	sq.Mul(sq, priceScale)
	sq.Div(sq, q192)
	out, overflow := uint256.FromBig(sq)
	if overflow {
		return nil, fmt.Errorf("%w: sqrt price out of range", domain.ErrInvalidPrice)
	}
	return out, nil
}
