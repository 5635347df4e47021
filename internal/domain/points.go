package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var maxPoints = decimal.NewFromInt(math.MaxInt64)

// PointsFor returns the points earned by a transaction amount at the given
// points-per-dollar rate. Fractional points are dropped, never rounded up:
// $19.99 at rate 1.0 earns 19 points. A product past the int64 range
// saturates at the maximum instead of wrapping negative.
func PointsFor(amount, rate decimal.Decimal) int64 {
	points := amount.Mul(rate)
	if points.GreaterThanOrEqual(maxPoints) {
		return math.MaxInt64
	}
	return points.IntPart()
}
