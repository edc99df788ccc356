package go_wcpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformPriceSamePrecision(t *testing.T) {
	assert.Equal(t, int64(1500), TransformPrice(1500, 2, 2))
	assert.Equal(t, int64(0), TransformPrice(0, 2, 2))
	assert.Equal(t, int64(-250), TransformPrice(-250, 2, 2))
}

func TestTransformPriceUpScale(t *testing.T) {
	// Zero-decimal store currency into two-decimal wallet precision.
	assert.Equal(t, int64(1500), TransformPrice(15, 0, 2))
	assert.Equal(t, int64(120), TransformPrice(12, 1, 2))
	assert.Equal(t, int64(-1500), TransformPrice(-15, 0, 2))
}

func TestTransformPriceDownScaleRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(100), TransformPrice(1004, 3, 2))
	assert.Equal(t, int64(101), TransformPrice(1005, 3, 2))
	assert.Equal(t, int64(101), TransformPrice(1006, 3, 2))
	assert.Equal(t, int64(-101), TransformPrice(-1005, 3, 2))
	assert.Equal(t, int64(-100), TransformPrice(-1004, 3, 2))

	// Two-decimal store into zero-decimal wallet currency.
	assert.Equal(t, int64(15), TransformPrice(1500, 2, 0))
	assert.Equal(t, int64(16), TransformPrice(1550, 2, 0))
}

func TestTransformPriceNegativePrecisionClamped(t *testing.T) {
	assert.Equal(t, int64(1500), TransformPrice(15, -1, 2))
	assert.Equal(t, int64(15), TransformPrice(1500, 2, -3))
}

func TestInversePriceRoundTrip(t *testing.T) {
	// Up-scaling is lossless, so the inverse must restore the original.
	for _, amount := range []int64{0, 1, 15, 999, -42} {
		scaled := TransformPrice(amount, 0, 2)
		assert.Equal(t, amount, InversePrice(scaled, 0, 2))
	}
}
