package utils

import (
	"math"
)

// POW is an integer power without the cost of math.Pow for small exponents
func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// Norms returns the root mean square and the max absolute value of a
func Norms(a []float64) (rms, max float64) {
	if len(a) == 0 {
		return
	}
	for _, val := range a {
		rms += val * val
		if math.Abs(val) > max {
			max = math.Abs(val)
		}
	}
	rms = math.Sqrt(rms / float64(len(a)))
	return
}
