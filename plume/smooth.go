package plume

import "math"

// Smooth convolves a field with a normalized Gaussian kernel of the given
// sigma (in cell units, not physical units). Boundary cells are handled by
// edge replication so that contours near the domain edge are not pulled
// toward zero. sigma <= 0 returns an unmodified copy.
//
// The convolution is separable: one pass along columns, one along rows.
// The kernel is truncated at 4 sigma.
func Smooth(field ScalarField, sigma float64) ScalarField {
	out := ScalarField{Grid: field.Grid, Values: make([]float64, len(field.Values))}
	copy(out.Values, field.Values)

	if sigma <= 0 {
		return out
	}

	kernel := gaussianKernel(sigma)
	ncol := field.Grid.NCol
	nrow := field.Grid.NRow

	// Pass 1: along the column axis (x direction, row fixed).
	tmp := make([]float64, len(field.Values))
	for row := 0; row < nrow; row++ {
		for col := 0; col < ncol; col++ {
			tmp[col*nrow+row] = convolveAt(kernel, col, ncol, func(c int) float64 {
				return out.Values[c*nrow+row]
			})
		}
	}

	// Pass 2: along the row axis (y direction, column fixed).
	for col := 0; col < ncol; col++ {
		for row := 0; row < nrow; row++ {
			out.Values[col*nrow+row] = convolveAt(kernel, row, nrow, func(r int) float64 {
				return tmp[col*nrow+r]
			})
		}
	}

	return out
}

// convolveAt computes one output sample of a 1-D convolution with edge
// replication. sample(i) must return the input value at index i within
// [0, n); out-of-range taps are clamped to the nearest edge.
func convolveAt(kernel []float64, center, n int, sample func(int) float64) float64 {
	radius := len(kernel) / 2
	var sum float64
	for k, w := range kernel {
		i := center + k - radius
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
		sum += w * sample(i)
	}
	return sum
}

// gaussianKernel builds a normalized 1-D Gaussian kernel truncated at
// 4 sigma, with an odd number of taps.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}

	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
