package flow

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// choleskyFactorize computes the lower-triangular L such that a == L·Lᵀ,
// for a symmetric positive-definite a. It returns an error (not a
// panic) on non-positive-definite input, since this is a recoverable
// per-tick numerical failure, not a programmer error.
func choleskyFactorize(a [][]float64) ([][]float64, error) {
	n := len(a)
	L := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= L[i][k] * L[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, chk.Err("choleskyFactorize: matrix is not positive definite at row %d", i)
				}
				L[i][j] = math.Sqrt(sum)
			} else {
				L[i][j] = sum / L[j][j]
			}
		}
	}
	return L, nil
}

func forwardSubstitute(L [][]float64, b []float64) []float64 {
	n := len(b)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= L[i][k] * y[k]
		}
		y[i] = sum / L[i][i]
	}
	return y
}

func backSubstitute(L [][]float64, y []float64) []float64 {
	n := len(y)
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= L[k][i] * x[k]
		}
		x[i] = sum / L[i][i]
	}
	return x
}
