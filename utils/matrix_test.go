package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	// AddAt accumulates
	{
		M := NewMatrix(2, 2)
		M.AddAt(0, 1, 2)
		M.AddAt(0, 1, 3)
		assert.Equal(t, 5., M.At(0, 1))
	}
	// LUSolve reproduces a known solution
	{
		A := NewMatrix(3, 3, []float64{
			4, 1, 0,
			1, 3, 1,
			0, 1, 2,
		})
		xExact := []float64{1, -2, 3}
		b := make([]float64, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				b[i] += A.At(i, j) * xExact[j]
			}
		}
		x, err := A.LUSolve(b)
		require.NoError(t, err)
		for i := range xExact {
			assert.InDeltaf(t, xExact[i], x[i], 1.e-12, "entry %d", i)
		}
		// receiver must be untouched by the factorization
		assert.Equal(t, 4., A.At(0, 0))
	}
	// singular matrix is reported
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			2, 4,
		})
		_, err := A.LUSolve([]float64{1, 1})
		assert.Error(t, err)
	}
}

func TestDOK(t *testing.T) {
	// Set, AddAt, At
	{
		D := NewDOK(3, 3)
		D.Set(0, 0, 2)
		D.AddAt(0, 0, 3)
		D.Set(0, 2, -1)
		assert.Equal(t, 5., D.At(0, 0))
		assert.Equal(t, -1., D.At(0, 2))
		assert.Equal(t, 0., D.At(1, 1))
	}
	// RowAbsSum over stored entries
	{
		D := NewDOK(2, 3)
		D.Set(0, 0, -2)
		D.Set(0, 2, 3)
		D.Set(1, 1, 7)
		assert.InDelta(t, 5., D.RowAbsSum(0), 1.e-15)
		assert.InDelta(t, 7., D.RowAbsSum(1), 1.e-15)
	}
	// ToDense mirrors the stored entries
	{
		D := NewDOK(2, 2)
		D.Set(1, 0, 4)
		M := D.ToDense()
		assert.Equal(t, 4., M.At(1, 0))
		assert.Equal(t, 0., M.At(0, 1))
	}
	// CSR matrix vector product
	{
		D := NewDOK(2, 2)
		D.Set(0, 0, 1)
		D.Set(0, 1, 2)
		D.Set(1, 1, 3)
		y := D.ToCSR().MulVec([]float64{1, 1})
		assert.InDelta(t, 3., y[0], 1.e-15)
		assert.InDelta(t, 3., y[1], 1.e-15)
	}
}
