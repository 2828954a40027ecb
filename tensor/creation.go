package tensor

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x := tensor.Full(tensor.Shape{2, 3}, 3.14)
func Full(shape Shape, value float32) *Tensor {
	t := Zeros(shape)
	t.Fill(value)
	return t
}

// FromSlice creates a tensor from a Go slice, copying the data.
//
// Returns an error if the slice length does not match the shape's element
// count.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, errors.Errorf("tensor.FromSlice: %d values do not fit shape %s (%d elements)",
			len(data), shape, shape.NumElements())
	}
	copy(t.data, data)
	return t, nil
}

// Randn creates a tensor with values drawn from the normal distribution
// N(mu, sigma²).
//
// A nil src uses the shared global source; pass rand.NewSource(seed) for
// reproducible draws.
func Randn(shape Shape, mu, sigma float64, src rand.Source) *Tensor {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = float32(dist.Rand())
	}
	return t
}
