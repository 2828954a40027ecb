// Package tensor provides the dense float32 array type the loom core is
// built on.
//
// The package defines:
//   - Shape: dimension tuple with stride/element-count helpers
//   - Tensor: a contiguous row-major float32 array of arbitrary rank
//   - Creation functions: Zeros, Ones, Full, FromSlice, Randn
//   - Element-wise operations: Add, Sub, Mul, Scale, AddScaled
//
// Tensors here are plain single-threaded CPU values. Parameters, gradients
// and layer inputs/outputs are all Tensors; layers and optimizers pass them
// by reference and mutate them in place only where their contracts allow.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
//	y := tensor.Ones(tensor.Shape{2, 3})
//	z := x.Add(y) // Element-wise addition
package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Tensor is a dense row-major float32 array.
//
// The zero value is not usable; construct tensors with New or one of the
// creation functions. The backing data slice is shared, never copied, when a
// Tensor is passed around: Clone is the only operation that duplicates it.
type Tensor struct {
	shape   Shape
	strides []int
	data    []float32
}

// New creates a zero-filled tensor of the given shape.
//
// Returns an error if the shape has non-positive dimensions.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(err, "tensor.New(%s)", shape)
	}
	s := shape.Clone()
	return &Tensor{
		shape:   s,
		strides: s.ComputeStrides(),
		data:    make([]float32, s.NumElements()),
	}, nil
}

// Shape returns the tensor's shape. Callers must not mutate it.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the backing slice in row-major order.
//
// Mutating the returned slice mutates the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor) At(indices ...int) float32 {
	return t.data[t.offset(indices)]
}

// SetAt stores v at the given multi-dimensional index.
func (t *Tensor) SetAt(v float32, indices ...int) {
	t.data[t.offset(indices)] = v
}

// offset converts a multi-dimensional index to a flat data offset.
func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		exceptions.Panicf("tensor: index of rank %d used on tensor of shape %s", len(indices), t.shape)
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			exceptions.Panicf("tensor: index %d out of range for dimension %d of shape %s", idx, i, t.shape)
		}
		off += idx * t.strides[i]
	}
	return off
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		shape:   t.shape.Clone(),
		strides: t.shape.ComputeStrides(),
		data:    make([]float32, len(t.data)),
	}
	copy(c.data, t.data)
	return c
}

// Equal reports whether two tensors have the same shape and identical elements.
func (t *Tensor) Equal(other *Tensor) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Fill sets every element to v.
func (t *Tensor) Fill(v float32) {
	for i := range t.data {
		t.data[i] = v
	}
}

// String implements fmt.Stringer, showing shape and a short data prefix.
func (t *Tensor) String() string {
	const maxShown = 8
	if len(t.data) <= maxShown {
		return fmt.Sprintf("Tensor%s%v", t.shape, t.data)
	}
	return fmt.Sprintf("Tensor%s%v...", t.shape, t.data[:maxShown])
}
