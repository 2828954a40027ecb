package tensor

import (
	"github.com/gomlx/exceptions"
)

// assertSameShape panics if the two tensors disagree on shape. Element-wise
// operations never broadcast; operands must match exactly.
func assertSameShape(op string, a, b *Tensor) {
	if !a.shape.Equal(b.shape) {
		exceptions.Panicf("tensor.%s: shape mismatch %s vs %s", op, a.shape, b.shape)
	}
}

// Add returns the element-wise sum of t and other as a new tensor.
func (t *Tensor) Add(other *Tensor) *Tensor {
	assertSameShape("Add", t, other)
	out := t.Clone()
	for i := range out.data {
		out.data[i] += other.data[i]
	}
	return out
}

// Sub returns the element-wise difference t - other as a new tensor.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	assertSameShape("Sub", t, other)
	out := t.Clone()
	for i := range out.data {
		out.data[i] -= other.data[i]
	}
	return out
}

// Mul returns the element-wise (Hadamard) product as a new tensor.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	assertSameShape("Mul", t, other)
	out := t.Clone()
	for i := range out.data {
		out.data[i] *= other.data[i]
	}
	return out
}

// Scale returns t scaled by s as a new tensor.
func (t *Tensor) Scale(s float32) *Tensor {
	out := t.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// AddScaled adds s*other to t in place.
//
// This is the update primitive optimizers use to apply deltas to a parameter
// without allocating.
func (t *Tensor) AddScaled(other *Tensor, s float32) {
	assertSameShape("AddScaled", t, other)
	for i := range t.data {
		t.data[i] += s * other.data[i]
	}
}
