package nn

import (
	"math"

	"github.com/gomlx/exceptions"

	"github.com/loom-ml/loom/tensor"
)

// Activation is a non-trainable element-wise layer defined by a function and
// its derivative. Forward caches the input; Backward multiplies the output
// gradient by the derivative evaluated at that cached input.
type Activation struct {
	Base
	fn    func(float32) float32
	prime func(float32) float32
	input *tensor.Tensor
}

var _ Layer = (*Activation)(nil)

// NewActivation creates an element-wise activation layer from a function and
// its derivative. kind names the layer in diagnostics.
func NewActivation(kind string, fn, prime func(float32) float32) *Activation {
	if fn == nil || prime == nil {
		exceptions.Panicf("nn: %s activation needs both the function and its derivative", kind)
	}
	return &Activation{
		Base:  NewBase(kind, BaseConfig{}),
		fn:    fn,
		prime: prime,
	}
}

// Forward applies the activation element-wise and caches the input.
func (a *Activation) Forward(input *tensor.Tensor) *tensor.Tensor {
	a.input = input
	out := input.Clone()
	data := out.Data()
	for i, v := range data {
		data[i] = a.fn(v)
	}
	return out
}

// Backward returns f'(x) ⊙ dy; activations carry no parameter gradients.
func (a *Activation) Backward(outputGradient *tensor.Tensor) BackwardResult {
	if a.input == nil {
		exceptions.Panicf("nn: %s: Backward called before Forward cached an input", a.Kind())
	}
	grad := a.input.Clone()
	data := grad.Data()
	for i, v := range data {
		data[i] = a.prime(v)
	}
	return BackwardResult{InputGradient: grad.Mul(outputGradient)}
}

// NewTanh creates a hyperbolic tangent activation layer.
func NewTanh() *Activation {
	return NewActivation("tanh",
		func(x float32) float32 { return float32(math.Tanh(float64(x))) },
		func(x float32) float32 {
			t := float32(math.Tanh(float64(x)))
			return 1 - t*t
		},
	)
}

// NewSigmoid creates a logistic sigmoid activation layer.
func NewSigmoid() *Activation {
	sigmoid := func(x float32) float32 {
		return float32(1 / (1 + math.Exp(-float64(x))))
	}
	return NewActivation("sigmoid",
		sigmoid,
		func(x float32) float32 {
			s := sigmoid(x)
			return s * (1 - s)
		},
	)
}

// NewReLU creates a rectified linear activation layer.
func NewReLU() *Activation {
	return NewActivation("relu",
		func(x float32) float32 {
			if x > 0 {
				return x
			}
			return 0
		},
		func(x float32) float32 {
			if x > 0 {
				return 1
			}
			return 0
		},
	)
}
