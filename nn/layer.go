// Package nn defines the differentiable-layer core of loom: the Layer
// abstraction, the shared training State, and the Initializer and Optimizer
// contracts every concrete implementation must satisfy.
//
// The package provides:
//   - Layer interface + Base: the three-phase setup protocol, the
//     forward/backward numeric contract, and per-parameter update dispatch
//   - State / Stateful: the run-scoped context threaded through every component
//   - Initializer interface with Xavier, Normal, Uniform and Zeros variants
//   - Optimizer interface + Update: the per-parameter binding contract
//   - Dense and activation layers as concrete implementations
//
// A driver wires a layer up in a fixed order:
//
//	layer.OnState(state)             // attach shared state
//	state.CurrentLayerInputShape = in
//	layer.OnInitializer(initializer) // populate parameters
//	layer.OnOptimizer(provider)      // bind one optimizer per parameter
//
// and then trains with repeated Forward/Backward/Optimize calls. Violating
// the setup order is a programming error; the core fails loudly rather than
// proceeding with undefined numeric state.
package nn

import (
	"github.com/loom-ml/loom/internal/ident"
	"github.com/loom-ml/loom/tensor"
)

// BackwardResult carries the two gradient products of one backward call.
type BackwardResult struct {
	// InputGradient is the gradient of the loss with respect to the layer's
	// forward input, with the same shape as that input. It is the sole
	// value propagated to the preceding layer.
	InputGradient *tensor.Tensor

	// ParameterGradients holds one gradient per trainable parameter, in
	// Parameters() order. Empty for non-trainable layers.
	ParameterGradients []*tensor.Tensor
}

// Layer is the central unit of the core: a differentiable transformation
// from an input tensor to an output tensor, optionally holding trainable
// parameters.
//
// Concrete layers embed Base and implement OnInitializer (trainable layers),
// Forward and Backward; Base supplies identity, state attachment, optimizer
// fan-out and update dispatch.
type Layer interface {
	// ID returns the layer's stable unique identity.
	ID() ident.ID

	// OnState attaches the shared training state. First setup phase.
	OnState(state *State)

	// OnInitializer populates every trainable parameter using the given
	// initializer. Second setup phase; requires OnState for layers whose
	// initialization reads the shared state. A safe no-op for
	// non-trainable layers.
	OnInitializer(init Initializer)

	// OnOptimizer obtains one fresh optimizer per parameter from provider
	// and binds it. Third setup phase; must precede the first Optimize.
	OnOptimizer(provider OptimizerProvider)

	// Forward computes the layer's output from input and the current
	// parameter values. It may cache the input for the following Backward
	// call but must not mutate parameters.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward applies the chain rule to the gradient of the loss with
	// respect to this layer's output. It requires that Forward was called
	// immediately before with the same logical sample.
	Backward(outputGradient *tensor.Tensor) BackwardResult

	// Parameters returns the trainable parameter tensors by reference, in
	// a fixed order. Empty for non-trainable layers.
	Parameters() []*tensor.Tensor

	// Optimize fans the supplied gradients out to the bound optimizers,
	// one per parameter, applying each optimizer's pending updates when it
	// reports readiness. Gradients must be in Parameters() order.
	Optimize(gradients []*tensor.Tensor)

	// Trainable reports whether the layer owns trainable parameters.
	Trainable() bool
}
