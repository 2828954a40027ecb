package nn

import "github.com/loom-ml/loom/tensor"

// Update is one pending (parameter, gradient) pair recorded on an optimizer.
//
// Parameter is a live reference to the tensor the optimizer will mutate in
// place; Gradient has the same shape and is only valid until the optimizer
// applies or discards the update.
type Update struct {
	Parameter *tensor.Tensor
	Gradient  *tensor.Tensor
}

// Optimizer is bound to exactly one trainable parameter of one layer. It
// accumulates recorded updates and applies them when its batching policy says
// the batch is ready.
//
// The binding moves through idle → accumulating → ready → apply → idle:
// Record grows the pending batch, ShouldOptimize is the pure readiness
// predicate, and Optimize applies the batch in place and clears it. Calling
// Optimize when ShouldOptimize is false is undefined; callers must gate on
// the predicate, as Base.Optimize does.
//
// Two optimizers bound to two parameters of the same layer are fully
// independent; any coupling goes through run-global fields of the shared
// State (e.g. Step).
type Optimizer interface {
	// OnState attaches the shared training state. Called once, before the
	// first Record.
	OnState(state *State)

	// OnTargetShape binds the optimizer to the shape of its parameter.
	// Called once; establishes shape-dependent accumulators such as
	// momentum buffers.
	OnTargetShape(shape tensor.Shape)

	// Record appends an update to the pending batch. The update's
	// parameter and gradient must match the bound shape exactly; a
	// mismatch is a fatal contract violation.
	Record(update Update)

	// ShouldOptimize reports whether the pending batch is ready to apply.
	// It must not mutate state.
	ShouldOptimize() bool

	// Optimize applies the accumulated updates to the parameter in place
	// and clears the pending batch.
	Optimize()
}

// OptimizerProvider returns a fresh, unbound Optimizer per call. A layer
// invokes it once per trainable parameter during OnOptimizer.
type OptimizerProvider func() Optimizer
