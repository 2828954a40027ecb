// Package optim provides the accumulate/flush scaffolding shared by concrete
// optimizers.
//
// The core deliberately carries no gradient-descent arithmetic: Accumulator
// implements everything of the nn.Optimizer contract except Optimize itself
// (target-shape binding, shape-checked recording, the readiness predicate and
// the post-apply reset), and a concrete optimizer embeds it and supplies the
// arithmetic:
//
//	type SGD struct {
//	    optim.Accumulator
//	    LR float32
//	}
//
//	func NewSGD(lr float32, cfg optim.Config) *SGD {
//	    return &SGD{Accumulator: optim.NewAccumulator(cfg), LR: lr}
//	}
//
//	func (s *SGD) Optimize() {
//	    for _, u := range s.Pending() {
//	        u.Parameter.AddScaled(u.Gradient, -s.LR)
//	    }
//	    s.Reset()
//	}
package optim

import (
	"github.com/gomlx/exceptions"

	"github.com/loom-ml/loom/internal/ident"
	"github.com/loom-ml/loom/nn"
	"github.com/loom-ml/loom/tensor"
)

// Config holds the batching policy shared by all accumulating optimizers.
type Config struct {
	// BatchSize is the number of recorded updates that makes the pending
	// batch ready. Zero or negative means 1: apply every update as it is
	// recorded.
	BatchSize int
}

// Accumulator is the embeddable state machine of an optimizer binding: it
// moves from idle to accumulating as updates are recorded and reports
// readiness once the configured batch size is reached. The embedding
// optimizer's Optimize applies the pending batch and calls Reset to return
// to idle.
type Accumulator struct {
	nn.Stateful
	id        ident.ID
	batchSize int
	target    tensor.Shape
	pending   []nn.Update
}

// NewAccumulator creates the embeddable accumulation core.
func NewAccumulator(cfg Config) Accumulator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	return Accumulator{
		id:        ident.New(),
		batchSize: cfg.BatchSize,
	}
}

// ID returns the optimizer's stable unique identity.
func (a *Accumulator) ID() ident.ID {
	return a.id
}

// BatchSize returns the configured readiness threshold.
func (a *Accumulator) BatchSize() int {
	return a.batchSize
}

// OnTargetShape binds the accumulator to the shape of the parameter it will
// update. Called once, by the owning layer, during optimizer attachment.
func (a *Accumulator) OnTargetShape(shape tensor.Shape) {
	if a.target != nil {
		exceptions.Panicf("optim: optimizer %s is already bound to shape %s", a.id, a.target)
	}
	a.target = shape.Clone()
}

// TargetShape returns the bound parameter shape, or nil before
// OnTargetShape.
func (a *Accumulator) TargetShape() tensor.Shape {
	return a.target
}

// Record appends an update to the pending batch. Both sides of the update
// must match the bound parameter shape exactly.
func (a *Accumulator) Record(update nn.Update) {
	if a.target == nil {
		exceptions.Panicf("optim: Record called before OnTargetShape bound a parameter shape")
	}
	if !update.Parameter.Shape().Equal(a.target) {
		exceptions.Panicf("optim: recorded parameter shape %s does not match bound shape %s",
			update.Parameter.Shape(), a.target)
	}
	if !update.Gradient.Shape().Equal(a.target) {
		exceptions.Panicf("optim: recorded gradient shape %s does not match bound shape %s",
			update.Gradient.Shape(), a.target)
	}
	a.pending = append(a.pending, update)
}

// ShouldOptimize reports whether the pending batch reached the configured
// batch size. It never mutates state.
func (a *Accumulator) ShouldOptimize() bool {
	return len(a.pending) >= a.batchSize
}

// Pending returns the recorded updates awaiting application, oldest first.
func (a *Accumulator) Pending() []nn.Update {
	return a.pending
}

// Reset clears the pending batch, returning the binding to idle. The
// embedding optimizer calls it at the end of its Optimize.
func (a *Accumulator) Reset() {
	a.pending = a.pending[:0]
}
