package nn

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/loom-ml/loom/internal/ident"
	"github.com/loom-ml/loom/tensor"
)

// BaseConfig declares the static properties of a layer.
type BaseConfig struct {
	InputShape  tensor.Shape // nil when inferred at setup time
	OutputShape tensor.Shape // nil when inferred at setup time
	Trainable   bool
}

// Base is the embeddable core of every layer. It owns the layer's identity,
// the shared-state attachment, the registered parameter list and the bound
// optimizer list, and supplies the inherited halves of the Layer contract:
// optimizer fan-out (OnOptimizer) and update dispatch (Optimize).
//
// Trainable layers register their parameters exactly once, from their
// OnInitializer, via SetParameters. Parameters, OnOptimizer and Optimize all
// read that registry, so the optimizer list is aligned with Parameters()
// order by construction and stays aligned for the lifetime of the layer.
//
// Base also provides loud failure stubs for Forward, Backward and (on
// trainable layers) OnInitializer, so a concrete layer that forgets to
// implement one fails immediately instead of silently returning a default.
type Base struct {
	Stateful
	id          ident.ID
	kind        string
	inputShape  tensor.Shape
	outputShape tensor.Shape
	trainable   bool
	params      []*tensor.Tensor
	optimizers  []Optimizer
}

// NewBase creates the embeddable layer core. kind is a short human-readable
// layer name ("dense", "tanh") used in diagnostics.
func NewBase(kind string, cfg BaseConfig) Base {
	return Base{
		id:          ident.New(),
		kind:        kind,
		inputShape:  cfg.InputShape,
		outputShape: cfg.OutputShape,
		trainable:   cfg.Trainable,
	}
}

// ID returns the layer's stable unique identity.
func (b *Base) ID() ident.ID {
	return b.id
}

// Kind returns the layer's diagnostic name.
func (b *Base) Kind() string {
	return b.kind
}

// Trainable reports whether the layer owns trainable parameters.
func (b *Base) Trainable() bool {
	return b.trainable
}

// InputShape returns the declared input shape, or nil if inferred.
func (b *Base) InputShape() tensor.Shape {
	return b.inputShape
}

// OutputShape returns the declared output shape, or nil if inferred.
func (b *Base) OutputShape() tensor.Shape {
	return b.outputShape
}

// SetParameters registers the layer's trainable parameters, in the order
// Parameters will forever report them. Called once, from the concrete
// layer's OnInitializer.
func (b *Base) SetParameters(params ...*tensor.Tensor) {
	if !b.trainable {
		exceptions.Panicf("nn: %s layer is not trainable and cannot own parameters", b.kind)
	}
	b.params = params
}

// Parameters returns the registered parameter tensors by reference. Callers
// may read them; only the layer itself mutates them, through Optimize.
func (b *Base) Parameters() []*tensor.Tensor {
	return b.params
}

// OnInitializer is the default initializer hook: a no-op for non-trainable
// layers, a loud failure for trainable layers that did not implement their
// own.
func (b *Base) OnInitializer(Initializer) {
	if b.trainable {
		exceptions.Panicf("nn: trainable %s layer must implement OnInitializer", b.kind)
	}
}

// OnOptimizer obtains one fresh optimizer per registered parameter, attaches
// the shared state, binds it to that parameter's shape and appends it to the
// layer's optimizer list. The list order matches Parameters() order and is
// frozen from here on.
//
// Requires OnState first, and OnInitializer first for trainable layers.
func (b *Base) OnOptimizer(provider OptimizerProvider) {
	if b.State() == nil {
		exceptions.Panicf("nn: %s: OnOptimizer called before OnState attached the training state", b.kind)
	}
	if b.trainable && len(b.params) == 0 {
		exceptions.Panicf("nn: %s: OnOptimizer called before OnInitializer populated any parameters", b.kind)
	}
	b.optimizers = make([]Optimizer, 0, len(b.params))
	for _, p := range b.params {
		o := provider()
		o.OnState(b.State())
		o.OnTargetShape(p.Shape())
		b.optimizers = append(b.optimizers, o)
	}
	klog.V(2).Infof("nn: %s layer %s: bound %d optimizer(s)", b.kind, b.id, len(b.optimizers))
}

// Optimize dispatches one gradient to each bound optimizer, pairing the
// optimizer list, the parameter list and gradients element-wise. Each update
// is recorded and applied immediately if and only if its optimizer reports
// readiness; when a gradient is computed is thereby decoupled from when it is
// applied, so per-parameter batching policies need no cooperation from the
// layer.
//
// Gradients must be in Parameters() order and of equal length.
func (b *Base) Optimize(gradients []*tensor.Tensor) {
	if len(b.params) > 0 && b.optimizers == nil {
		exceptions.Panicf("nn: %s: Optimize called before OnOptimizer bound the optimizers", b.kind)
	}
	if len(gradients) != len(b.params) {
		exceptions.Panicf("nn: %s: Optimize got %d gradient(s) for %d parameter(s)",
			b.kind, len(gradients), len(b.params))
	}
	for i, o := range b.optimizers {
		o.Record(Update{Parameter: b.params[i], Gradient: gradients[i]})
		if o.ShouldOptimize() {
			o.Optimize()
		}
	}
}

// Forward is a loud failure stub; every concrete layer implements its own.
func (b *Base) Forward(*tensor.Tensor) *tensor.Tensor {
	exceptions.Panicf("nn: %s layer does not implement Forward", b.kind)
	return nil
}

// Backward is a loud failure stub; every concrete layer implements its own.
func (b *Base) Backward(*tensor.Tensor) BackwardResult {
	exceptions.Panicf("nn: %s layer does not implement Backward", b.kind)
	return BackwardResult{}
}

// NumParameters returns the total element count across all parameters.
func (b *Base) NumParameters() int {
	n := 0
	for _, p := range b.params {
		n += p.NumElements()
	}
	return n
}

// String implements fmt.Stringer.
func (b *Base) String() string {
	return fmt.Sprintf("%s[%s] %s params",
		b.kind, b.id.String()[:8], humanize.Comma(int64(b.NumParameters())))
}
