package nn

import (
	"math"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/loom-ml/loom/tensor"
)

// Initializer produces initial values for trainable parameters.
//
// Implementations may read any field of the shared State; Xavier reads
// CurrentLayerInputShape, which the driver must set before the owning
// layer's OnInitializer runs.
type Initializer interface {
	// OnState attaches the shared training state.
	OnState(state *State)

	// Get returns a freshly allocated tensor of exactly the given shape,
	// filled with initial parameter values.
	Get(shape tensor.Shape) *tensor.Tensor
}

// Xavier draws initial values from N(0, 1/fan_in), where fan_in is the
// number of elements in the shape currently entering the layer being
// initialized. Scaling the variance by the fan-in keeps forward-pass
// activation variance approximately stable across layers.
//
// Get panics if the shared state is missing or its CurrentLayerInputShape is
// unset: proceeding would produce a silently wrong scale, which is far harder
// to diagnose than an immediate failure.
type Xavier struct {
	Stateful
	src rand.Source
}

// NewXavier creates a Xavier initializer using the shared global random
// source.
func NewXavier() *Xavier {
	return &Xavier{}
}

// NewXavierSeeded creates a Xavier initializer with its own seeded source,
// for reproducible parameter draws.
func NewXavierSeeded(seed uint64) *Xavier {
	return &Xavier{src: rand.NewSource(seed)}
}

// Get returns a tensor of the given shape drawn from N(0, 1/fan_in).
func (x *Xavier) Get(shape tensor.Shape) *tensor.Tensor {
	state := x.State()
	if state == nil {
		exceptions.Panicf("nn: Xavier.Get called before OnState attached the training state")
	}
	if len(state.CurrentLayerInputShape) == 0 {
		exceptions.Panicf("nn: Xavier.Get: State.CurrentLayerInputShape is unset; " +
			"the driver must record the incoming shape before initializing the layer")
	}
	fanIn := state.CurrentLayerInputShape.NumElements()
	return tensor.Randn(shape, 0, math.Sqrt(1/float64(fanIn)), x.src)
}

// Normal draws initial values from N(Mu, Sigma²). A zero Sigma means the
// standard deviation 1.
type Normal struct {
	Stateful
	Mu    float64
	Sigma float64
	Src   rand.Source
}

// Get returns a tensor of the given shape drawn from the configured normal
// distribution.
func (n *Normal) Get(shape tensor.Shape) *tensor.Tensor {
	sigma := n.Sigma
	if sigma == 0 {
		sigma = 1
	}
	return tensor.Randn(shape, n.Mu, sigma, n.Src)
}

// Uniform draws initial values from U(Low, High). Zero Low and High mean
// U(0, 1).
type Uniform struct {
	Stateful
	Low  float64
	High float64
	Src  rand.Source
}

// Get returns a tensor of the given shape drawn from the configured uniform
// distribution.
func (u *Uniform) Get(shape tensor.Shape) *tensor.Tensor {
	low, high := u.Low, u.High
	if low == 0 && high == 0 {
		high = 1
	}
	if high <= low {
		exceptions.Panicf("nn: Uniform initializer has empty interval [%v, %v)", low, high)
	}
	dist := distuv.Uniform{Min: low, Max: high, Src: u.Src}
	out := tensor.Zeros(shape)
	data := out.Data()
	for i := range data {
		data[i] = float32(dist.Rand())
	}
	return out
}

// ZerosInit fills parameters with zeros, the usual choice for biases.
type ZerosInit struct {
	Stateful
}

// Get returns a zero tensor of the given shape.
func (z *ZerosInit) Get(shape tensor.Shape) *tensor.Tensor {
	return tensor.Zeros(shape)
}
