package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/nn"
	"github.com/loom-ml/loom/tensor"
)

// setupDense pins exact weight and bias values through a queue initializer.
func setupDense(t *testing.T, weight, bias *tensor.Tensor) *nn.Dense {
	t.Helper()
	in := weight.Shape()[0]
	out := weight.Shape()[1]

	state := &nn.State{}
	layer := nn.NewDense(in, out)
	layer.OnState(state)
	state.CurrentLayerInputShape = tensor.Shape{in}
	layer.OnInitializer(&queueInit{queue: []*tensor.Tensor{weight, bias}})
	return layer
}

func TestDense_Forward(t *testing.T) {
	weight, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	require.NoError(t, err)
	bias, err := tensor.FromSlice([]float32{0.5, -0.5}, tensor.Shape{2})
	require.NoError(t, err)
	layer := setupDense(t, weight, bias)

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	y := layer.Forward(x)

	// y = x·W + b = [1+6+15, 2+8+18] + [0.5, -0.5]
	assert.Equal(t, []float32{22.5, 27.5}, y.Data())
}

func TestDense_Backward(t *testing.T) {
	weight, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	bias, _ := tensor.FromSlice([]float32{0, 0}, tensor.Shape{2})
	layer := setupDense(t, weight, bias)

	x, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	layer.Forward(x)

	dy, _ := tensor.FromSlice([]float32{1, -1}, tensor.Shape{2})
	res := layer.Backward(dy)

	require.Len(t, res.ParameterGradients, 2)

	// dW = xᵀ·dy
	assert.Equal(t, []float32{1, -1, 2, -2, 3, -3}, res.ParameterGradients[0].Data())
	// db = dy
	assert.Equal(t, []float32{1, -1}, res.ParameterGradients[1].Data())
	// dx = dy·Wᵀ
	assert.Equal(t, []float32{-1, -1, -1}, res.InputGradient.Data())
	assert.True(t, res.InputGradient.Shape().Equal(x.Shape()))
}

func TestDense_ParameterOrder(t *testing.T) {
	weight := tensor.Zeros(tensor.Shape{3, 2})
	bias := tensor.Zeros(tensor.Shape{2})
	layer := setupDense(t, weight, bias)

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Same(t, weight, params[0])
	assert.Same(t, bias, params[1])
}

func TestDense_ForwardShapeChecked(t *testing.T) {
	layer := setupDense(t, tensor.Zeros(tensor.Shape{3, 2}), tensor.Zeros(tensor.Shape{2}))
	require.Panics(t, func() { layer.Forward(tensor.Ones(tensor.Shape{4})) })
}

func TestDense_BackwardRequiresForward(t *testing.T) {
	layer := setupDense(t, tensor.Zeros(tensor.Shape{3, 2}), tensor.Zeros(tensor.Shape{2}))
	require.Panics(t, func() { layer.Backward(tensor.Ones(tensor.Shape{2})) })
}

func TestDense_ForwardRequiresInitializer(t *testing.T) {
	layer := nn.NewDense(3, 2)
	require.Panics(t, func() { layer.Forward(tensor.Ones(tensor.Shape{3})) })
}

// TestDense_TrainsOnLinearTarget fits y = 2x with plain gradient descent; a
// few hundred steps must drive the single weight close to 2.
func TestDense_TrainsOnLinearTarget(t *testing.T) {
	state := &nn.State{}
	layer := nn.NewDense(1, 1)
	layer.OnState(state)
	state.CurrentLayerInputShape = tensor.Shape{1}
	layer.OnInitializer(&nn.ZerosInit{})
	layer.OnOptimizer(func() nn.Optimizer { return newBatchSGD(0.1, 1) })

	for i := 0; i < 300; i++ {
		x := float32(i%4) - 1.5 // cycle through a few sample points
		input, _ := tensor.FromSlice([]float32{x}, tensor.Shape{1})
		pred := layer.Forward(input)

		// d(MSE)/dy for target 2x
		dy, _ := tensor.FromSlice([]float32{2 * (pred.At(0) - 2*x)}, tensor.Shape{1})
		res := layer.Backward(dy)
		layer.Optimize(res.ParameterGradients)
	}

	assert.InDelta(t, 2.0, layer.Parameters()[0].At(0, 0), 1e-2)
	assert.InDelta(t, 0.0, layer.Parameters()[1].At(0), 1e-2)
	assert.Equal(t, 300, state.Step)
}
