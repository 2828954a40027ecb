package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/loom-ml/loom/nn"
	"github.com/loom-ml/loom/tensor"
)

// TestXavier_VarianceMatchesFanIn checks the variance-scaling rule: with a
// (784,) input shape the population variance of the draws must approach
// 1/784 for a large element count.
func TestXavier_VarianceMatchesFanIn(t *testing.T) {
	state := &nn.State{CurrentLayerInputShape: tensor.Shape{784}}
	init := nn.NewXavierSeeded(42)
	init.OnState(state)

	values := init.Get(tensor.Shape{200, 500})
	require.True(t, values.Shape().Equal(tensor.Shape{200, 500}))

	samples := make([]float64, values.NumElements())
	for i, v := range values.Data() {
		samples[i] = float64(v)
	}

	mean, variance := stat.MeanVariance(samples, nil)
	assert.InDelta(t, 0, mean, 1e-3)
	assert.InEpsilon(t, 1.0/784, variance, 0.05)
}

// TestXavier_FanInIsShapeProduct checks that a multi-dimensional input shape
// contributes the product of its dimensions, not just the leading one.
func TestXavier_FanInIsShapeProduct(t *testing.T) {
	state := &nn.State{CurrentLayerInputShape: tensor.Shape{28, 28}}
	init := nn.NewXavierSeeded(7)
	init.OnState(state)

	values := init.Get(tensor.Shape{400, 250})
	samples := make([]float64, values.NumElements())
	for i, v := range values.Data() {
		samples[i] = float64(v)
	}
	assert.InEpsilon(t, 1.0/784, stat.Variance(samples, nil), 0.05)
}

func TestXavier_RequiresState(t *testing.T) {
	init := nn.NewXavier()
	require.Panics(t, func() { init.Get(tensor.Shape{3, 3}) })
}

func TestXavier_RequiresInputShape(t *testing.T) {
	// Attached state whose input shape was never recorded by the driver:
	// proceeding would yield a silently wrong scale, so Get must refuse.
	init := nn.NewXavier()
	init.OnState(&nn.State{})
	require.Panics(t, func() { init.Get(tensor.Shape{3, 3}) })
}

func TestNormal_DefaultSigma(t *testing.T) {
	init := &nn.Normal{}
	values := init.Get(tensor.Shape{100, 100})

	samples := make([]float64, values.NumElements())
	for i, v := range values.Data() {
		samples[i] = float64(v)
	}
	assert.InEpsilon(t, 1.0, stat.Variance(samples, nil), 0.1)
}

func TestUniform_Bounds(t *testing.T) {
	init := &nn.Uniform{Low: -2, High: 3}
	values := init.Get(tensor.Shape{1000})
	for _, v := range values.Data() {
		assert.GreaterOrEqual(t, v, float32(-2))
		assert.Less(t, v, float32(3))
	}
}

func TestUniform_EmptyIntervalPanics(t *testing.T) {
	init := &nn.Uniform{Low: 1, High: 1}
	require.Panics(t, func() { init.Get(tensor.Shape{4}) })
}

func TestZerosInit(t *testing.T) {
	init := &nn.ZerosInit{}
	values := init.Get(tensor.Shape{2, 3})
	require.True(t, values.Shape().Equal(tensor.Shape{2, 3}))
	for _, v := range values.Data() {
		assert.Equal(t, float32(0), v)
	}
}
