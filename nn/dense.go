package nn

import (
	"github.com/gomlx/exceptions"

	"github.com/loom-ml/loom/tensor"
)

// Dense implements a fully connected layer over 1-D sample vectors.
//
// Performs the transformation: y = x·W + b
// where:
//   - x is the input vector with shape [in]
//   - W is the weight matrix with shape [in, out]
//   - b is the bias vector with shape [out]
//   - y is the output vector with shape [out]
//
// Parameters are reported in the order (weight, bias).
//
// Example:
//
//	layer := nn.NewDense(784, 128)
//	layer.OnState(state)
//	state.CurrentLayerInputShape = tensor.Shape{784}
//	layer.OnInitializer(nn.NewXavier())
//	layer.OnOptimizer(provider)
type Dense struct {
	Base
	inputSize  int
	outputSize int
	weight     *tensor.Tensor // [in, out]
	bias       *tensor.Tensor // [out]
	input      *tensor.Tensor // cached by Forward for Backward
}

var _ Layer = (*Dense)(nil)

// NewDense creates a fully connected layer mapping inputSize features to
// outputSize features. Parameters stay empty until OnInitializer runs.
func NewDense(inputSize, outputSize int) *Dense {
	return &Dense{
		Base: NewBase("dense", BaseConfig{
			InputShape:  tensor.Shape{inputSize},
			OutputShape: tensor.Shape{outputSize},
			Trainable:   true,
		}),
		inputSize:  inputSize,
		outputSize: outputSize,
	}
}

// OnInitializer populates weight and bias, one initializer draw per
// parameter, and registers them with the layer core.
func (d *Dense) OnInitializer(init Initializer) {
	d.weight = init.Get(tensor.Shape{d.inputSize, d.outputSize})
	d.bias = init.Get(tensor.Shape{d.outputSize})
	d.SetParameters(d.weight, d.bias)
}

// Forward computes y = x·W + b and caches x for the following Backward.
func (d *Dense) Forward(input *tensor.Tensor) *tensor.Tensor {
	if !input.Shape().Equal(d.InputShape()) {
		exceptions.Panicf("nn: dense: Forward input shape %s does not match declared input shape %s",
			input.Shape(), d.InputShape())
	}
	if d.weight == nil {
		exceptions.Panicf("nn: dense: Forward called before OnInitializer populated parameters")
	}
	d.input = input

	x := input.Data()
	w := d.weight.Data()
	out := d.bias.Clone()
	y := out.Data()
	for i := 0; i < d.inputSize; i++ {
		xi := x[i]
		row := w[i*d.outputSize:]
		for j := 0; j < d.outputSize; j++ {
			y[j] += xi * row[j]
		}
	}
	return out
}

// Backward applies the chain rule to the output gradient:
//
//	dW = xᵀ·dy   db = dy   dx = dy·Wᵀ
//
// returning dx as the input gradient and (dW, db) in parameter order.
func (d *Dense) Backward(outputGradient *tensor.Tensor) BackwardResult {
	if d.input == nil {
		exceptions.Panicf("nn: dense: Backward called before Forward cached an input")
	}
	if !outputGradient.Shape().Equal(d.OutputShape()) {
		exceptions.Panicf("nn: dense: output gradient shape %s does not match output shape %s",
			outputGradient.Shape(), d.OutputShape())
	}

	x := d.input.Data()
	w := d.weight.Data()
	dy := outputGradient.Data()

	weightGrad := tensor.Zeros(tensor.Shape{d.inputSize, d.outputSize})
	inputGrad := tensor.Zeros(tensor.Shape{d.inputSize})
	dw := weightGrad.Data()
	dx := inputGrad.Data()
	for i := 0; i < d.inputSize; i++ {
		row := w[i*d.outputSize:]
		for j := 0; j < d.outputSize; j++ {
			dw[i*d.outputSize+j] = x[i] * dy[j]
			dx[i] += row[j] * dy[j]
		}
	}

	return BackwardResult{
		InputGradient:      inputGrad,
		ParameterGradients: []*tensor.Tensor{weightGrad, outputGradient.Clone()},
	}
}
