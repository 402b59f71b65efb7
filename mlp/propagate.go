package mlp

import (
	"fmt"
	"math"
)

// FeedForward feeds the inputs through the network. It panics if the number of
// inputs differs from the number of input neurons.
func (n *Network) FeedForward(inputs []float64) {
	in := n.layers[0]
	if len(inputs) != len(in)-1 {
		panic(fmt.Sprintf("FeedForward: expected %d inputs. Got %d instead", len(in)-1, len(inputs)))
	}
	for i, v := range inputs {
		in[i].output = v
	}

	for l := 1; l < len(n.layers); l++ {
		prev := n.layers[l-1]
		current := n.layers[l]
		for i := range current.Active() {
			current[i].feedForward(prev, n.Lambda)
		}
	}
}

// BackPropagate computes the error of the last forward pass against targets,
// computes the gradients of every layer and updates the weights.
func (n *Network) BackPropagate(targets []float64) {
	out := n.layers[len(n.layers)-1]
	if len(targets) != len(out)-1 {
		panic(fmt.Sprintf("BackPropagate: expected %d targets. Got %d instead", len(out)-1, len(targets)))
	}

	// RMS error
	var sum float64
	for i, neur := range out.Active() {
		delta := targets[i] - neur.output
		sum += delta * delta
	}
	n.err = math.Sqrt(sum / float64(len(out)-1))
	n.meanErr = (n.meanErr*n.SmoothingWindow + n.err) / (n.SmoothingWindow + 1.0)

	// output gradients. The bias gets one too; its target is its own output.
	for i := range out {
		target := out[i].output
		if i < len(targets) {
			target = targets[i]
		}
		out[i].calcOutputGradient(target, n.Lambda)
	}

	// hidden gradients, from the last hidden layer down to the first one
	for l := len(n.layers) - 2; l > 0; l-- {
		hidden := n.layers[l]
		next := n.layers[l+1]
		for i := range hidden {
			hidden[i].calcHiddenGradient(next, n.Lambda)
		}
	}

	for l := len(n.layers) - 1; l > 0; l-- {
		layer := n.layers[l]
		prev := n.layers[l-1]
		for i := range layer.Active() {
			layer[i].updateIncomingWeights(prev)
		}
	}
}

// Results returns the outputs of the last layer, in order. The last value is the
// output of the bias neuron, which is always 1.
func (n *Network) Results() []float64 {
	out := n.layers[len(n.layers)-1]
	retVal := make([]float64, 0, len(out))
	for i := range out {
		retVal = append(retVal, out[i].output)
	}
	return retVal
}

// Predict feeds the inputs forwards and returns the results.
func (n *Network) Predict(inputs []float64) []float64 {
	n.FeedForward(inputs)
	return n.Results()
}
