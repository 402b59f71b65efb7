package mlp

import (
	"fmt"
	"log"
	"math/rand"
)

// Network is a fully connected feedforward network trained by backpropagation with momentum.
//
// A Network owns all its layers, neurons and connections. It is not safe for concurrent use.
type Network struct {
	Config

	layers   []Layer
	topology []int

	err     float64 // RMS error of the last example
	meanErr float64 // running mean of err
}

// New creates a network with the given topology. Each element of topology is the
// number of neurons in a layer, not counting the bias neuron that every layer gets.
//
// New panics if the config is invalid, the topology is empty or any layer is empty.
func New(topology []int, conf Config, r *rand.Rand) *Network {
	if !conf.IsValid() {
		panic("Config is not valid. Unable to proceed")
	}
	if len(topology) == 0 {
		panic("Cannot create a network with an empty topology")
	}
	for i, w := range topology {
		if w <= 0 {
			panic(fmt.Sprintf("Cannot create a network with %d neurons in layer %d", w, i))
		}
	}

	retVal := &Network{
		Config:   conf,
		topology: append([]int(nil), topology...),
		layers:   make([]Layer, 0, len(topology)),
	}
	for i, width := range topology {
		var outputs int
		if i < len(topology)-1 {
			outputs = topology[i+1]
		}
		layer := make(Layer, 0, width+1)
		for j := 0; j <= width; j++ {
			layer = append(layer, makeNeuron(outputs, j, conf, r))
		}
		layer.Bias().output = 1.0
		retVal.layers = append(retVal.layers, layer)
	}
	return retVal
}

// NewRandom creates a network with the given number of inputs and outputs and
// between zero and two hidden layers. Each hidden layer is between inputs and 2*inputs wide.
func NewRandom(inputs, outputs int, conf Config, r *rand.Rand) *Network {
	topology := []int{inputs}
	hidden := r.Intn(3)
	for i := 0; i < hidden; i++ {
		topology = append(topology, inputs+r.Intn(inputs+1))
	}
	topology = append(topology, outputs)
	return New(topology, conf, r)
}

// Restore loads a network saved in filename. If the file cannot be loaded for
// any reason, a new network with the given topology is created instead.
func Restore(filename string, topology []int, conf Config, r *rand.Rand) *Network {
	n, err := Load(filename, conf)
	if err != nil {
		log.Printf("Unable to restore network from %q, creating from scratch: %v", filename, err)
		return New(topology, conf, r)
	}
	return n
}

// Topology returns the width of each layer, not counting bias neurons.
func (n *Network) Topology() []int { return append([]int(nil), n.topology...) }

// Layers returns the layers of the network. The returned layers share memory with the network.
func (n *Network) Layers() []Layer { return n.layers }

// Error returns the RMS error of the last call to BackPropagate.
func (n *Network) Error() float64 { return n.err }

// MeanError returns the running mean of the RMS error.
func (n *Network) MeanError() float64 { return n.meanErr }

// SetSmoothingWindow sets the number of samples the running mean error is averaged over.
func (n *Network) SetSmoothingWindow(a float64) { n.SmoothingWindow = a }
