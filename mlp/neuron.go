package mlp

import (
	"math"
	"math/rand"
)

// Neuron is a single activation unit. It owns the connections to every
// non-bias neuron of the next layer.
//
// A neuron never points at its neighbours. Neuron n of layer i+1 is fed by
// conns[n] of every neuron in layer i; index is that n.
type Neuron struct {
	output   float64
	gradient float64
	index    int
	conns    []Connection

	eta   float64 // learning rate
	alpha float64 // momentum
}

func makeNeuron(outputs, index int, conf Config, r *rand.Rand) Neuron {
	conns := make([]Connection, outputs)
	for i := range conns {
		conns[i] = randomConnection(r)
	}
	return Neuron{
		index: index,
		conns: conns,
		eta:   conf.LearningRate,
		alpha: conf.Momentum,
	}
}

func (n *Neuron) feedForward(prev Layer, lambda float64) {
	var sum float64
	for i := range prev {
		sum += prev[i].output * prev[i].conns[n.index].Weight
	}
	n.output = activation(sum, lambda)
}

func (n *Neuron) calcOutputGradient(target, lambda float64) {
	delta := target - n.output
	n.gradient = delta * activationDerivative(n.output, lambda)
}

func (n *Neuron) calcHiddenGradient(next Layer, lambda float64) {
	n.gradient = n.sumDOW(next) * activationDerivative(n.output, lambda)
}

// sumDOW sums the contributions of this neuron to the errors of the next layer. The bias of the next layer is skipped.
func (n *Neuron) sumDOW(next Layer) float64 {
	var sum float64
	for i := 0; i < len(next)-1; i++ {
		sum += n.conns[i].Weight * next[i].gradient
	}
	return sum
}

// updateIncomingWeights moves the weights of the connections that feed n.
// gradient already carries (target - output), so adding the delta reduces the error.
func (n *Neuron) updateIncomingWeights(prev Layer) {
	for i := range prev {
		c := &prev[i].conns[n.index]
		delta := n.eta*prev[i].output*n.gradient + n.alpha*c.Delta
		c.Delta = delta
		c.Weight += delta
	}
}

func (n *Neuron) Output() float64   { return n.output }
func (n *Neuron) Gradient() float64 { return n.gradient }
func (n *Neuron) Index() int        { return n.index }

// Connections returns a copy of the outgoing connections.
func (n *Neuron) Connections() []Connection {
	retVal := make([]Connection, len(n.conns))
	copy(retVal, n.conns)
	return retVal
}

// SetConnections replaces the outgoing connections. The number of connections must not change.
func (n *Neuron) SetConnections(conns []Connection) {
	if len(conns) != len(n.conns) {
		panic("SetConnections: expected the same number of connections as the next layer has neurons")
	}
	copy(n.conns, conns)
}

func (n *Neuron) LearningRate() float64     { return n.eta }
func (n *Neuron) SetLearningRate(a float64) { n.eta = a }
func (n *Neuron) Momentum() float64         { return n.alpha }
func (n *Neuron) SetMomentum(a float64)     { n.alpha = a }

func activation(sum, lambda float64) float64 { return math.Tanh(lambda * sum) }

// activationDerivative is evaluated on the activated output, not on the weighted sum.
// Training behaviour and every saved network depend on this form; do not "fix" it.
func activationDerivative(output, lambda float64) float64 {
	t := math.Tanh(lambda * output)
	return 1.0 - t*t
}
