package mlp

// Layer is an ordered list of neurons. The last neuron is always the bias, whose output is pinned to 1.
type Layer []Neuron

// Bias returns the bias neuron of the layer.
func (l Layer) Bias() *Neuron { return &l[len(l)-1] }

// Active returns the neurons of the layer without the bias.
func (l Layer) Active() Layer { return l[:len(l)-1] }
