package mlp

import "math/rand"

// Connection is a directed weight from a neuron to one neuron of the next layer.
type Connection struct {
	Weight float64
	Delta  float64 // last applied update, used by the momentum term
}

// randomConnection draws a weight uniformly in [0, 1).
func randomConnection(r *rand.Rand) Connection {
	return Connection{Weight: r.Float64()}
}

// MakeConnection makes a connection with a known weight. It is used when restoring a saved network.
func MakeConnection(weight float64) Connection { return Connection{Weight: weight} }
