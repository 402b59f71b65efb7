package mlp

import (
	"math"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// Train is a basic online trainer. xs is a (examples, inputs) matrix and ys is a
// (examples, outputs) matrix, both of float64. Every epoch feeds each example once,
// in order, and backpropagates its targets before moving to the next one.
func Train(n *Network, xs, ys *tensor.Dense, epochs int) error {
	if xs.Dims() != 2 || ys.Dims() != 2 {
		return errors.Errorf("Train expects matrices. Got shapes %v and %v", xs.Shape(), ys.Shape())
	}
	if xs.Shape()[0] != ys.Shape()[0] {
		return errors.Errorf("Train: %d inputs but %d targets", xs.Shape()[0], ys.Shape()[0])
	}
	topology := n.topology
	if xs.Shape()[1] != topology[0] || ys.Shape()[1] != topology[len(topology)-1] {
		return errors.Errorf("Train: shapes %v and %v do not fit topology %v", xs.Shape(), ys.Shape(), topology)
	}

	inputs, err := native.MatrixF64(xs)
	if err != nil {
		return errors.Wrapf(err, "Train failed - inputs")
	}
	targets, err := native.MatrixF64(ys)
	if err != nil {
		return errors.Wrapf(err, "Train failed - targets")
	}

	for e := 0; e < epochs; e++ {
		for i := range inputs {
			n.FeedForward(inputs[i])
			n.BackPropagate(targets[i])
		}
		if math.IsNaN(n.meanErr) || math.IsInf(n.meanErr, 0) {
			return errors.Errorf("training diverged in epoch %d", e)
		}
	}
	return nil
}
