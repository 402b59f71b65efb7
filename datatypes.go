package neural

import (
	"github.com/flexus404/Neural-Network/mlp"
)

type Config struct {
	Name     string
	Cells    int   // number of networks in the ensemble
	Inputs   int   // width of the input layer
	Outputs  int   // width of the output layer
	Topology []int // if set, every cell uses it. Otherwise each cell gets a random topology
	NNConf   mlp.Config
	Seed     int64

	TargetError float64 // Learn stops once the best cell's mean error is at or below this

	// extensions
	Encoder ProgressEncoder
}

// DefaultConfig makes a config for an ensemble of cells with random topologies.
func DefaultConfig(cells, inputs, outputs int) Config {
	return Config{
		Cells:   cells,
		Inputs:  inputs,
		Outputs: outputs,
		NNConf:  mlp.DefaultConf(),
		Seed:    1,
	}
}

func (conf Config) IsValid() bool {
	if conf.Cells < 1 || !conf.NNConf.IsValid() {
		return false
	}
	if len(conf.Topology) == 0 {
		return conf.Inputs > 0 && conf.Outputs > 0
	}
	for _, w := range conf.Topology {
		if w <= 0 {
			return false
		}
	}
	return conf.Inputs == conf.Topology[0] && conf.Outputs == conf.Topology[len(conf.Topology)-1]
}

// ProgressEncoder encodes the training progress of an ensemble as whatever.
//
// An example ProgressEncoder is the GIF Encoder. Another example would be a logger.
type ProgressEncoder interface {
	Encode(ms MetaState) error
	Flush() error
}

// MetaState is the state of an ensemble as seen by a ProgressEncoder.
type MetaState interface {
	Name() string
	Epoch() int
	Errors() []float32 // running mean error of each cell
	Best() int         // index of the cell with the lowest error
}
