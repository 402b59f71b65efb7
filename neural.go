package neural

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/flexus404/Neural-Network/mlp"
	"github.com/flexus404/Neural-Network/traindata"
	"github.com/pkg/errors"
)

// Ensemble is the top level structure of the API. It owns several independently
// constructed networks (cells), trains all of them on the same examples and
// keeps track of which one does best. Cells share no state.
type Ensemble struct {
	// state
	Statistics
	Cells []*mlp.Network
	names []string
	epoch int

	// config
	conf Config
	r    *rand.Rand

	// io
	enc    ProgressEncoder
	buf    bytes.Buffer
	logger *log.Logger
}

// New creates an ensemble. It panics if the config is not valid.
func New(conf Config) *Ensemble {
	if !conf.IsValid() {
		panic("Config is not valid. Unable to proceed")
	}
	if conf.Name == "" {
		conf.Name = "UNNAMED ENSEMBLE"
	}

	retVal := &Ensemble{
		Statistics: makeStatistics(),
		conf:       conf,
		r:          rand.New(rand.NewSource(conf.Seed)),
		enc:        conf.Encoder,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	for i := 0; i < conf.Cells; i++ {
		var n *mlp.Network
		if len(conf.Topology) > 0 {
			n = mlp.New(conf.Topology, conf.NNConf, retVal.r)
		} else {
			n = mlp.NewRandom(conf.Inputs, conf.Outputs, conf.NNConf, retVal.r)
		}
		retVal.Cells = append(retVal.Cells, n)
		retVal.names = append(retVal.names, fmt.Sprintf("cell-%d", i))
		retVal.logger.Printf("Created %s with topology %v", retVal.names[i], n.Topology())
	}
	return retVal
}

// Learn trains every cell for up to epochs passes over the set. It stops early
// once the best cell's mean error reaches the configured target error.
//
// A cell that diverges is logged and keeps its NaN error. It is never chosen as the best cell.
func (e *Ensemble) Learn(set *traindata.Set, epochs int) error {
	for i, n := range e.Cells {
		if err := set.Check(n.Topology()); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("training set does not fit %s", e.names[i]))
		}
	}
	xs, ys, err := set.Tensors()
	if err != nil {
		return err
	}

	for end := e.epoch + epochs; e.epoch < end; e.epoch++ {
		e.logger.Printf("Epoch %d", e.epoch)
		e.logger.SetPrefix("\t")
		for i, n := range e.Cells {
			if err := mlp.Train(n, xs, ys, 1); err != nil {
				e.logger.Printf("%s: %v", e.names[i], err)
			}
		}
		errs := e.Errors()
		e.update(e.names, errs)
		best := bestOf(errs)
		e.logger.Printf("Best %s, error %v. Mean error %v", e.names[best], errs[best], meanOf(errs))
		e.logger.SetPrefix("")

		if e.enc != nil {
			if err := e.enc.Encode(e); err != nil {
				return errors.WithMessage(err, "Unable to encode progress")
			}
		}
		if float64(errs[best]) <= e.conf.TargetError {
			log.Printf("%s reached error %v in epoch %d", e.names[best], errs[best], e.epoch)
			e.epoch++
			break
		}
	}
	if e.enc != nil {
		return errors.WithMessage(e.enc.Flush(), "Unable to flush progress")
	}
	return nil
}

// Errors returns the running mean error of every cell.
func (e *Ensemble) Errors() []float32 {
	retVal := make([]float32, len(e.Cells))
	for i, n := range e.Cells {
		retVal[i] = float32(n.MeanError())
	}
	return retVal
}

// Best returns the index of the cell with the lowest running mean error.
func (e *Ensemble) Best() int { return bestOf(e.Errors()) }

// BestNetwork returns the cell with the lowest running mean error.
func (e *Ensemble) BestNetwork() *mlp.Network { return e.Cells[e.Best()] }

// Save saves every cell into prefix.<i>.txt. Every cell is attempted even if one fails.
func (e *Ensemble) Save(prefix string) error {
	var errs manyErr
	for i, n := range e.Cells {
		if err := n.Save(cellFile(prefix, i)); err != nil {
			errs = append(errs, errors.WithMessage(err, e.names[i]))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Restore replaces every cell with the one saved in prefix.<i>.txt. A cell that
// cannot be restored is recreated from scratch with its current topology.
func (e *Ensemble) Restore(prefix string) {
	for i, n := range e.Cells {
		e.Cells[i] = mlp.Restore(cellFile(prefix, i), n.Topology(), e.conf.NNConf, e.r)
		e.logger.Printf("Restored %s with topology %v", e.names[i], e.Cells[i].Topology())
	}
}

func (e *Ensemble) Epoch() int   { return e.epoch }
func (e *Ensemble) Name() string { return e.conf.Name }

// Names returns the names of the cells, in order.
func (e *Ensemble) Names() []string { return e.names }

// Log writes the execution log of the ensemble.
func (e *Ensemble) Log(w io.Writer) { fmt.Fprint(w, e.buf.String()) }

func cellFile(prefix string, i int) string { return fmt.Sprintf("%s.%d.txt", prefix, i) }
