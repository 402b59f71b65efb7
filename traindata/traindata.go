// Package traindata reads training examples from a line oriented text file.
//
// The first line of the file holds the topology of the network the examples
// are meant for. Every following pair of lines is one example:
//
//	topologie: 2 4 1
//	in: 0 1
//	out: 1
//	in: 1 1
//	out: 0
package traindata

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

const (
	topologyLabel = "topologie:"
	inputLabel    = "in:"
	outputLabel   = "out:"
)

// ErrNoTopology is returned when the first line of the file is not a topology.
var ErrNoTopology = errors.New("training data has no topologie header")

// Example is one training pair.
type Example struct {
	Inputs  []float64
	Targets []float64
}

// Reader reads examples. The whole file is read when the Reader is created, so
// a Reader holds no open file.
type Reader struct {
	lines []string
	pos   int
}

// Open reads the training file.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return NewReader(f)
}

func NewReader(r io.Reader) (*Reader, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "Unable to read training data")
	}
	return &Reader{lines: lines}, nil
}

// Topology parses the header line.
func (r *Reader) Topology() ([]int, error) {
	if len(r.lines) == 0 {
		return nil, errors.WithStack(ErrNoTopology)
	}
	fields := strings.Fields(r.lines[0])
	if len(fields) == 0 || fields[0] != topologyLabel {
		return nil, errors.WithStack(ErrNoTopology)
	}
	var retVal []int
	for _, f := range fields[1:] {
		w, err := strconv.Atoi(f)
		if err != nil || w <= 0 {
			return nil, errors.Wrapf(ErrNoTopology, "bad width %q in header %q", f, r.lines[0])
		}
		retVal = append(retVal, w)
	}
	if len(retVal) == 0 {
		return nil, errors.Wrapf(ErrNoTopology, "header %q has no widths", r.lines[0])
	}
	return retVal, nil
}

// Count returns the number of examples: half the number of lines after the header.
func (r *Reader) Count() int {
	if len(r.lines) == 0 {
		return 0
	}
	return (len(r.lines) - 1) / 2
}

// Next returns the next example. A line that does not carry the expected label
// gives an empty slice for that half of the example. ok is false once the
// examples are exhausted.
func (r *Reader) Next() (ex Example, ok bool) {
	if r.pos == 0 {
		r.pos = 1 // skip the header
	}
	if r.pos+1 >= len(r.lines) {
		return Example{}, false
	}
	ex.Inputs = values(r.lines[r.pos], inputLabel)
	ex.Targets = values(r.lines[r.pos+1], outputLabel)
	r.pos += 2
	return ex, true
}

// Reset rewinds the reader to the first example.
func (r *Reader) Reset() { r.pos = 0 }

// values parses the numbers that follow label, stopping at the first one that is not a number.
func values(line, label string) []float64 {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != label {
		return nil
	}
	retVal := make([]float64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			break
		}
		retVal = append(retVal, v)
	}
	return retVal
}

// Set is a whole training file in memory.
type Set struct {
	Topology []int
	Examples []Example
}

// ReadAll reads the topology and every example.
func ReadAll(r *Reader) (*Set, error) {
	topology, err := r.Topology()
	if err != nil {
		return nil, err
	}
	retVal := &Set{Topology: topology}
	for ex, ok := r.Next(); ok; ex, ok = r.Next() {
		retVal.Examples = append(retVal.Examples, ex)
	}
	return retVal, nil
}

// Check reports whether every example fits a network with the given topology.
func (s *Set) Check(topology []int) error {
	if len(topology) == 0 {
		return errors.New("empty topology")
	}
	in, out := topology[0], topology[len(topology)-1]
	for i, ex := range s.Examples {
		if len(ex.Inputs) != in {
			return errors.Errorf("example %d has %d inputs. Expected %d", i, len(ex.Inputs), in)
		}
		if len(ex.Targets) != out {
			return errors.Errorf("example %d has %d targets. Expected %d", i, len(ex.Targets), out)
		}
	}
	return nil
}

// Tensors packs the examples into a (examples, inputs) and a (examples, outputs) matrix.
func (s *Set) Tensors() (xs, ys *tensor.Dense, err error) {
	if err = s.Check(s.Topology); err != nil {
		return nil, nil, err
	}
	if len(s.Examples) == 0 {
		return nil, nil, errors.New("no examples")
	}
	in, out := s.Topology[0], s.Topology[len(s.Topology)-1]
	xsBacking := make([]float64, 0, len(s.Examples)*in)
	ysBacking := make([]float64, 0, len(s.Examples)*out)
	for _, ex := range s.Examples {
		xsBacking = append(xsBacking, ex.Inputs...)
		ysBacking = append(ysBacking, ex.Targets...)
	}
	xs = tensor.New(tensor.WithBacking(xsBacking), tensor.WithShape(len(s.Examples), in))
	ys = tensor.New(tensor.WithBacking(ysBacking), tensor.WithShape(len(s.Examples), out))
	return xs, ys, nil
}
