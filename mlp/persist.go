package mlp

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	topologyLabel   = "topologie:"
	neuronLabel     = "neurone:"
	connectionLabel = "connection:"

	maxRecordlessWidth = 1 << 16
)

// Save writes the network into filename, creating or truncating it.
func (n *Network) Save(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	if err = n.Encode(f); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

// Encode writes the text representation of the network.
//
// The output layer has no outgoing connections, so no record is written for its neurons.
func (n *Network) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(topologyLabel)
	for _, l := range n.layers {
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(len(l) - 1))
	}
	bw.WriteString(" \n")

	for i := 0; i < len(n.layers)-1; i++ {
		for j := range n.layers[i] {
			neur := &n.layers[i][j]
			bw.WriteString(neuronLabel)
			writeFields(bw, strconv.Itoa(i), strconv.Itoa(j), formatFloat(neur.eta), formatFloat(neur.alpha))
			for k, c := range neur.conns {
				bw.WriteString(connectionLabel)
				writeFields(bw, strconv.Itoa(i+1), strconv.Itoa(k), formatFloat(c.Weight))
			}
		}
	}
	return errors.Wrap(bw.Flush(), "Unable to write network")
}

// Load reads a network previously written by Save.
func Load(filename string, conf Config) (*Network, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	retVal, err := Decode(f, conf)
	if err != nil {
		return nil, errors.WithMessagef(err, "Unable to load %q", filename)
	}
	log.Printf("Restored network %v from %q", retVal.topology, filename)
	return retVal, nil
}

// Decode reads the text representation of a network. The learning rate and
// momentum of each neuron come from the records; conf supplies everything else.
//
// Neurons of the output layer have no records. They take the learning rate and
// momentum of the last record read.
func Decode(r io.Reader, conf Config) (*Network, error) {
	if !conf.IsValid() {
		panic("Config is not valid. Unable to proceed")
	}
	d := &decoder{sc: bufio.NewScanner(r)}

	topology, err := d.header()
	if err != nil {
		return nil, err
	}

	// A file with a single layer has no records to back the width of its header.
	if len(topology) == 1 && topology[0] > maxRecordlessWidth {
		return nil, errors.Wrapf(ErrHeader, "width %d of a network without records", topology[0])
	}

	// Neurons and connections are only added as their records are read. The
	// output layer is backed by the connections of the layer before it.
	eta, alpha := conf.LearningRate, conf.Momentum
	var layers []Layer
	for i, width := range topology {
		last := i == len(topology)-1
		var outputs int
		if !last {
			outputs = topology[i+1]
		}

		var layer Layer
		for j := 0; j <= width; j++ {
			if !last {
				if eta, alpha, err = d.neuron(i, j); err != nil {
					return nil, err
				}
			}
			conns := make([]Connection, 0)
			for k := 0; k < outputs; k++ {
				c, err := d.connection(i+1, k)
				if err != nil {
					return nil, err
				}
				conns = append(conns, c)
			}
			layer = append(layer, Neuron{
				index: j,
				conns: conns,
				eta:   eta,
				alpha: alpha,
			})
		}
		layer.Bias().output = 1.0
		layers = append(layers, layer)
	}

	return &Network{
		Config:   conf,
		layers:   layers,
		topology: topology,
	}, nil
}

type decoder struct {
	sc   *bufio.Scanner
	line int
}

// next returns the fields of the next line, with the label removed.
func (d *decoder) next(label string) ([]string, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		return nil, recordError{line: d.line + 1, msg: "unexpected end of file, expected " + label}
	}
	d.line++
	fields := strings.Fields(d.sc.Text())
	if len(fields) == 0 || fields[0] != label {
		return nil, recordError{line: d.line, text: d.sc.Text(), msg: "expected " + label}
	}
	return fields[1:], nil
}

func (d *decoder) header() ([]int, error) {
	fields, err := d.next(topologyLabel)
	if err != nil {
		return nil, errors.Wrap(ErrHeader, err.Error())
	}
	if len(fields) == 0 {
		return nil, errors.WithStack(ErrHeader)
	}
	retVal := make([]int, len(fields))
	for i, f := range fields {
		w, err := strconv.ParseUint(f, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrHeader, "width %q of layer %d", f, i)
		}
		if w == 0 {
			return nil, errors.Wrapf(ErrZeroWidth, "layer %d", i)
		}
		retVal[i] = int(w)
	}
	return retVal, nil
}

func (d *decoder) neuron(layer, index int) (eta, alpha float64, err error) {
	var fields []string
	if fields, err = d.next(neuronLabel); err != nil {
		return 0, 0, err
	}
	if len(fields) != 4 || !isInt(fields[0], layer) || !isInt(fields[1], index) {
		return 0, 0, recordError{line: d.line, text: d.sc.Text(), msg: "expected neuron " + strconv.Itoa(layer) + " " + strconv.Itoa(index)}
	}
	if eta, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return 0, 0, recordError{line: d.line, text: d.sc.Text(), msg: "bad learning rate"}
	}
	if alpha, err = strconv.ParseFloat(fields[3], 64); err != nil {
		return 0, 0, recordError{line: d.line, text: d.sc.Text(), msg: "bad momentum"}
	}
	return eta, alpha, nil
}

func (d *decoder) connection(layer, index int) (Connection, error) {
	fields, err := d.next(connectionLabel)
	if err != nil {
		return Connection{}, err
	}
	if len(fields) != 3 || !isInt(fields[0], layer) || !isInt(fields[1], index) {
		return Connection{}, recordError{line: d.line, text: d.sc.Text(), msg: "expected connection " + strconv.Itoa(layer) + " " + strconv.Itoa(index)}
	}
	w, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Connection{}, recordError{line: d.line, text: d.sc.Text(), msg: "bad weight"}
	}
	return MakeConnection(w), nil
}

func isInt(s string, want int) bool {
	v, err := strconv.Atoi(s)
	return err == nil && v == want
}

func writeFields(w *bufio.Writer, fields ...string) {
	for _, f := range fields {
		w.WriteByte(' ')
		w.WriteString(f)
	}
	w.WriteByte('\n')
}

// formatFloat writes the shortest representation that parses back to the same float64.
func formatFloat(a float64) string { return strconv.FormatFloat(a, 'g', -1, 64) }
