package mlp

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type neuronSnapshot struct {
	Eta, Alpha float64
	Weights    []float64
}

func snapshot(n *Network) [][]neuronSnapshot {
	retVal := make([][]neuronSnapshot, len(n.layers))
	for i, l := range n.layers {
		for j := range l {
			s := neuronSnapshot{Eta: l[j].eta, Alpha: l[j].alpha}
			for _, c := range l[j].conns {
				s.Weights = append(s.Weights, c.Weight)
			}
			retVal[i] = append(retVal[i], s)
		}
	}
	return retVal
}

func TestEncode(t *testing.T) {
	n := New([]int{1, 1}, DefaultConf(), rand.New(rand.NewSource(1)))
	in := n.Layers()[0]
	in[0].conns[0].Weight = 0.5
	in[1].conns[0].Weight = -0.125
	in[1].SetLearningRate(0.2)

	var buf bytes.Buffer
	require.NoError(t, n.Encode(&buf))

	expected := "topologie: 1 1 \n" +
		"neurone: 0 0 0.15 0.5\n" +
		"connection: 1 0 0.5\n" +
		"neurone: 0 1 0.2 0.5\n" +
		"connection: 1 0 -0.125\n"
	assert.Equal(t, expected, buf.String())
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	for _, tc := range topologies {
		t.Run(tc.name, func(t *testing.T) {
			n := New(tc.topology, DefaultConf(), r)
			if len(tc.topology) > 1 {
				// train a bit so that weights are no longer the ones drawn
				for i := 0; i < 10; i++ {
					inputs := make([]float64, tc.topology[0])
					for j := range inputs {
						inputs[j] = r.Float64()
					}
					targets := make([]float64, tc.topology[len(tc.topology)-1])
					n.FeedForward(inputs)
					n.BackPropagate(targets)
				}
				n.Layers()[0][0].SetLearningRate(0.33)
				n.Layers()[0][0].SetMomentum(0.66)
			}

			var buf bytes.Buffer
			require.NoError(t, n.Encode(&buf))
			restored, err := Decode(&buf, DefaultConf())
			require.NoError(t, err)

			assert.Equal(t, n.Topology(), restored.Topology())
			checkShape(t, restored, tc.topology)
			if diff := cmp.Diff(snapshot(n), snapshot(restored), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("restored network differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "save.txt")
	n := New([]int{3, 4, 2}, DefaultConf(), rand.New(rand.NewSource(5)))
	require.NoError(t, n.Save(filename))

	loaded, err := Load(filename, DefaultConf())
	require.NoError(t, err)
	assert.Equal(t, snapshot(n), snapshot(loaded), "weights are written in round trip form")

	restored := Restore(filename, []int{9, 9}, DefaultConf(), rand.New(rand.NewSource(6)))
	assert.Equal(t, []int{3, 4, 2}, restored.Topology())
	assert.Equal(t, n.Predict([]float64{1, 2, 3}), restored.Predict([]float64{1, 2, 3}))
}

func TestSaveFails(t *testing.T) {
	n := New([]int{1, 1}, DefaultConf(), rand.New(rand.NewSource(5)))
	assert.Error(t, n.Save(filepath.Join(t.TempDir(), "missing", "save.txt")))
}

func TestRestoreFallsBack(t *testing.T) {
	dir := t.TempDir()
	zero := filepath.Join(dir, "zero.txt")
	require.NoError(t, os.WriteFile(zero, []byte("topologie: 2 0 1 \n"), 0644))
	huge := filepath.Join(dir, "huge.txt")
	require.NoError(t, os.WriteFile(huge, []byte("topologie: 2147483647 2147483647 \n"), 0644))

	tests := []struct {
		name     string
		filename string
	}{
		{"missing file", filepath.Join(dir, "nope.txt")},
		{"zero width", zero},
		{"huge widths", huge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n *Network
			require.NotPanics(t, func() {
				n = Restore(tt.filename, []int{2, 3, 1}, DefaultConf(), rand.New(rand.NewSource(1)))
			})
			assert.Equal(t, []int{2, 3, 1}, n.Topology())
			checkShape(t, n, []int{2, 3, 1})
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := "topologie: 1 1 \nneurone: 0 0 0.15 0.5\nconnection: 1 0 0.5\nneurone: 0 1 0.15 0.5\nconnection: 1 0 0.25\n"
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{"empty", "", ErrHeader},
		{"wrong label", "topology: 1 1\n", ErrHeader},
		{"no widths", "topologie:\n", ErrHeader},
		{"not a number", "topologie: 1 x 1\n", ErrHeader},
		{"negative", "topologie: 1 -1\n", ErrHeader},
		{"zero width", "topologie: 1 0\n", ErrZeroWidth},
		{"zero width last", "topologie: 3 2 0 \n", ErrZeroWidth},
		{"truncated", "topologie: 1 1 \nneurone: 0 0 0.15 0.5\n", ErrRecord},
		{"wrong neuron", strings.Replace(valid, "neurone: 0 1", "neurone: 0 2", 1), ErrRecord},
		{"wrong layer", strings.Replace(valid, "connection: 1 0 0.25", "connection: 2 0 0.25", 1), ErrRecord},
		{"bad weight", strings.Replace(valid, "0.25", "heavy", 1), ErrRecord},
		{"bad eta", strings.Replace(valid, "0 0 0.15", "0 0 fast", 1), ErrRecord},
		{"missing connection", strings.Replace(valid, "connection: 1 0 0.5\n", "", 1), ErrRecord},
		{"huge widths without records", "topologie: 2147483647 2147483647 \n", ErrRecord},
		{"huge output without records", "topologie: 1 2147483647 \nneurone: 0 0 0.15 0.5\n", ErrRecord},
		{"huge single layer", "topologie: 2147483647 \n", ErrHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Decode(strings.NewReader(tt.input), DefaultConf())
			assert.Nil(t, n)
			require.Error(t, err)
			assert.Equal(t, tt.cause, errors.Cause(err), "%+v", err)
		})
	}

	n, err := Decode(strings.NewReader(valid), DefaultConf())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, n.Topology())
}

func TestDecodeOutputLayerHyperparams(t *testing.T) {
	input := "topologie: 1 1 \nneurone: 0 0 0.1 0.2\nconnection: 1 0 0.5\nneurone: 0 1 0.3 0.4\nconnection: 1 0 0.25\n"
	n, err := Decode(strings.NewReader(input), DefaultConf())
	require.NoError(t, err)
	for _, neur := range n.Layers()[1] {
		assert.Equal(t, 0.3, neur.LearningRate())
		assert.Equal(t, 0.4, neur.Momentum())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), DefaultConf())
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
