package mlp

import (
	"math/rand"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDot(t *testing.T) {
	n := New([]int{2, 3, 1}, DefaultConf(), rand.New(rand.NewSource(1)))
	n.FeedForward([]float64{0.5, -0.5})
	dot := n.ToDot()

	g, err := gographviz.Read([]byte(dot))
	require.NoError(t, err, dot)

	// (2+1)*3 + (3+1)*1 connections
	assert.Len(t, g.Edges.Edges, 13)
	assert.Len(t, g.Nodes.Nodes, 3+4+2)
	for _, name := range []string{"cluster_0", "cluster_1", "cluster_2"} {
		_, ok := g.SubGraphs.SubGraphs[name]
		assert.True(t, ok, "expected subgraph %v", name)
	}
}
