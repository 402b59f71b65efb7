package mlp

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

func neuronName(layer, index int) string { return fmt.Sprintf("n%d_%d", layer, index) }

// ToDot renders the network as a graphviz digraph. Every layer is a cluster and
// every connection is an edge labelled with its weight.
func (n *Network) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)
	g.AddAttr("G", "rankdir", "LR")

	for i, l := range n.layers {
		cluster := fmt.Sprintf("cluster_%d", i)
		g.AddSubGraph("G", cluster, map[string]string{
			"label": fmt.Sprintf("\"layer %d\"", i),
		})
		for j := range l {
			attrs := map[string]string{
				"label": fmt.Sprintf("\"%d:%d\\n%.3f\"", i, j, l[j].output),
			}
			if j == len(l)-1 {
				attrs["shape"] = "box"
				attrs["style"] = "dashed"
			}
			g.AddNode(cluster, neuronName(i, j), attrs)
		}
	}

	for i := 0; i < len(n.layers)-1; i++ {
		for j := range n.layers[i] {
			for k, c := range n.layers[i][j].conns {
				g.AddEdge(neuronName(i, j), neuronName(i+1, k), true, map[string]string{
					"label": fmt.Sprintf("\"%.3f\"", c.Weight),
				})
			}
		}
	}
	return g.String()
}
