package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	neural "github.com/flexus404/Neural-Network"
	"github.com/flexus404/Neural-Network/encoding/gif"
	"github.com/flexus404/Neural-Network/mlp"
	"github.com/flexus404/Neural-Network/traindata"
)

var (
	data    = flag.String("data", "exemples/binaire.txt", "training data file")
	restore = flag.String("restore", "", "restore the network saved in this file before training")
	save    = flag.String("save", "save.txt", "save the trained network into this file")
	cells   = flag.Int("cells", 1, "number of networks to train. With more than one, the best is kept")
	epochs  = flag.Int("epochs", 2000, "passes over the training data")
	target  = flag.Float64("target", 0.01, "stop once the mean error is at or below this")
	seed    = flag.Int64("seed", 1, "seed for the random weights and topologies")
	gifOut  = flag.String("gif", "", "render the training progress into this gif (with more than one cell)")
	dotOut  = flag.String("dot", "", "write the trained network as a graphviz graph")
	stats   = flag.String("stats", "", "dump the error history as CSV (with more than one cell)")
)

func main() {
	flag.Parse()

	r, err := traindata.Open(*data)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	set, err := traindata.ReadAll(r)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err = set.Check(set.Topology); err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("%d examples for topology %v", len(set.Examples), set.Topology)

	var best *mlp.Network
	if *cells > 1 {
		best = learnEnsemble(set)
	} else {
		best = learnSingle(set)
	}

	for _, ex := range set.Examples {
		fmt.Printf("in: %v\tout: %v\ttarget: %v\n", ex.Inputs, best.Predict(ex.Inputs), ex.Targets)
	}
	fmt.Printf("mean error: %v\n", best.MeanError())

	if err = best.Save(*save); err != nil {
		log.Fatalf("%+v", err)
	}
	if *dotOut != "" {
		if err = os.WriteFile(*dotOut, []byte(best.ToDot()), 0644); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func learnSingle(set *traindata.Set) *mlp.Network {
	rng := rand.New(rand.NewSource(*seed))
	var n *mlp.Network
	if *restore != "" {
		n = mlp.Restore(*restore, set.Topology, mlp.DefaultConf(), rng)
	} else {
		n = mlp.New(set.Topology, mlp.DefaultConf(), rng)
	}
	xs, ys, err := set.Tensors()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	for e := 0; e < *epochs; e++ {
		if err = mlp.Train(n, xs, ys, 1); err != nil {
			log.Fatalf("%+v", err)
		}
		if n.MeanError() <= *target {
			log.Printf("Reached error %v in epoch %d", n.MeanError(), e)
			break
		}
	}
	return n
}

func learnEnsemble(set *traindata.Set) *mlp.Network {
	conf := neural.DefaultConfig(*cells, set.Topology[0], set.Topology[len(set.Topology)-1])
	conf.Name = *data
	conf.Seed = *seed
	conf.TargetError = *target

	if *gifOut != "" {
		f, err := os.OpenFile(*gifOut, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		defer f.Close()
		conf.Encoder = gif.NewEncoder(f, 800, 800)
	}

	e := neural.New(conf)
	if *restore != "" {
		e.Restore(*restore)
	}
	if err := e.Learn(set, *epochs); err != nil {
		log.Fatalf("%+v", err)
	}
	e.Log(os.Stderr)
	if *stats != "" {
		if err := e.Dump(*stats); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	best := e.Best()
	log.Printf("Best is %s with topology %v", e.Names()[best], e.Cells[best].Topology())
	return e.Cells[best]
}
