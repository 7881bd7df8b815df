package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hupe1980/gibbs"
	"github.com/hupe1980/gibbs/conjugate"
	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/testutil"
)

func main() {
	seed := uint64(4711)
	sweeps := 200

	// Two well-separated binary clusters, 50 observations each.
	rows, init := testutil.BinaryMixture(seed, 50, [][]float64{
		{0.9, 0.9, 0.1, 0.1},
		{0.1, 0.1, 0.9, 0.9},
	})

	data, err := model.NewBinaryDataset(rows)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := conjugate.NewUniformBetaBernoulli(data.Dim())
	if err != nil {
		log.Fatal(err)
	}

	s, err := gibbs.New(data, 2, engine, model.Assignment(init),
		gibbs.WithSeed(seed),
		gibbs.WithWorkerCount(4),
		gibbs.WithEmptyClusterFallback(),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Run ---")
	fmt.Println("Observations:", data.Len())
	fmt.Println("Sweeps:", sweeps)

	start := time.Now()

	trace, err := s.Run(context.Background(), sweeps)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Elapsed:", time.Since(start))

	last, _ := trace.Last()
	fmt.Println("Final counts:", last.Counts)
	fmt.Printf("Final weights: %.3f\n", last.Weights)
	for j, comp := range last.Components {
		fmt.Printf("Cluster %d probs: %.3f\n", j+1, comp.(*model.BernoulliComponent).Probs())
	}

	f, err := os.Create("trace.gtrc")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := trace.Encode(f, gibbs.WithCompression(gibbs.CompressionGzip)); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Trace written to trace.gtrc")
}
