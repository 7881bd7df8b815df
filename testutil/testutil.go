// Package testutil provides deterministic fixtures for sampler tests.
//
// This package is intended for use in tests and benchmarks only. It
// generates small synthetic mixtures with known structure so tests can
// assert against ground truth.
package testutil

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/gibbs/randvar"
)

// BinaryMixture draws n rows per cluster from product-of-Bernoulli
// components with the given per-cluster probability vectors. Returns the
// rows and the true 1-based cluster label of each row, cluster by
// cluster.
func BinaryMixture(seed uint64, n int, clusterProbs [][]float64) (rows [][]float64, labels []int) {
	src := randvar.New(seed)

	for c, probs := range clusterProbs {
		for i := 0; i < n; i++ {
			row := make([]float64, len(probs))
			for j, p := range probs {
				hit, err := src.Bernoulli(p)
				if err != nil {
					panic(err)
				}
				if hit {
					row[j] = 1
				}
			}
			rows = append(rows, row)
			labels = append(labels, c+1)
		}
	}

	return rows, labels
}

// GaussianMixture draws n rows per cluster from multivariate normals with
// the given means and shared spherical variance. Returns the rows and the
// true 1-based cluster label of each row.
func GaussianMixture(seed uint64, n int, means [][]float64, variance float64) (rows [][]float64, labels []int) {
	src := randvar.New(seed)

	for c, mean := range means {
		cov := Eye(len(mean), variance)
		for i := 0; i < n; i++ {
			row, err := src.MVNormal(mean, cov)
			if err != nil {
				panic(err)
			}
			rows = append(rows, row)
			labels = append(labels, c+1)
		}
	}

	return rows, labels
}

// Eye returns scale times the d×d identity matrix.
func Eye(d int, scale float64) *mat.SymDense {
	s := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		s.SetSym(i, i, scale)
	}
	return s
}
