package conjugate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/randvar"
)

// Compile time check to ensure NormalInverseWishart satisfies Engine.
var _ Engine = (*NormalInverseWishart)(nil)

// NIWPosterior holds the closed-form posterior parameters of a
// Normal-Inverse-Wishart update. Exposed so callers can cross-check draws
// against the analytic form.
type NIWPosterior struct {
	KN     float64
	VN     float64
	MuN    []float64
	GammaN *mat.SymDense
}

// NormalInverseWishart is the conjugate engine for continuous data: a
// Normal-Inverse-Wishart prior (k0, v0, mu0, Gamma0) updated with the
// cluster's sample mean and scatter.
type NormalInverseWishart struct {
	k0     float64
	v0     float64
	mu0    []float64
	gamma0 *mat.SymDense
}

// NewNormalInverseWishart validates the prior and builds an engine.
// Requirements: k0 > 0, v0 > d-1, Gamma0 symmetric positive definite with
// dimension matching mu0.
func NewNormalInverseWishart(k0, v0 float64, mu0 []float64, gamma0 *mat.SymDense) (*NormalInverseWishart, error) {
	d := len(mu0)
	if d == 0 {
		return nil, &randvar.InvalidParameterError{Param: "mu0", Reason: "empty mean vector"}
	}
	if !(k0 > 0) {
		return nil, &randvar.InvalidParameterError{Param: "k0", Reason: fmt.Sprintf("must be positive, got %v", k0)}
	}
	if !(v0 > float64(d-1)) {
		return nil, &randvar.InvalidParameterError{Param: "v0", Reason: fmt.Sprintf("must exceed dim-1 = %d, got %v", d-1, v0)}
	}
	if gamma0 == nil || gamma0.SymmetricDim() != d {
		return nil, &randvar.InvalidParameterError{Param: "gamma0", Reason: "dimension does not match mu0"}
	}

	var chol mat.Cholesky
	if !chol.Factorize(gamma0) {
		return nil, &randvar.InvalidParameterError{Param: "gamma0", Reason: "not positive definite"}
	}

	mu := make([]float64, d)
	copy(mu, mu0)

	g := mat.NewSymDense(d, nil)
	g.CopySym(gamma0)

	return &NormalInverseWishart{k0: k0, v0: v0, mu0: mu, gamma0: g}, nil
}

// Dim returns the number of variables.
func (e *NormalInverseWishart) Dim() int { return len(e.mu0) }

// PosteriorParams computes the closed-form posterior parameters
//
//	kn = k0 + n_k
//	vn = v0 + n_k
//	mun = (k0/kn)*mu0 + (n_k/kn)*sampleMean
//	Gamman = Gamma0 + scatter + (k0*n_k/kn)*(sampleMean-mu0)(sampleMean-mu0)^T
//
// without drawing. Returns ErrEmptyCluster when members has no rows.
func (e *NormalInverseWishart) PosteriorParams(members *mat.Dense) (*NIWPosterior, error) {
	if members == nil {
		return nil, ErrEmptyCluster
	}

	n, d := members.Dims()
	if n == 0 {
		return nil, ErrEmptyCluster
	}
	if d != len(e.mu0) {
		return nil, &model.ErrDimensionMismatch{Expected: len(e.mu0), Actual: d}
	}

	nk := float64(n)
	kn := e.k0 + nk
	vn := e.v0 + nk

	// Sample mean.
	mean := make([]float64, d)
	for i := 0; i < n; i++ {
		row := members.RawRowView(i)
		for j := 0; j < d; j++ {
			mean[j] += row[j]
		}
	}
	for j := 0; j < d; j++ {
		mean[j] /= nk
	}

	// Scatter about the sample mean.
	scatter := mat.NewSymDense(d, nil)
	diff := make([]float64, d)
	for i := 0; i < n; i++ {
		row := members.RawRowView(i)
		for j := 0; j < d; j++ {
			diff[j] = row[j] - mean[j]
		}
		scatter.SymRankOne(scatter, 1, mat.NewVecDense(d, diff))
	}

	mun := make([]float64, d)
	for j := 0; j < d; j++ {
		mun[j] = (e.k0/kn)*e.mu0[j] + (nk/kn)*mean[j]
	}

	gamman := mat.NewSymDense(d, nil)
	gamman.AddSym(e.gamma0, scatter)
	for j := 0; j < d; j++ {
		diff[j] = mean[j] - e.mu0[j]
	}
	gamman.SymRankOne(gamman, e.k0*nk/kn, mat.NewVecDense(d, diff))

	return &NIWPosterior{KN: kn, VN: vn, MuN: mun, GammaN: gamman}, nil
}

// Posterior draws (Mu, Sigma) from the posterior: Sigma ~
// InverseWishart(vn, Gamman), then Mu ~ Normal(mun, Sigma/kn).
func (e *NormalInverseWishart) Posterior(members *mat.Dense, src *randvar.Source) (model.Component, error) {
	post, err := e.PosteriorParams(members)
	if err != nil {
		return nil, err
	}

	return drawNIW(post.KN, post.VN, post.MuN, post.GammaN, src)
}

// Prior draws (Mu, Sigma) from the prior alone: Sigma ~
// InverseWishart(v0, Gamma0), Mu ~ Normal(mu0, Sigma/k0). This is the
// explicit n_k = 0 fallback.
func (e *NormalInverseWishart) Prior(src *randvar.Source) (model.Component, error) {
	return drawNIW(e.k0, e.v0, e.mu0, e.gamma0, src)
}

func drawNIW(k, v float64, mu []float64, gamma *mat.SymDense, src *randvar.Source) (model.Component, error) {
	sigma, err := src.InvWishart(v, gamma)
	if err != nil {
		return nil, err
	}

	d := len(mu)
	scaled := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			scaled.SetSym(i, j, sigma.At(i, j)/k)
		}
	}

	mean, err := src.MVNormal(mu, scaled)
	if err != nil {
		return nil, err
	}

	return model.NewGaussianComponent(mean, sigma)
}
