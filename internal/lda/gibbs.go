//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"math"
)

//
// COLLAPSED GIBBS SAMPLING
//

func init() {
	Register("gibbs", newgibbs)
}

// gibbs - the count tables are flat slices updated in place; nkw[k*v+w], ndk[d*k+t]
type gibbs struct {
	k, v    int
	alpha   float64
	eta     float64
	refresh int
	rng     *rand.Rand

	words [][]int // words[d][i] is the vocabulary index of occurrence i in document d
	z     [][]int // z[d][i] is its current topic

	nkw []int
	nk  []int
	ndk []int
	nd  []int

	ll []float64
}

func newgibbs(dtm *vec.DocTermMatrix, cfg Config, rng *rand.Rand) (Sampler, error) {
	nd, nv := dtm.Dims()
	g := &gibbs{
		k:       cfg.K,
		v:       nv,
		alpha:   cfg.Alpha,
		eta:     cfg.Eta,
		refresh: cfg.Refresh,
		rng:     rng,
		words:   make([][]int, nd),
		z:       make([][]int, nd),
		nkw:     make([]int, cfg.K*nv),
		nk:      make([]int, cfg.K),
		ndk:     make([]int, nd*cfg.K),
		nd:      make([]int, nd),
	}

	// every occurrence starts in a topic drawn uniformly from 0..k-1
	for d := 0; d < nd; d++ {
		dtm.ForEachInRow(d, func(w int, n int) {
			for i := 0; i < n; i++ {
				g.words[d] = append(g.words[d], w)
			}
		})
		g.z[d] = make([]int, len(g.words[d]))
		for i, w := range g.words[d] {
			t := rng.Intn(g.k)
			g.z[d][i] = t
			g.add(d, w, t)
		}
	}
	return g, nil
}

func (g *gibbs) add(d, w, t int) {
	g.nkw[t*g.v+w]++
	g.nk[t]++
	g.ndk[d*g.k+t]++
	g.nd[d]++
}

func (g *gibbs) remove(d, w, t int) {
	g.nkw[t*g.v+w]--
	g.nk[t]--
	g.ndk[d*g.k+t]--
	g.nd[d]--
}

// Train - document by document, word by word; each draw sees the counts left by the previous one
func (g *gibbs) Train(iterations int) error {
	const (
		MSG1 = "gibbs: iteration %d of %d; log likelihood %.3f"
	)

	veta := float64(g.v) * g.eta
	p := make([]float64, g.k)

	for it := 1; it <= iterations; it++ {
		for d := range g.words {
			zd := g.z[d]
			for i, w := range g.words[d] {
				g.remove(d, w, zd[i])

				cum := 0.0
				for t := 0; t < g.k; t++ {
					cum += (float64(g.nkw[t*g.v+w]) + g.eta) / (float64(g.nk[t]) + veta) * (float64(g.ndk[d*g.k+t]) + g.alpha)
					p[t] = cum
				}
				nt := g.draw(p, cum)

				zd[i] = nt
				g.add(d, w, nt)
			}
		}

		if g.refresh > 0 && (it%g.refresh == 0 || it == iterations) {
			l := g.loglikelihood()
			g.ll = append(g.ll, l)
			Msg.PEEK(fmt.Sprintf(MSG1, it, iterations, l))
		}
	}
	return nil
}

// draw - p holds the running sums of the unnormalized scores
func (g *gibbs) draw(p []float64, total float64) int {
	u := g.rng.Float64() * total
	for t, c := range p {
		if u < c {
			return t
		}
	}
	return len(p) - 1
}

// loglikelihood - log p(w, z) = log p(w|z) + log p(z) with phi and theta integrated out
func (g *gibbs) loglikelihood() float64 {
	lg := func(x float64) float64 {
		r, _ := math.Lgamma(x)
		return r
	}

	veta := float64(g.v) * g.eta
	kalpha := float64(g.k) * g.alpha

	// the lg(eta) terms of the zero counts cancel against the normalizer, so only nonzero counts are visited
	l := 0.0
	for t := 0; t < g.k; t++ {
		for w := 0; w < g.v; w++ {
			if n := g.nkw[t*g.v+w]; n > 0 {
				l += lg(float64(n)+g.eta) - lg(g.eta)
			}
		}
		l -= lg(float64(g.nk[t]) + veta) - lg(veta)
	}

	for d := range g.nd {
		l += lg(kalpha) - float64(g.k)*lg(g.alpha)
		for t := 0; t < g.k; t++ {
			l += lg(float64(g.ndk[d*g.k+t]) + g.alpha)
		}
		l -= lg(float64(g.nd[d]) + kalpha)
	}
	return l
}

// Phi - (n_kw + eta) / (n_k + V*eta)
func (g *gibbs) Phi() *mat.Dense {
	veta := float64(g.v) * g.eta
	phi := mat.NewDense(g.k, g.v, nil)
	for t := 0; t < g.k; t++ {
		den := float64(g.nk[t]) + veta
		for w := 0; w < g.v; w++ {
			phi.Set(t, w, (float64(g.nkw[t*g.v+w])+g.eta)/den)
		}
	}
	return phi
}

// Theta - (n_dk + alpha) / (n_d + K*alpha); a document without tokens comes out uniform
func (g *gibbs) Theta() *mat.Dense {
	kalpha := float64(g.k) * g.alpha
	theta := mat.NewDense(len(g.nd), g.k, nil)
	for d := range g.nd {
		den := float64(g.nd[d]) + kalpha
		for t := 0; t < g.k; t++ {
			theta.Set(d, t, (float64(g.ndk[d*g.k+t])+g.alpha)/den)
		}
	}
	return theta
}

func (g *gibbs) LogLikelihood() []float64 {
	return append([]float64(nil), g.ll...)
}
