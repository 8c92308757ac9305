//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/e-gun/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//
// STOCHASTIC COLLAPSED VARIATIONAL BAYES (via nlp)
//

func init() {
	Register("scvb", newscvb)
}

type scvb struct {
	lda   *nlp.LatentDirichletAllocation
	td    mat.Matrix
	phi   *mat.Dense
	theta *mat.Dense
}

func newscvb(dtm *vec.DocTermMatrix, cfg Config, rng *rand.Rand) (Sampler, error) {
	l := nlp.NewLatentDirichletAllocation(cfg.K)
	l.Alpha = cfg.Alpha
	l.Eta = cfg.Eta
	l.Rnd = rng
	// one process: the minibatch order would otherwise depend on the scheduler
	l.Processes = 1
	l.BurnInPasses = cfg.BurnIn
	if cfg.XformPass > 0 {
		l.TransformationPasses = cfg.XformPass
	}
	return &scvb{lda: l, td: dtm.TermDoc()}, nil
}

func (s *scvb) Train(iterations int) error {
	s.lda.Iterations = iterations

	// nlp wants terms x docs and hands back topics x docs
	docsovertopics, err := s.lda.FitTransform(s.td)
	if err != nil {
		return err
	}

	s.theta = rownormalized(mat.DenseCopyOf(docsovertopics.T()))
	s.phi = rownormalized(mat.DenseCopyOf(s.lda.Components()))
	return nil
}

func (s *scvb) Phi() *mat.Dense {
	return s.phi
}

func (s *scvb) Theta() *mat.Dense {
	return s.theta
}

// LogLikelihood - nlp tracks perplexity internally but does not expose a trace
func (s *scvb) LogLikelihood() []float64 {
	return nil
}

// rownormalized - in place; a row with nothing in it becomes uniform
func rownormalized(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		for j := range row {
			if row[j] < 0 {
				row[j] = 0
			}
		}
		s := floats.Sum(row)
		if s > 0 {
			floats.Scale(1/s, row)
		} else {
			for j := range row {
				row[j] = 1 / float64(c)
			}
		}
	}
	return m
}
