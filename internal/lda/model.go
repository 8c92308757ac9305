//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"time"
)

// Model - the output of one inference run, or of a cache load that stands in for one
type Model struct {
	RunID         uuid.UUID
	Config        Config
	TopicWord     *dist.TopicWord
	DocTopic      *dist.DocTopic
	LogLikelihood []float64
	Elapsed       time.Duration
	FromCache     bool
}

// Fit - validate everything, then sample; nothing is drawn from rng before the checks pass
func Fit(dtm *vec.DocTermMatrix, vocab *vec.Vocabulary, cfg Config) (*Model, error) {
	const (
		MSG1 = "Fit(): %s method; %d topics; %s iterations; %s documents x %s terms; seed %d"
		MSG2 = "Fit(): run %s finished"
	)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dtm == nil || vocab == nil {
		return nil, lderr.Invalid("no document-term matrix to fit")
	}
	nd, nv := dtm.Dims()
	if nd == 0 || nv == 0 {
		return nil, lderr.Invalid("empty document-term matrix (%d documents x %d terms)", nd, nv)
	}
	if vocab.Len() != nv {
		return nil, &lderr.ShapeMismatchError{What: "vocabulary", WantR: 1, WantC: nv, GotR: 1, GotC: vocab.Len()}
	}

	ctor, err := GetMethod(cfg.Method)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	Msg.NOTE(fmt.Sprintf(MSG1, cfg.Method, cfg.K, Msg.Count(cfg.Iterations), Msg.Count(nd), Msg.Count(nv), cfg.Seed))

	rng := rand.New(rand.NewSource(cfg.Seed))
	s, err := ctor(dtm, cfg, rng)
	if err != nil {
		return nil, err
	}
	if err = s.Train(cfg.Iterations); err != nil {
		return nil, fmt.Errorf("%s sampler: %w", cfg.Method, err)
	}

	tw, err := dist.NewTopicWord(s.Phi(), vocab.Terms())
	if err != nil {
		return nil, err
	}
	dt, err := dist.NewDocTopic(s.Theta(), dtm.DocIDs())
	if err != nil {
		return nil, err
	}

	m := &Model{
		RunID:         uuid.New(),
		Config:        cfg,
		TopicWord:     tw,
		DocTopic:      dt,
		LogLikelihood: s.LogLikelihood(),
		Elapsed:       time.Since(start),
	}
	Msg.Timer("F", fmt.Sprintf(MSG2, m.RunID), start, start)
	return m, nil
}
