//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/crp"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/gen"
	"github.com/e-gun/LDAWorkshop/internal/lda"
	"github.com/e-gun/LDAWorkshop/internal/lnch"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/e-gun/LDAWorkshop/internal/vis"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/e-gun/LDAWorkshop/internal/xpl"
	"github.com/go-echarts/go-echarts/v2/components"
	"golang.org/x/exp/rand"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"
)

//
// THE PIPELINE: load -> vectorize -> fit (or load) -> explore
//

// Run - everything one invocation knows; each stage is complete before the next one starts
type Run struct {
	Cfg   *lnch.Configuration
	Docs  []crp.Document
	Vocab *vec.Vocabulary
	DTM   *vec.DocTermMatrix
	Model *lda.Model
	Meta  *crp.Metadata
}

// RunPipeline - usecache lets a matching cached model stand in for a fresh fit
func RunPipeline(cfg *lnch.Configuration, usecache bool) (*Run, error) {
	const (
		MSG1 = "%s documents in %d groups loaded from %s (shuffle seed %d)"
		MSG2 = "%s x %s document-term matrix (%s nonzero)"
		MSG3 = "topic model ready: run %s"
		WRN1 = "metadata not loaded: %v"
	)

	start := time.Now()
	previous := time.Now()

	r := &Run{Cfg: cfg}

	// [a] corpus; the one shuffle draws from its own seeded generator

	rng := rand.New(rand.NewSource(cfg.LDA.Seed))
	docs, err := crp.LoadCorpus(cfg.CorpusDir, cfg.FilePattern, rng)
	if err != nil {
		return nil, err
	}
	r.Docs = docs
	Msg.Timer("A", fmt.Sprintf(MSG1, Msg.Count(len(docs)), len(gen.Unique(crp.Groups(docs))), cfg.CorpusDir, cfg.LDA.Seed), start, previous)

	// [b] vocabulary and counts

	previous = time.Now()
	fc, err := filterconfig(cfg)
	if err != nil {
		return nil, err
	}
	r.Vocab, r.DTM, err = vec.Vectorize(docs, fc)
	if err != nil {
		return nil, err
	}
	nd, nv := r.DTM.Dims()
	Msg.Timer("B", fmt.Sprintf(MSG2, Msg.Count(nd), Msg.Count(nv), Msg.Count(r.DTM.NNZ())), start, previous)

	// [c] inference

	previous = time.Now()
	if note := defaultsnote(cfg); note != "" {
		Msg.NOTE(note)
	}
	r.Model, err = lda.FitOrLoad(r.DTM, r.Vocab, cfg.LDA, cfg.CacheDir, usecache)
	if err != nil {
		return nil, err
	}
	Msg.Timer("C", fmt.Sprintf(MSG3, r.Model.RunID), start, previous)

	// [d] display-only extras

	if cfg.MetadataFile != "" {
		r.Meta, err = crp.LoadMetadata(cfg.MetadataFile, cfg.MetaIDColumn)
		if err != nil {
			Msg.WARN(fmt.Sprintf(WRN1, err))
			r.Meta = nil
		}
	}
	return r, nil
}

// filterconfig - the stop list lives in the config directory; an extra file is added on top of it
func filterconfig(cfg *lnch.Configuration) (vec.FilterConfig, error) {
	fc := vec.DefaultFilterConfig()
	fc.MinDF = cfg.MinDF
	fc.TokenPattern = cfg.TokenPattern

	if dir := lnch.ConfDir(); dir != "" {
		fc.Stopwords = vec.ReadStopConfig(dir)
	}
	if cfg.ExtraStops != "" {
		extra, err := vec.ReadStopFile(cfg.ExtraStops)
		if err != nil {
			return fc, err
		}
		for s := range extra {
			fc.Stopwords[s] = struct{}{}
		}
	}
	return fc, nil
}

// defaultsnote - K and the iteration count are choices about the corpus; say so when nobody made them
func defaultsnote(cfg *lnch.Configuration) string {
	const (
		MSG1 = "using the built-in %s (%s); there is no right value for every corpus: set it with %s or in the configuration file"
	)
	var what, vals, flags []string
	if cfg.LDA.K == vv.LDATOPICS {
		what = append(what, "topic count")
		vals = append(vals, fmt.Sprintf("k=%d", cfg.LDA.K))
		flags = append(flags, "-k")
	}
	if cfg.LDA.Iterations == vv.LDAITER {
		what = append(what, "iteration count")
		vals = append(vals, fmt.Sprintf("%d iterations", cfg.LDA.Iterations))
		flags = append(flags, "-i")
	}
	if len(what) == 0 {
		return ""
	}
	return fmt.Sprintf(MSG1, strings.Join(what, " and "), strings.Join(vals, ", "), strings.Join(flags, "/"))
}

// GroupMix - the per-group means for this run
func (r *Run) GroupMix() (*dist.GroupMix, error) {
	return xpl.GroupMeans(r.Model.DocTopic, crp.Groups(r.Docs))
}

// Report - terminal tables over this run
func (r *Run) Report(w io.Writer) xpl.Report {
	return xpl.Report{Out: w, TW: r.Model.TopicWord, DT: r.Model.DocTopic, Meta: r.Meta, TopN: r.Cfg.TopN}
}

// WriteCharts - one html page: group means, the document map, the prepared intertopic view and the
// top videos of every topic
func (r *Run) WriteCharts(dir string, videos int) (string, error) {
	const (
		FILENAME = "ldw_k%03d.html"
		TITLE    = "%s: %d topics"
		VIDHEAD  = "%s: %s"
	)

	gm, err := r.GroupMix()
	if err != nil {
		return "", err
	}
	cc := []components.Charter{vis.GroupBarChart(gm)}

	sc, err := vis.DocScatter(r.Model.DocTopic)
	if err != nil {
		return "", err
	}
	cc = append(cc, sc)

	prep, err := vis.PrepareFromModel(r.Model.TopicWord, r.Model.DocTopic, r.DTM.DocLengths(), r.DTM.TermFrequencies())
	if err != nil {
		return "", err
	}
	pc, err := vis.RenderPrepared(prep, r.Cfg.VisLambda, r.Cfg.VisTerms)
	if err != nil {
		return "", err
	}
	cc = append(cc, pc...)

	var extras []template.HTML
	if videos > 0 {
		for k := 0; k < r.Model.TopicWord.K(); k++ {
			topic := dist.TopicLabel(k)
			rr, derr := xpl.TopDocuments(r.Model.DocTopic, topic, videos)
			if derr != nil {
				return "", derr
			}
			ww, werr := xpl.TopWordsAt(r.Model.TopicWord, k, 5)
			if werr != nil {
				return "", werr
			}
			extras = append(extras, vis.VideoBlock(fmt.Sprintf(VIDHEAD, topic, strings.Join(xpl.Words(ww), " ")), xpl.Words(rr)))
		}
	}

	k := r.Model.TopicWord.K()
	fn := filepath.Join(dir, fmt.Sprintf(FILENAME, k))
	if err = vis.WritePage(fn, fmt.Sprintf(TITLE, vv.MYNAME, k), extras, cc...); err != nil {
		return "", err
	}
	return fn, nil
}
