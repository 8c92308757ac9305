//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

//
// CACHE: two flat arrays per K plus an optional manifest
//

// Manifest - what produced the arrays next to it
type Manifest struct {
	RunID         string    `json:"run_id"`
	Config        Config    `json:"config"`
	Documents     int       `json:"documents"`
	Terms         int       `json:"terms"`
	DocIDs        []string  `json:"doc_ids,omitempty"`
	Vocabulary    []string  `json:"vocabulary,omitempty"`
	Created       time.Time `json:"created"`
	ElapsedSecs   float64   `json:"elapsed_seconds"`
	LogLikelihood []float64 `json:"log_likelihood,omitempty"`
}

// CachePaths - the topic count is in every name so that several K can share a directory
func CachePaths(dir string, k int) (tw string, dt string, manifest string) {
	tw = filepath.Join(dir, fmt.Sprintf(vv.CACHETWFILE, k))
	dt = filepath.Join(dir, fmt.Sprintf(vv.CACHEDTFILE, k))
	manifest = filepath.Join(dir, fmt.Sprintf(vv.CACHEMANIFEST, k))
	return
}

// CacheExists - both arrays must be present; the manifest is optional
func CacheExists(dir string, k int) bool {
	tw, dt, _ := CachePaths(dir, k)
	for _, p := range []string{tw, dt} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// SaveModel - write both arrays and the manifest into dir
func SaveModel(dir string, m *Model) error {
	const (
		MSG1 = "SaveModel(): wrote %s"
	)

	if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return err
	}

	k := m.TopicWord.K()
	twfn, dtfn, mfn := CachePaths(dir, k)

	if err := writedense(twfn, m.TopicWord.Raw()); err != nil {
		return err
	}
	if err := writedense(dtfn, m.DocTopic.Raw()); err != nil {
		return err
	}

	nd, _ := m.DocTopic.Dims()
	_, nv := m.TopicWord.Dims()
	mf := Manifest{
		RunID:         m.RunID.String(),
		Config:        m.Config,
		Documents:     nd,
		Terms:         nv,
		DocIDs:        m.DocTopic.RowLabels(),
		Vocabulary:    m.TopicWord.ColLabels(),
		Created:       time.Now(),
		ElapsedSecs:   m.Elapsed.Seconds(),
		LogLikelihood: m.LogLikelihood,
	}
	js, err := json.MarshalIndent(mf, vv.JSONINDENT, vv.JSONINDENT)
	if err != nil {
		return err
	}
	if err = os.WriteFile(mfn, js, vv.WRITEPERMS); err != nil {
		return err
	}

	for _, f := range []string{twfn, dtfn, mfn} {
		Msg.FYI(fmt.Sprintf(MSG1, f))
	}
	return nil
}

// LoadModel - read the arrays for k topics; they must be exactly k x |V| and |D| x k and, if the manifest
// recorded them, carry the same documents and terms in the same order
func LoadModel(dir string, k int, vocab *vec.Vocabulary, docids []string) (*Model, error) {
	const (
		MSG1 = "LoadModel(): no manifest at %s; the run id is new"
		MSG2 = "LoadModel(): loaded run %s (%d topics) from %s"
		MSG3 = "LoadModel(): %s does not list documents and terms; row order cannot be checked"
	)

	if k < 1 {
		return nil, lderr.Invalid("number of topics must be >= 1, got %d", k)
	}
	if vocab == nil {
		return nil, lderr.Invalid("no vocabulary to align the cached arrays with")
	}

	twfn, dtfn, mfn := CachePaths(dir, k)

	phi, err := readdense(twfn)
	if err != nil {
		return nil, err
	}
	if r, c := phi.Dims(); r != k || c != vocab.Len() {
		return nil, &lderr.ShapeMismatchError{What: twfn, WantR: k, WantC: vocab.Len(), GotR: r, GotC: c}
	}

	theta, err := readdense(dtfn)
	if err != nil {
		return nil, err
	}
	if r, c := theta.Dims(); r != len(docids) || c != k {
		return nil, &lderr.ShapeMismatchError{What: dtfn, WantR: len(docids), WantC: k, GotR: r, GotC: c}
	}

	mf, err := readmanifest(mfn)
	nomanifest := errors.Is(err, fs.ErrNotExist)
	if err != nil && !nomanifest {
		return nil, err
	}

	if !nomanifest {
		if len(mf.DocIDs) == 0 || len(mf.Vocabulary) == 0 {
			Msg.WARN(fmt.Sprintf(MSG3, mfn))
		} else {
			if err = checklabels(dtfn, mf.DocIDs, docids); err != nil {
				return nil, err
			}
			if err = checklabels(twfn, mf.Vocabulary, vocab.Terms()); err != nil {
				return nil, err
			}
		}
	}

	tw, err := dist.NewTopicWord(phi, vocab.Terms())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", twfn, err)
	}
	dt, err := dist.NewDocTopic(theta, docids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dtfn, err)
	}

	m := &Model{
		RunID:     uuid.New(),
		Config:    Config{K: k, Method: "cache"},
		TopicWord: tw,
		DocTopic:  dt,
		FromCache: true,
	}

	if nomanifest {
		Msg.PEEK(fmt.Sprintf(MSG1, mfn))
	} else {
		if id, perr := uuid.Parse(mf.RunID); perr == nil {
			m.RunID = id
		}
		m.Config = mf.Config
		m.LogLikelihood = mf.LogLikelihood
		m.Elapsed = time.Duration(mf.ElapsedSecs * float64(time.Second))
	}

	Msg.NOTE(fmt.Sprintf(MSG2, m.RunID, k, dir))
	return m, nil
}

// FitOrLoad - use the cache for cfg.K when asked to and when it is there; otherwise fit and save (if dir is set);
// a cache that was written for other documents or terms is stale: it is refitted and overwritten
func FitOrLoad(dtm *vec.DocTermMatrix, vocab *vec.Vocabulary, cfg Config, dir string, usecache bool) (*Model, error) {
	const (
		MSG1 = "FitOrLoad(): cached run was made with %s; the current configuration asks for %s"
		MSG2 = "FitOrLoad(): ignoring stale cache (%v); refitting"
	)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if usecache && dir != "" && CacheExists(dir, cfg.K) {
		if dtm == nil {
			return nil, lderr.Invalid("no document-term matrix to align the cache with")
		}
		m, err := LoadModel(dir, cfg.K, vocab, dtm.DocIDs())
		var stale *lderr.AlignmentError
		switch {
		case errors.As(err, &stale):
			Msg.WARN(fmt.Sprintf(MSG2, err))
		case err != nil:
			return nil, err
		default:
			if m.Config.Method != "cache" && (m.Config.Seed != cfg.Seed || m.Config.Iterations != cfg.Iterations || m.Config.Method != cfg.Method) {
				Msg.WARN(fmt.Sprintf(MSG1, describe(m.Config), describe(cfg)))
			}
			return m, nil
		}
	}

	m, err := Fit(dtm, vocab, cfg)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		if err = SaveModel(dir, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// checklabels - the first position at which the cached labels and the current ones part ways
func checklabels(what string, cached []string, current []string) error {
	n := max(len(cached), len(current))
	for i := 0; i < n; i++ {
		var want, got string
		if i < len(current) {
			want = current[i]
		}
		if i < len(cached) {
			got = cached[i]
		}
		if want != got {
			return &lderr.AlignmentError{What: what, Index: i, Want: want, Got: got}
		}
	}
	return nil
}

func describe(c Config) string {
	return fmt.Sprintf("%s/%d iterations/seed %d", c.Method, c.Iterations, c.Seed)
}

func writedense(fn string, m *mat.Dense) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if _, err = m.MarshalBinaryTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", fn, err)
	}
	return f.Close()
}

func readdense(fn string) (*mat.Dense, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m mat.Dense
	if _, err = m.UnmarshalBinaryFrom(f); err != nil {
		return nil, &lderr.ParseError{Path: fn, Reason: err.Error()}
	}
	return &m, nil
}

func readmanifest(fn string) (Manifest, error) {
	var mf Manifest
	b, err := os.ReadFile(fn)
	if err != nil {
		return mf, err
	}
	if err = json.Unmarshal(b, &mf); err != nil {
		return mf, &lderr.ParseError{Path: fn, Reason: err.Error()}
	}
	return mf, nil
}
