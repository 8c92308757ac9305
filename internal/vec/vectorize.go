//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/crp"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"sort"
)

//
// VECTORIZING
//

// FilterConfig - what counts as a token and which tokens survive
type FilterConfig struct {
	MinDF        int
	TokenPattern string
	Stopwords    map[string]struct{}
	Lowercase    bool
}

// DefaultFilterConfig - the built-in stop list; no config directory is consulted
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinDF:        vv.DEFAULTMINDF,
		TokenPattern: vv.DEFAULTTOKENPATTERN,
		Stopwords:    EnglishStops(),
		Lowercase:    true,
	}
}

// Vectorize - documents --> vocabulary + document-term matrix; row d of the matrix is docs[d] even if it is empty
func Vectorize(docs []crp.Document, cfg FilterConfig) (*Vocabulary, *DocTermMatrix, error) {
	const (
		MSG1 = "Vectorize() kept %s of %s distinct tokens (min df = %d)"
		MSG2 = "Vectorize() %s documents have no surviving tokens"
	)

	if cfg.MinDF < 1 {
		return nil, nil, lderr.Invalid("minimum document frequency must be >= 1, got %d", cfg.MinDF)
	}
	if len(docs) == 0 {
		return nil, nil, lderr.Invalid("no documents to vectorize")
	}

	tk, err := NewTokenizer(cfg.TokenPattern, cfg.Stopwords, cfg.Lowercase)
	if err != nil {
		return nil, nil, err
	}

	// [a] count tokens per document and documents per token

	perdoc := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		txt, terr := d.Text()
		if terr != nil {
			return nil, nil, terr
		}
		counts := make(map[string]int)
		for _, t := range tk.Tokens(txt) {
			counts[t]++
		}
		for t := range counts {
			df[t]++
		}
		perdoc[i] = counts
	}

	// [b] drop the rare terms; what is left is sorted so the column order does not depend on map iteration

	var kept []string
	for t, n := range df {
		if n >= cfg.MinDF {
			kept = append(kept, t)
		}
	}
	sort.Strings(kept)

	Msg.NOTE(fmt.Sprintf(MSG1, Msg.Count(len(kept)), Msg.Count(len(df)), cfg.MinDF))
	if len(kept) == 0 {
		return nil, nil, lderr.Invalid("empty vocabulary after filtering (min df = %d)", cfg.MinDF)
	}

	vocab, err := NewVocabulary(kept)
	if err != nil {
		return nil, nil, err
	}

	// [c] assemble the rows

	rows := make([]map[int]int, len(docs))
	empty := 0
	for i := range perdoc {
		r := make(map[int]int)
		for t, n := range perdoc[i] {
			if w, ok := vocab.Index(t); ok {
				r[w] = n
			}
		}
		if len(r) == 0 {
			empty++
		}
		rows[i] = r
	}
	if empty > 0 {
		Msg.FYI(fmt.Sprintf(MSG2, Msg.Count(empty)))
	}

	dtm, err := NewDocTermMatrix(crp.IDs(docs), vocab.Len(), rows)
	if err != nil {
		return nil, nil, err
	}
	return vocab, dtm, nil
}
