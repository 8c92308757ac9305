//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"regexp"
)

//
// TOKENIZING
//

// Tokenizer - a token is whatever the pattern matches; stopwords are dropped after lowering
type Tokenizer struct {
	re    *regexp.Regexp
	stops map[string]struct{}
	lower bool
	caser cases.Caser
}

// NewTokenizer - compile the token pattern; the stopwords are lowered if the tokens will be
func NewTokenizer(pattern string, stops map[string]struct{}, lower bool) (*Tokenizer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, lderr.Invalid("token pattern %q: %v", pattern, err)
	}

	t := &Tokenizer{re: re, lower: lower, caser: cases.Lower(language.Und)}
	t.stops = make(map[string]struct{}, len(stops))
	for s := range stops {
		if lower {
			s = t.caser.String(s)
		}
		t.stops[s] = struct{}{}
	}
	return t, nil
}

// Tokens - "I LOVE this song!!! 🎸 best gitarre" --> [love this song best gitarre] with the default pattern and no stops
func (t *Tokenizer) Tokens(text string) []string {
	text = norm.NFC.String(text)
	if t.lower {
		text = t.caser.String(text)
	}

	found := t.re.FindAllString(text, -1)
	kept := found[:0]
	for _, f := range found {
		if _, stop := t.stops[f]; stop {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// IsStop - reports whether a (lowered) token is on the stop list
func (t *Tokenizer) IsStop(token string) bool {
	_, ok := t.stops[token]
	return ok
}
