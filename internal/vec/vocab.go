//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"github.com/e-gun/LDAWorkshop/internal/lderr"
)

// Vocabulary - the retained tokens; column i of every downstream matrix is Term(i)
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary - terms are taken in the order given
func NewVocabulary(terms []string) (*Vocabulary, error) {
	v := &Vocabulary{
		terms: make([]string, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	for i, t := range terms {
		if _, dup := v.index[t]; dup {
			return nil, lderr.Invalid("vocabulary term %q appears twice", t)
		}
		v.terms[i] = t
		v.index[t] = i
	}
	return v, nil
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}

func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Index - the column of a term
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms - a copy of the terms in column order
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}
