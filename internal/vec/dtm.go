//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/sparse"
	"gonum.org/v1/gonum/mat"
	"sort"
)

//
// DOCUMENT-TERM MATRIX
//

// DocTermMatrix - row d is document ids[d]; the counts live in compressed rows (indptr/cols/counts), and the
// same data is handed to the linear algebra libraries as a sparse.CSR
type DocTermMatrix struct {
	ids    []string
	nterms int
	indptr []int
	cols   []int
	counts []int
	csr    *sparse.CSR
}

// NewDocTermMatrix - rows[d] maps column --> count; zero and absent entries are the same thing
func NewDocTermMatrix(ids []string, nterms int, rows []map[int]int) (*DocTermMatrix, error) {
	if len(ids) != len(rows) {
		return nil, &lderr.ShapeMismatchError{What: "document-term rows", WantR: len(ids), WantC: nterms, GotR: len(rows), GotC: nterms}
	}

	m := &DocTermMatrix{
		ids:    append([]string(nil), ids...),
		nterms: nterms,
		indptr: make([]int, len(rows)+1),
	}

	for d, r := range rows {
		cc := make([]int, 0, len(r))
		for c, n := range r {
			if c < 0 || c >= nterms {
				return nil, lderr.Invalid("document %s has a count in column %d of %d", ids[d], c, nterms)
			}
			if n < 0 {
				return nil, lderr.Invalid("document %s has a negative count in column %d", ids[d], c)
			}
			if n > 0 {
				cc = append(cc, c)
			}
		}
		sort.Ints(cc)
		for _, c := range cc {
			m.cols = append(m.cols, c)
			m.counts = append(m.counts, r[c])
		}
		m.indptr[d+1] = len(m.cols)
	}

	if len(rows) == 0 || nterms == 0 {
		// nothing to hand to a library; Vectorize() and lda.Fit() refuse such matrices anyway
		return m, nil
	}

	data := make([]float64, len(m.counts))
	for i, n := range m.counts {
		data[i] = float64(n)
	}
	// sparse.NewCSR() keeps the slices it is given
	m.csr = sparse.NewCSR(len(rows), nterms, append([]int(nil), m.indptr...), append([]int(nil), m.cols...), data)
	return m, nil
}

// FromDense - counts[d][w]; mostly for building small matrices by hand
func FromDense(ids []string, counts [][]int) (*DocTermMatrix, error) {
	nterms := 0
	if len(counts) > 0 {
		nterms = len(counts[0])
	}
	rows := make([]map[int]int, len(counts))
	for d := range counts {
		if len(counts[d]) != nterms {
			return nil, &lderr.ShapeMismatchError{What: "dense counts row", WantR: 1, WantC: nterms, GotR: 1, GotC: len(counts[d])}
		}
		rows[d] = make(map[int]int)
		for w, n := range counts[d] {
			if n != 0 {
				rows[d][w] = n
			}
		}
	}
	return NewDocTermMatrix(ids, nterms, rows)
}

// Dims - (documents, terms)
func (m *DocTermMatrix) Dims() (int, int) {
	return len(m.ids), m.nterms
}

// DocIDs - a copy of the row labels
func (m *DocTermMatrix) DocIDs() []string {
	return append([]string(nil), m.ids...)
}

// NNZ - number of stored (non-zero) counts
func (m *DocTermMatrix) NNZ() int {
	return len(m.counts)
}

// Count - occurrences of term w in document d
func (m *DocTermMatrix) Count(d int, w int) int {
	lo, hi := m.indptr[d], m.indptr[d+1]
	i := sort.SearchInts(m.cols[lo:hi], w)
	if lo+i < hi && m.cols[lo+i] == w {
		return m.counts[lo+i]
	}
	return 0
}

// Row - the dense counts of document d
func (m *DocTermMatrix) Row(d int) []int {
	r := make([]int, m.nterms)
	m.ForEachInRow(d, func(w int, n int) {
		r[w] = n
	})
	return r
}

// ForEachInRow - visit the non-zero counts of document d in column order
func (m *DocTermMatrix) ForEachInRow(d int, fn func(w int, n int)) {
	for i := m.indptr[d]; i < m.indptr[d+1]; i++ {
		fn(m.cols[i], m.counts[i])
	}
}

// DocLengths - tokens per document
func (m *DocTermMatrix) DocLengths() []int {
	ll := make([]int, len(m.ids))
	for d := range ll {
		for i := m.indptr[d]; i < m.indptr[d+1]; i++ {
			ll[d] += m.counts[i]
		}
	}
	return ll
}

// TermFrequencies - corpus-wide occurrences of each term
func (m *DocTermMatrix) TermFrequencies() []int {
	tf := make([]int, m.nterms)
	if m.csr == nil {
		return tf
	}
	m.csr.DoNonZero(func(i, j int, v float64) {
		tf[j] += int(v)
	})
	return tf
}

// DocFrequencies - number of documents containing each term at least once
func (m *DocTermMatrix) DocFrequencies() []int {
	df := make([]int, m.nterms)
	for _, c := range m.cols {
		df[c]++
	}
	return df
}

// Sparse - the documents x terms CSR view; nil for an empty matrix
func (m *DocTermMatrix) Sparse() *sparse.CSR {
	return m.csr
}

// TermDoc - terms x documents, the orientation the nlp package models expect
func (m *DocTermMatrix) TermDoc() mat.Matrix {
	return m.csr.T()
}
