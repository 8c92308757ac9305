//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dist

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
)

//
// LABELED MATRICES
//

// labeled - a read-only matrix with a name for every row and every column; nothing hands out the
// *mat.Dense itself
type labeled struct {
	what   string
	m      *mat.Dense
	rows   []string
	cols   []string
	rowidx map[string]int
	colidx map[string]int
}

func newlabeled(what string, data mat.Matrix, rows []string, cols []string) (labeled, error) {
	if data == nil {
		return labeled{}, lderr.Invalid("%s: no data", what)
	}
	r, c := data.Dims()
	if r == 0 || c == 0 {
		return labeled{}, lderr.Invalid("%s: %dx%d matrix", what, r, c)
	}
	if r != len(rows) || c != len(cols) {
		return labeled{}, &lderr.ShapeMismatchError{What: what, WantR: len(rows), WantC: len(cols), GotR: r, GotC: c}
	}

	l := labeled{
		what:   what,
		m:      mat.DenseCopyOf(data),
		rows:   append([]string(nil), rows...),
		cols:   append([]string(nil), cols...),
		rowidx: make(map[string]int, r),
		colidx: make(map[string]int, c),
	}
	for i, s := range l.rows {
		if _, dup := l.rowidx[s]; dup {
			return labeled{}, lderr.Invalid("%s: row label %q appears twice", what, s)
		}
		l.rowidx[s] = i
	}
	for j, s := range l.cols {
		if _, dup := l.colidx[s]; dup {
			return labeled{}, lderr.Invalid("%s: column label %q appears twice", what, s)
		}
		l.colidx[s] = j
	}
	return l, nil
}

func (l labeled) Dims() (int, int) {
	return len(l.rows), len(l.cols)
}

func (l labeled) At(i, j int) float64 {
	return l.m.At(i, j)
}

// Row - a copy of row i
func (l labeled) Row(i int) []float64 {
	return mat.Row(nil, i, l.m)
}

// RowByLabel - a copy of the named row; unknown labels are a LookupError
func (l labeled) RowByLabel(label string) ([]float64, error) {
	i, err := l.RowIndex(label)
	if err != nil {
		return nil, err
	}
	return l.Row(i), nil
}

func (l labeled) RowIndex(label string) (int, error) {
	i, ok := l.rowidx[label]
	if !ok {
		return -1, &lderr.LookupError{Kind: l.what + " row", Key: label}
	}
	return i, nil
}

func (l labeled) ColIndex(label string) (int, error) {
	j, ok := l.colidx[label]
	if !ok {
		return -1, &lderr.LookupError{Kind: l.what + " column", Key: label}
	}
	return j, nil
}

func (l labeled) RowLabels() []string {
	return append([]string(nil), l.rows...)
}

func (l labeled) ColLabels() []string {
	return append([]string(nil), l.cols...)
}

// Raw - a copy of the underlying numbers; callers may do as they please with it
func (l labeled) Raw() *mat.Dense {
	return mat.DenseCopyOf(l.m)
}

// CheckStochastic - every row must be a probability distribution: no negatives and a sum of 1 ± tol
func (l labeled) CheckStochastic(tol float64) error {
	r, _ := l.Dims()
	for i := 0; i < r; i++ {
		row := l.m.RawRowView(i)
		if floats.Min(row) < 0 {
			return lderr.Invalid("%s: row %q has a negative entry", l.what, l.rows[i])
		}
		s := floats.Sum(row)
		if math.IsNaN(s) || math.Abs(s-1) > tol {
			return lderr.Invalid("%s: row %q sums to %.9f", l.what, l.rows[i], s)
		}
	}
	return nil
}

//
// LABELS
//

// TopicLabel - 0 --> "Topic 1"
func TopicLabel(k int) string {
	return fmt.Sprintf("Topic %d", k+1)
}

// TopicLabels - ["Topic 1", ..., "Topic k"]
func TopicLabels(k int) []string {
	tl := make([]string, k)
	for i := range tl {
		tl[i] = TopicLabel(i)
	}
	return tl
}
