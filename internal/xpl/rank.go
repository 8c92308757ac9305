//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xpl

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"sort"
	"strconv"
)

//
// RANKING
//

// Ranked - one entry of a top-N list; Index is the column (or row) it came from
type Ranked struct {
	Label string
	Index int
	P     float64
}

// rankrow - descending by P; equal values keep their original order, i.e. vocabulary or topic order
func rankrow(row []float64, labels []string, n int) []Ranked {
	rr := make([]Ranked, len(row))
	for i, p := range row {
		rr[i] = Ranked{Label: labels[i], Index: i, P: p}
	}
	sort.SliceStable(rr, func(i, j int) bool { return rr[i].P > rr[j].P })
	if n < len(rr) {
		rr = rr[:n]
	}
	return rr
}

func checkn(n int) error {
	if n < 1 {
		return &lderr.LookupError{Kind: "top-N size", Key: strconv.Itoa(n)}
	}
	return nil
}

// TopWords - the n most probable words of a topic ("Topic 3"); n larger than |V| yields all of them
func TopWords(tw *dist.TopicWord, topic string, n int) ([]Ranked, error) {
	if err := checkn(n); err != nil {
		return nil, err
	}
	row, err := tw.RowByLabel(topic)
	if err != nil {
		return nil, err
	}
	return rankrow(row, tw.ColLabels(), n), nil
}

// TopWordsAt - TopWords() by 0-based topic number
func TopWordsAt(tw *dist.TopicWord, k int, n int) ([]Ranked, error) {
	return TopWords(tw, dist.TopicLabel(k), n)
}

// TopTopics - the n most prominent topics of a document
func TopTopics(dt *dist.DocTopic, docid string, n int) ([]Ranked, error) {
	if err := checkn(n); err != nil {
		return nil, err
	}
	row, err := dt.RowByLabel(docid)
	if err != nil {
		return nil, err
	}
	return rankrow(row, dt.ColLabels(), n), nil
}

// TopDocuments - the n documents in which a topic carries the most weight
func TopDocuments(dt *dist.DocTopic, topic string, n int) ([]Ranked, error) {
	if err := checkn(n); err != nil {
		return nil, err
	}
	j, err := dt.ColIndex(topic)
	if err != nil {
		return nil, err
	}
	nd, _ := dt.Dims()
	col := make([]float64, nd)
	for d := range col {
		col[d] = dt.At(d, j)
	}
	return rankrow(col, dt.RowLabels(), n), nil
}

// Words - just the labels
func Words(rr []Ranked) []string {
	ww := make([]string, len(rr))
	for i, r := range rr {
		ww[i] = r.Label
	}
	return ww
}

func (r Ranked) String() string {
	return fmt.Sprintf("%s (%.4f)", r.Label, r.P)
}
