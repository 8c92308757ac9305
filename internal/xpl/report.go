//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xpl

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/crp"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/olekukonko/tablewriter"
	"io"
	"strings"
)

//
// TERMINAL REPORTS
//

// Report - tables for the terminal; Meta is optional and only used to decorate document ids
type Report struct {
	Out  io.Writer
	TW   *dist.TopicWord
	DT   *dist.DocTopic
	Meta *crp.Metadata
	TopN int
}

func (r Report) table(header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(r.Out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetRowLine(false)
	return t
}

func (r Report) topn() int {
	if r.TopN < 1 {
		return vv.LDATOPN
	}
	return r.TopN
}

// Topics - one row per topic: top words, dominant-document count, scaled weight
func (r Report) Topics() error {
	counts := DominantTopicCounts(r.DT)
	weights := TopicWeights(r.DT)

	t := r.table([]string{"Topic", "Docs", "Weight", "Top words"})
	for k := 0; k < r.TW.K(); k++ {
		rr, err := TopWordsAt(r.TW, k, r.topn())
		if err != nil {
			return err
		}
		t.Append([]string{
			dist.TopicLabel(k),
			fmt.Sprintf("%d", counts[k]),
			fmt.Sprintf("%.3f", weights[k]),
			strings.Join(Words(rr), " "),
		})
	}
	t.Render()
	return nil
}

// Groups - mean mixture per group; one column per topic
func (r Report) Groups(gm *dist.GroupMix) {
	header := append([]string{"Group", "Docs"}, gm.ColLabels()...)
	t := r.table(header)
	labels := gm.RowLabels()
	for i, g := range labels {
		row := []string{g, fmt.Sprintf("%d", gm.Size(i))}
		for _, p := range gm.Row(i) {
			row = append(row, fmt.Sprintf("%.3f", p))
		}
		t.Append(row)
	}
	t.Render()
}

// Document - a document's top topics and the top words of each
func (r Report) Document(docid string) error {
	rr, err := TopTopics(r.DT, docid, r.topn())
	if err != nil {
		return err
	}

	if title, ok := r.Meta.Label(docid, vv.METATITLECOL); ok {
		fmt.Fprintf(r.Out, "%s: %s\n", docid, title)
	} else {
		fmt.Fprintf(r.Out, "%s\n", docid)
	}

	t := r.table([]string{"Topic", "P", "Top words"})
	for _, tp := range rr {
		ww, werr := TopWords(r.TW, tp.Label, 5)
		if werr != nil {
			return werr
		}
		t.Append([]string{tp.Label, fmt.Sprintf("%.4f", tp.P), strings.Join(Words(ww), " ")})
	}
	t.Render()
	return nil
}

// Exemplars - the documents most associated with a topic
func (r Report) Exemplars(topic string) error {
	rr, err := TopDocuments(r.DT, topic, r.topn())
	if err != nil {
		return err
	}
	t := r.table([]string{"Document", "P", "Title"})
	for _, d := range rr {
		title, _ := r.Meta.Label(d.Label, vv.METATITLECOL)
		t.Append([]string{d.Label, fmt.Sprintf("%.4f", d.P), title})
	}
	t.Render()
	return nil
}
