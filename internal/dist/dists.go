//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dist

import (
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"gonum.org/v1/gonum/mat"
)

// TopicWord - K x |V|; rows are "Topic 1".."Topic K", columns are the vocabulary
type TopicWord struct {
	labeled
}

// NewTopicWord - the data is copied; every row must sum to 1
func NewTopicWord(data mat.Matrix, vocab []string) (*TopicWord, error) {
	k := 0
	if data != nil {
		k, _ = data.Dims()
	}
	l, err := newlabeled("topic-word distribution", data, TopicLabels(k), vocab)
	if err != nil {
		return nil, err
	}
	if err = l.CheckStochastic(vv.ROWSUMTOL); err != nil {
		return nil, err
	}
	return &TopicWord{l}, nil
}

// K - the number of topics
func (tw *TopicWord) K() int {
	return len(tw.rows)
}

// DocTopic - |D| x K; rows are document ids in loader order, columns are "Topic 1".."Topic K"
type DocTopic struct {
	labeled
}

// NewDocTopic - the data is copied; every row must sum to 1
func NewDocTopic(data mat.Matrix, docids []string) (*DocTopic, error) {
	k := 0
	if data != nil {
		_, k = data.Dims()
	}
	l, err := newlabeled("document-topic mixture", data, docids, TopicLabels(k))
	if err != nil {
		return nil, err
	}
	if err = l.CheckStochastic(vv.ROWSUMTOL); err != nil {
		return nil, err
	}
	return &DocTopic{l}, nil
}

func (dt *DocTopic) K() int {
	return len(dt.cols)
}

// GroupMix - one mean mixture per group label; derived, never the source of truth
type GroupMix struct {
	labeled
	sizes []int
}

// NewGroupMix - sizes[i] is the number of documents behind row i
func NewGroupMix(data mat.Matrix, groups []string, sizes []int) (*GroupMix, error) {
	k := 0
	if data != nil {
		_, k = data.Dims()
	}
	l, err := newlabeled("group mixture", data, groups, TopicLabels(k))
	if err != nil {
		return nil, err
	}
	if len(sizes) != len(groups) {
		return nil, lderr.Invalid("group mixture: %d sizes for %d groups", len(sizes), len(groups))
	}
	return &GroupMix{labeled: l, sizes: append([]int(nil), sizes...)}, nil
}

// Size - number of documents in group row i
func (gm *GroupMix) Size(i int) int {
	return gm.sizes[i]
}
