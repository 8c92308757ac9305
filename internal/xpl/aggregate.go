//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xpl

import (
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"sort"
)

//
// AGGREGATES
//

// GroupMeans - groups[d] is the label of document row d; one mean mixture per distinct label, labels sorted
func GroupMeans(dt *dist.DocTopic, groups []string) (*dist.GroupMix, error) {
	nd, k := dt.Dims()
	if len(groups) != nd {
		return nil, &lderr.ShapeMismatchError{What: "group labels", WantR: nd, WantC: 1, GotR: len(groups), GotC: 1}
	}

	sums := make(map[string][]float64)
	sizes := make(map[string]int)
	for d, g := range groups {
		if _, ok := sums[g]; !ok {
			sums[g] = make([]float64, k)
		}
		floats.Add(sums[g], dt.Row(d))
		sizes[g]++
	}

	labels := make([]string, 0, len(sums))
	for g := range sums {
		labels = append(labels, g)
	}
	sort.Strings(labels)

	data := mat.NewDense(len(labels), k, nil)
	ss := make([]int, len(labels))
	for i, g := range labels {
		floats.Scale(1/float64(sizes[g]), sums[g])
		data.SetRow(i, sums[g])
		ss[i] = sizes[g]
	}
	return dist.NewGroupMix(data, labels, ss)
}

// DominantTopic - the index of the largest entry; the first one wins a tie
func DominantTopic(mixture []float64) int {
	if len(mixture) == 0 {
		return -1
	}
	return floats.MaxIdx(mixture)
}

// DominantTopicCounts - N documents have topic X as their dominant topic
func DominantTopicCounts(dt *dist.DocTopic) []int {
	nd, k := dt.Dims()
	counter := make([]int, k)
	for d := 0; d < nd; d++ {
		counter[DominantTopic(dt.Row(d))]++
	}
	return counter
}

// TopicWeights - total accumulated weight of each topic, scaled so that the heaviest is 1
func TopicWeights(dt *dist.DocTopic) []float64 {
	nd, k := dt.Dims()
	counter := make([]float64, k)
	for d := 0; d < nd; d++ {
		floats.Add(counter, dt.Row(d))
	}
	if high := floats.Max(counter); high > 0 {
		floats.Scale(1/high, counter)
	}
	return counter
}
