//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xpl

import (
	"bytes"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"testing"
)

func topicword(t *testing.T) *dist.TopicWord {
	t.Helper()
	tw, err := dist.NewTopicWord(mat.NewDense(2, 3, []float64{
		0.5, 0.3, 0.2,
		0.25, 0.5, 0.25,
	}), []string{"a", "b", "c"})
	require.NoError(t, err)
	return tw
}

// four documents in two groups with known mixtures
func doctopic(t *testing.T) (*dist.DocTopic, []string) {
	t.Helper()
	dt, err := dist.NewDocTopic(mat.NewDense(4, 2, []float64{
		0.9, 0.1,
		0.7, 0.3,
		0.2, 0.8,
		0.4, 0.6,
	}), []string{"d1", "d2", "d3", "d4"})
	require.NoError(t, err)
	return dt, []string{"music", "music", "science", "science"}
}

func TestTopWords(t *testing.T) {
	tw := topicword(t)

	rr, err := TopWords(tw, "Topic 1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, Words(rr))
	assert.Equal(t, 0.5, rr[0].P)
	assert.Equal(t, 1, rr[1].Index)

	// a tie goes to the earlier vocabulary entry
	rr, err = TopWordsAt(tw, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, Words(rr))

	// asking for more than there is returns everything, sorted
	rr, err = TopWords(tw, "Topic 1", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, Words(rr))
}

func TestLookupFailures(t *testing.T) {
	tw := topicword(t)
	dt, _ := doctopic(t)

	_, err := TopWords(tw, "Topic 3", 2)
	assert.ErrorIs(t, err, lderr.ErrLookup)

	_, err = TopWords(tw, "Topic 1", 0)
	assert.ErrorIs(t, err, lderr.ErrLookup)

	_, err = TopTopics(dt, "nosuchvideo", 1)
	var le *lderr.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "nosuchvideo", le.Key)

	_, err = TopDocuments(dt, "Topic 7", 1)
	assert.ErrorIs(t, err, lderr.ErrLookup)
}

func TestTopTopicsAndDocuments(t *testing.T) {
	dt, _ := doctopic(t)

	rr, err := TopTopics(dt, "d3", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Topic 2", "Topic 1"}, Words(rr))

	rr, err = TopDocuments(dt, "Topic 2", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d3", "d4"}, Words(rr))
}

func TestGroupMeans(t *testing.T) {
	dt, groups := doctopic(t)

	gm, err := GroupMeans(dt, groups)
	require.NoError(t, err)
	assert.Equal(t, []string{"music", "science"}, gm.RowLabels())

	music, err := gm.RowByLabel("music")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, 0.2}, music, 1e-12)

	science, err := gm.RowByLabel("science")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.3, 0.7}, science, 1e-12)
	assert.Equal(t, 2, gm.Size(1))

	_, err = GroupMeans(dt, groups[:3])
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)
}

func TestDominantAndWeights(t *testing.T) {
	dt, _ := doctopic(t)
	assert.Equal(t, []int{2, 2}, DominantTopicCounts(dt))
	assert.Equal(t, 0, DominantTopic([]float64{0.5, 0.5}))
	assert.Equal(t, -1, DominantTopic(nil))

	// column sums are 2.2 and 1.8
	assert.InDeltaSlice(t, []float64{1, 1.8 / 2.2}, TopicWeights(dt), 1e-12)
}

func TestReport(t *testing.T) {
	dt, groups := doctopic(t)
	var buf bytes.Buffer
	r := Report{Out: &buf, TW: topicword(t), DT: dt, TopN: 2}

	require.NoError(t, r.Topics())
	assert.Contains(t, buf.String(), "a b")

	gm, err := GroupMeans(dt, groups)
	require.NoError(t, err)
	buf.Reset()
	r.Groups(gm)
	assert.Contains(t, buf.String(), "science")
	assert.Contains(t, buf.String(), "0.700")

	buf.Reset()
	require.NoError(t, r.Document("d1"))
	assert.Contains(t, buf.String(), "d1")
	assert.ErrorIs(t, r.Document("d9"), lderr.ErrLookup)

	buf.Reset()
	require.NoError(t, r.Exemplars("Topic 1"))
	assert.Contains(t, buf.String(), "d1")
}
