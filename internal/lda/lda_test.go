//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"sort"
	"testing"
)

// twoblocks - documents 0..n-1 use terms 0-2, documents n..2n-1 use terms 3-5; the last document is empty
func twoblocks(t *testing.T, n int) (*vec.Vocabulary, *vec.DocTermMatrix) {
	return blocks(t, n, true)
}

func blocks(t *testing.T, n int, withempty bool) (*vec.Vocabulary, *vec.DocTermMatrix) {
	t.Helper()
	terms := []string{"bass", "chord", "guitar", "atom", "gravity", "quantum"}
	vocab, err := vec.NewVocabulary(terms)
	require.NoError(t, err)

	var ids []string
	var counts [][]int
	for d := 0; d < 2*n; d++ {
		row := make([]int, len(terms))
		off := 0
		if d >= n {
			off = 3
		}
		row[off] = 4 + d%3
		row[off+1] = 3
		row[off+2] = 2 + d%2
		counts = append(counts, row)
		ids = append(ids, fmt.Sprintf("doc%02d", d))
	}
	if withempty {
		counts = append(counts, make([]int, len(terms)))
		ids = append(ids, "empty")
	}

	dtm, err := vec.FromDense(ids, counts)
	require.NoError(t, err)
	return vocab, dtm
}

func smallconfig() Config {
	c := DefaultConfig()
	c.K = 2
	c.Iterations = 200
	c.Refresh = 50
	c.Seed = 7
	return c
}

func assertstochastic(t *testing.T, m *mat.Dense) {
	t.Helper()
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		assert.InDelta(t, 1.0, floats.Sum(m.RawRowView(i)), 1e-6, "row %d", i)
		assert.Greater(t, floats.Min(m.RawRowView(i)), 0.0, "row %d", i)
	}
}

func TestValidateRejectsBeforeSampling(t *testing.T) {
	vocab, dtm := twoblocks(t, 3)

	bad := []func(c *Config){
		func(c *Config) { c.K = 0 },
		func(c *Config) { c.K = -3 },
		func(c *Config) { c.Iterations = 0 },
		func(c *Config) { c.Alpha = 0 },
		func(c *Config) { c.Eta = -0.1 },
		func(c *Config) { c.Method = "variational-nonsense" },
		func(c *Config) { c.Refresh = -1 },
	}
	for i, mutate := range bad {
		c := smallconfig()
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), lderr.ErrInvalidConfiguration, "case %d", i)
		m, err := Fit(dtm, vocab, c)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, lderr.ErrInvalidConfiguration, "case %d", i)
	}
}

func TestValidateHasNoTopicCeiling(t *testing.T) {
	c := smallconfig()
	c.K = 500
	assert.NoError(t, c.Validate())
	c.K = 1
	assert.NoError(t, c.Validate())
}

func TestFitRejectsEmptyMatrix(t *testing.T) {
	vocab, err := vec.NewVocabulary(nil)
	require.NoError(t, err)
	dtm, err := vec.FromDense(nil, nil)
	require.NoError(t, err)

	_, err = Fit(dtm, vocab, smallconfig())
	assert.ErrorIs(t, err, lderr.ErrInvalidConfiguration)

	_, err = Fit(nil, nil, smallconfig())
	assert.ErrorIs(t, err, lderr.ErrInvalidConfiguration)
}

func TestFitRejectsMisalignedVocabulary(t *testing.T) {
	_, dtm := twoblocks(t, 2)
	short, err := vec.NewVocabulary([]string{"bass"})
	require.NoError(t, err)
	_, err = Fit(dtm, short, smallconfig())
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)
}

func TestGibbsDistributions(t *testing.T) {
	vocab, dtm := twoblocks(t, 6)
	m, err := Fit(dtm, vocab, smallconfig())
	require.NoError(t, err)

	k, v := m.TopicWord.Dims()
	assert.Equal(t, 2, k)
	assert.Equal(t, vocab.Len(), v)
	d, kk := m.DocTopic.Dims()
	assert.Equal(t, 13, d)
	assert.Equal(t, 2, kk)
	assert.Equal(t, dtm.DocIDs(), m.DocTopic.RowLabels())

	assertstochastic(t, m.TopicWord.Raw())
	assertstochastic(t, m.DocTopic.Raw())

	// a document without tokens keeps the prior: uniform
	empty, err := m.DocTopic.RowByLabel("empty")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, empty, 1e-12)

	// refresh 50 over 200 iterations
	assert.Len(t, m.LogLikelihood, 4)
	for _, l := range m.LogLikelihood {
		assert.Less(t, l, 0.0)
	}
}

func TestGibbsSeparatesDisjointBlocks(t *testing.T) {
	vocab, dtm := twoblocks(t, 8)
	m, err := Fit(dtm, vocab, smallconfig())
	require.NoError(t, err)

	for topic := 0; topic < 2; topic++ {
		row := m.TopicWord.Row(topic)
		idx := []int{0, 1, 2, 3, 4, 5}
		sort.SliceStable(idx, func(i, j int) bool { return row[idx[i]] > row[idx[j]] })
		top := idx[:3]
		sort.Ints(top)
		assert.True(t, assert.ObjectsAreEqual([]int{0, 1, 2}, top) || assert.ObjectsAreEqual([]int{3, 4, 5}, top),
			"topic %d mixes the blocks: %v", topic, top)
	}
}

func TestGibbsIsDeterministic(t *testing.T) {
	vocab, dtm := twoblocks(t, 5)
	c := smallconfig()
	c.Iterations = 60

	a, err := Fit(dtm, vocab, c)
	require.NoError(t, err)
	b, err := Fit(dtm, vocab, c)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.TopicWord.Raw(), b.TopicWord.Raw()))
	assert.True(t, mat.Equal(a.DocTopic.Raw(), b.DocTopic.Raw()))
	assert.Equal(t, a.LogLikelihood, b.LogLikelihood)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestSCVBProducesDistributions(t *testing.T) {
	vocab, dtm := blocks(t, 4, false)
	c := smallconfig()
	c.Method = "scvb"
	c.Iterations = 20
	c.XformPass = 10

	m, err := Fit(dtm, vocab, c)
	require.NoError(t, err)

	k, v := m.TopicWord.Dims()
	assert.Equal(t, 2, k)
	assert.Equal(t, vocab.Len(), v)
	d, _ := m.DocTopic.Dims()
	assert.Equal(t, 8, d)
	assertstochastic(t, m.TopicWord.Raw())
	assert.Empty(t, m.LogLikelihood)
}

func TestSCVBCarriesPassCounts(t *testing.T) {
	_, dtm := blocks(t, 2, false)
	c := smallconfig()
	c.Method = "scvb"
	c.BurnIn = 3
	c.XformPass = 17

	s, err := newscvb(dtm, c, rand.New(rand.NewSource(c.Seed)))
	require.NoError(t, err)
	l := s.(*scvb).lda
	assert.Equal(t, 3, l.BurnInPasses)
	assert.Equal(t, 17, l.TransformationPasses)
	assert.Equal(t, 1, l.Processes)
	assert.Equal(t, c.Alpha, l.Alpha)
}

func TestMethodsRegistered(t *testing.T) {
	assert.Equal(t, []string{"gibbs", "scvb"}, Methods())
	_, err := GetMethod("nope")
	assert.ErrorIs(t, err, lderr.ErrInvalidConfiguration)
}
