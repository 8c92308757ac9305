//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/e-gun/LDAWorkshop/internal/xpl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	vocab, dtm := twoblocks(t, 3)
	c := smallconfig()
	c.Iterations = 30
	dir := t.TempDir()

	fitted, err := Fit(dtm, vocab, c)
	require.NoError(t, err)
	require.NoError(t, SaveModel(dir, fitted))

	tw, dt, mf := CachePaths(dir, 2)
	assert.Equal(t, filepath.Join(dir, "topic_word_k002.bin"), tw)
	assert.Equal(t, filepath.Join(dir, "doc_topic_k002.bin"), dt)
	assert.FileExists(t, mf)
	assert.True(t, CacheExists(dir, 2))
	assert.False(t, CacheExists(dir, 3))

	loaded, err := LoadModel(dir, 2, vocab, dtm.DocIDs())
	require.NoError(t, err)
	assert.True(t, loaded.FromCache)
	assert.Equal(t, fitted.RunID, loaded.RunID)
	assert.Equal(t, fitted.Config, loaded.Config)
	assert.True(t, mat.Equal(fitted.TopicWord.Raw(), loaded.TopicWord.Raw()))
	assert.True(t, mat.Equal(fitted.DocTopic.Raw(), loaded.DocTopic.Raw()))
}

func TestCacheSubstitutionLooksLikeAFit(t *testing.T) {
	vocab, dtm := twoblocks(t, 4)
	c := smallconfig()
	c.Iterations = 40
	dir := t.TempDir()

	fitted, err := FitOrLoad(dtm, vocab, c, dir, true)
	require.NoError(t, err)
	assert.False(t, fitted.FromCache)

	loaded, err := FitOrLoad(dtm, vocab, c, dir, true)
	require.NoError(t, err)
	assert.True(t, loaded.FromCache)

	for k := 0; k < c.K; k++ {
		a, aerr := xpl.TopWordsAt(fitted.TopicWord, k, 4)
		require.NoError(t, aerr)
		b, berr := xpl.TopWordsAt(loaded.TopicWord, k, 4)
		require.NoError(t, berr)
		assert.Equal(t, a, b)
	}
	for _, id := range dtm.DocIDs() {
		a, aerr := xpl.TopTopics(fitted.DocTopic, id, 2)
		require.NoError(t, aerr)
		b, berr := xpl.TopTopics(loaded.DocTopic, id, 2)
		require.NoError(t, berr)
		assert.Equal(t, a, b)
	}
	assert.Equal(t, xpl.DominantTopicCounts(fitted.DocTopic), xpl.DominantTopicCounts(loaded.DocTopic))
}

func TestCacheWithoutManifest(t *testing.T) {
	vocab, dtm := twoblocks(t, 2)
	c := smallconfig()
	c.Iterations = 10
	dir := t.TempDir()

	fitted, err := Fit(dtm, vocab, c)
	require.NoError(t, err)
	require.NoError(t, SaveModel(dir, fitted))
	_, _, mf := CachePaths(dir, 2)
	require.NoError(t, os.Remove(mf))

	loaded, err := LoadModel(dir, 2, vocab, dtm.DocIDs())
	require.NoError(t, err)
	assert.Equal(t, "cache", loaded.Config.Method)
	assert.NotEqual(t, fitted.RunID, loaded.RunID)
	assert.True(t, mat.Equal(fitted.DocTopic.Raw(), loaded.DocTopic.Raw()))
}

func TestCacheShapeMismatch(t *testing.T) {
	vocab, dtm := twoblocks(t, 3)
	c := smallconfig()
	c.Iterations = 10
	dir := t.TempDir()

	fitted, err := Fit(dtm, vocab, c)
	require.NoError(t, err)
	require.NoError(t, SaveModel(dir, fitted))

	// a vocabulary that grew since the cache was written
	bigger, err := vec.NewVocabulary(append(vocab.Terms(), "zither"))
	require.NoError(t, err)
	_, err = LoadModel(dir, 2, bigger, dtm.DocIDs())
	var sm *lderr.ShapeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 7, sm.WantC)
	assert.Equal(t, 6, sm.GotC)

	// a corpus that lost a document
	ids := dtm.DocIDs()
	_, err = LoadModel(dir, 2, vocab, ids[:len(ids)-1])
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)

	// garbage where an array should be
	tw, _, _ := CachePaths(dir, 2)
	require.NoError(t, os.WriteFile(tw, []byte("not a matrix"), 0o644))
	_, err = LoadModel(dir, 2, vocab, dtm.DocIDs())
	assert.ErrorIs(t, err, lderr.ErrParse)
}

// reordered - the same counts with the document rows reversed
func reordered(t *testing.T, dtm *vec.DocTermMatrix) *vec.DocTermMatrix {
	t.Helper()
	ids := dtm.DocIDs()
	nd, _ := dtm.Dims()
	rids := make([]string, nd)
	rows := make([][]int, nd)
	for d := 0; d < nd; d++ {
		rids[nd-1-d] = ids[d]
		rows[nd-1-d] = dtm.Row(d)
	}
	out, err := vec.FromDense(rids, rows)
	require.NoError(t, err)
	return out
}

func TestCacheRejectsMovedRowsAndColumns(t *testing.T) {
	vocab, dtm := twoblocks(t, 3)
	c := smallconfig()
	c.Iterations = 10
	dir := t.TempDir()

	fitted, err := Fit(dtm, vocab, c)
	require.NoError(t, err)
	require.NoError(t, SaveModel(dir, fitted))

	// same documents, other order: the shapes agree but the rows do not
	moved := reordered(t, dtm)
	_, err = LoadModel(dir, 2, vocab, moved.DocIDs())
	var ae *lderr.AlignmentError
	require.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)
	assert.Equal(t, 0, ae.Index)
	assert.Equal(t, "empty", ae.Want)
	assert.Equal(t, "doc00", ae.Got)

	// same number of terms, one of them different
	terms := vocab.Terms()
	terms[len(terms)-1] = "zither"
	swapped, err := vec.NewVocabulary(terms)
	require.NoError(t, err)
	_, err = LoadModel(dir, 2, swapped, dtm.DocIDs())
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "zither", ae.Want)
	assert.Equal(t, "quantum", ae.Got)
}

func TestFitOrLoadRefitsStaleCache(t *testing.T) {
	vocab, dtm := twoblocks(t, 3)
	c := smallconfig()
	c.Iterations = 20
	dir := t.TempDir()

	first, err := FitOrLoad(dtm, vocab, c, dir, true)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	moved := reordered(t, dtm)
	second, err := FitOrLoad(moved, vocab, c, dir, true)
	require.NoError(t, err)
	assert.False(t, second.FromCache)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, moved.DocIDs(), second.DocTopic.RowLabels())

	fresh, err := Fit(moved, vocab, c)
	require.NoError(t, err)
	assert.True(t, mat.Equal(fresh.DocTopic.Raw(), second.DocTopic.Raw()))

	// the refit replaced the cache, so the moved corpus now loads
	third, err := FitOrLoad(moved, vocab, c, dir, true)
	require.NoError(t, err)
	assert.True(t, third.FromCache)
	assert.Equal(t, second.RunID, third.RunID)
}
