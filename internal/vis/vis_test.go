//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"bytes"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/xpl"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fixtures(t *testing.T) (*dist.TopicWord, *dist.DocTopic) {
	t.Helper()
	tw, err := dist.NewTopicWord(mat.NewDense(3, 4, []float64{
		0.70, 0.10, 0.10, 0.10,
		0.10, 0.70, 0.10, 0.10,
		0.05, 0.05, 0.45, 0.45,
	}), []string{"bass", "drum", "atom", "star"})
	require.NoError(t, err)

	dt, err := dist.NewDocTopic(mat.NewDense(5, 3, []float64{
		0.8, 0.1, 0.1,
		0.7, 0.2, 0.1,
		0.1, 0.8, 0.1,
		0.1, 0.1, 0.8,
		0.2, 0.2, 0.6,
	}), []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc", "ddddddddddd", "eeeeeeeeeee"})
	require.NoError(t, err)
	return tw, dt
}

func TestPrepare(t *testing.T) {
	tw, dt := fixtures(t)
	p, err := PrepareFromModel(tw, dt, []int{10, 10, 10, 10, 10}, []int{20, 12, 9, 9})
	require.NoError(t, err)

	require.Len(t, p.Topics, 3)
	sum := 0.0
	for _, tp := range p.Topics {
		sum += tp.Proportion
		assert.False(t, math.IsNaN(tp.X) || math.IsNaN(tp.Y))
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	// column sums of the mixtures are 1.9, 1.4, 1.7 over 5 equally long documents
	assert.InDelta(t, 1.9/5, p.Topics[0].Proportion, 1e-9)

	// the two music topics sit closer to each other than to the science topic
	d01 := math.Hypot(p.Topics[0].X-p.Topics[1].X, p.Topics[0].Y-p.Topics[1].Y)
	d02 := math.Hypot(p.Topics[0].X-p.Topics[2].X, p.Topics[0].Y-p.Topics[2].Y)
	assert.Less(t, d01, d02+1e-9)

	require.Len(t, p.Salient, 4)
	for i := 1; i < len(p.Salient); i++ {
		assert.GreaterOrEqual(t, p.Salient[i-1].Saliency, p.Salient[i].Saliency)
	}

	// lambda = 1 is plain probability
	rr, err := p.Relevant("Topic 3", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"atom", "star"}, xpl.Words(rr))
	assert.InDelta(t, math.Log(0.45), rr[0].P, 1e-12)

	_, err = p.Relevant("Topic 9", 0.5, 2)
	assert.ErrorIs(t, err, lderr.ErrLookup)
	_, err = p.Relevant("Topic 1", 1.5, 2)
	assert.ErrorIs(t, err, lderr.ErrInvalidConfiguration)
}

func TestPrepareShapes(t *testing.T) {
	tw, dt := fixtures(t)

	_, err := PrepareFromModel(tw, dt, []int{1, 2}, []int{1, 1, 1, 1})
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)

	_, err = PrepareFromModel(tw, dt, []int{1, 1, 1, 1, 1}, []int{1, 1})
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)

	_, err = Prepare(PrepInput{TopicWord: tw, DocTopic: dt, DocLengths: []int{1, 1, 1, 1, 1},
		Vocab: []string{"x"}, TermFrequency: []int{1, 1, 1, 1}})
	assert.ErrorIs(t, err, lderr.ErrShapeMismatch)

	_, err = PrepareFromModel(tw, dt, []int{0, 0, 0, 0, 0}, []int{0, 0, 0, 0})
	assert.ErrorIs(t, err, lderr.ErrInvalidConfiguration)
}

func TestProject(t *testing.T) {
	_, dt := fixtures(t)
	xy, explained, err := project(dt.Raw(), 2)
	require.NoError(t, err)
	r, c := xy.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 2, c)
	assert.Greater(t, explained, 0.0)
	assert.LessOrEqual(t, explained, 1.0+1e-9)

	one := mat.NewDense(1, 3, []float64{0.2, 0.3, 0.5})
	xy, _, err = project(one, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, xy.At(0, 1))
}

func TestRenderPage(t *testing.T) {
	tw, dt := fixtures(t)

	gm, err := xpl.GroupMeans(dt, []string{"music", "music", "music", "science", "science"})
	require.NoError(t, err)
	bar := GroupBarChart(gm)

	words, err := TopicWordBarChart(tw, "Topic 1", 3)
	require.NoError(t, err)
	_, err = TopicWordBarChart(tw, "Topic 4", 3)
	assert.ErrorIs(t, err, lderr.ErrLookup)

	sc, err := DocScatter(dt)
	require.NoError(t, err)

	p, err := PrepareFromModel(tw, dt, []int{10, 10, 10, 10, 10}, []int{20, 12, 9, 9})
	require.NoError(t, err)
	prepared, err := RenderPrepared(p, 0.6, 3)
	require.NoError(t, err)
	// the map, the salient terms, one chart per topic
	assert.Len(t, prepared, 5)

	cc := append([]components.Charter{bar, words, sc}, prepared...)
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, "comment topics", []template.HTML{VideoBlock("Topic 1", []string{"aaaaaaaaaaa"})}, cc...))

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>comment topics</title>")
	assert.Equal(t, 8, strings.Count(out, "echarts.init("))
	assert.Contains(t, out, "https://www.youtube.com/embed/aaaaaaaaaaa")
	assert.NotContains(t, out, "__f__")
}

func TestWritePage(t *testing.T) {
	tw, _ := fixtures(t)
	words, err := TopicWordBarChart(tw, "Topic 2", 2)
	require.NoError(t, err)

	fn := filepath.Join(t.TempDir(), "charts", "topic2.html")
	require.NoError(t, WritePage(fn, "Topic 2", nil, words))
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), "drum")
}

func TestEmbedVideo(t *testing.T) {
	assert.Equal(t,
		template.HTML(`<iframe width="560" height="315" src="https://www.youtube.com/embed/dQw4w9WgXcQ" frameborder="0" allowfullscreen></iframe>`),
		EmbedVideo("dQw4w9WgXcQ"))
	assert.Contains(t, string(EmbedVideo(`x"y`)), "x%22y")
	assert.Contains(t, string(VideoBlock("<b>", nil)), "&lt;b&gt;")
}
