//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"errors"
	"github.com/e-gun/LDAWorkshop/internal/lda"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/lnch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testrun - two groups of four comment files whose words do not overlap
func testrun(t *testing.T) *lnch.Configuration {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	files := map[string]string{
		"music/musicvid001.txt":   "guitar chord bass melody guitar chord",
		"music/musicvid002.txt":   "bass melody chord guitar bass",
		"music/musicvid003.txt":   "melody guitar bass chord melody",
		"music/musicvid004.txt":   "chord chord guitar melody bass",
		"physics/physvideo01.txt": "atom gravity quantum photon atom",
		"physics/physvideo02.txt": "quantum photon gravity atom quantum",
		"physics/physvideo03.txt": "photon atom gravity quantum photon",
		"physics/physvideo04.txt": "gravity gravity atom photon quantum",
	}
	for name, txt := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(txt), 0o644))
	}

	cfg := lnch.BuildDefaultConfig()
	cfg.CorpusDir = root
	cfg.CacheDir = filepath.Join(t.TempDir(), "models")
	cfg.OutDir = t.TempDir()
	cfg.MinDF = 1
	cfg.TopN = 3
	cfg.VisTerms = 4
	cfg.LDA.K = 2
	cfg.LDA.Iterations = 100
	cfg.LDA.Refresh = 50
	cfg.LDA.Seed = 11
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunPipelineFitsThenLoads(t *testing.T) {
	cfg := testrun(t)

	r, err := RunPipeline(cfg, true)
	require.NoError(t, err)
	assert.Len(t, r.Docs, 8)
	assert.Equal(t, 8, r.Vocab.Len())
	assert.Equal(t, 2, r.Model.TopicWord.K())
	assert.False(t, r.Model.FromCache)
	assert.True(t, lda.CacheExists(cfg.CacheDir, 2))

	again, err := RunPipeline(cfg, true)
	require.NoError(t, err)
	assert.True(t, again.Model.FromCache)
	assert.Equal(t, r.Model.RunID, again.Model.RunID)
	assert.Equal(t, r.DTM.DocIDs(), again.DTM.DocIDs())

	gm, err := again.GroupMix()
	require.NoError(t, err)
	assert.Equal(t, []string{"music", "physics"}, gm.RowLabels())
	assert.Equal(t, 4, gm.Size(0))
}

func TestRunPipelineNewSeedDoesNotReuseRows(t *testing.T) {
	cfg := testrun(t)
	first, err := RunPipeline(cfg, true)
	require.NoError(t, err)

	// another seed shuffles the documents into another order
	cfg.LDA.Seed = 12
	again, err := RunPipeline(cfg, true)
	require.NoError(t, err)
	require.NotEqual(t, first.DTM.DocIDs(), again.DTM.DocIDs())
	assert.False(t, again.Model.FromCache)

	fresh := *cfg
	fresh.CacheDir = filepath.Join(t.TempDir(), "models")
	want, err := RunPipeline(&fresh, false)
	require.NoError(t, err)
	for _, id := range want.DTM.DocIDs() {
		w, werr := want.Model.DocTopic.RowByLabel(id)
		require.NoError(t, werr)
		g, gerr := again.Model.DocTopic.RowByLabel(id)
		require.NoError(t, gerr)
		assert.Equal(t, w, g, id)
	}
}

func TestRunPipelineReports(t *testing.T) {
	cfg := testrun(t)
	r, err := RunPipeline(cfg, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	rep := r.Report(&buf)
	require.NoError(t, rep.Topics())
	require.NoError(t, rep.Document("musicvid001"))
	require.NoError(t, rep.Exemplars("Topic 2"))
	out := buf.String()
	assert.Contains(t, out, "Topic 1")
	assert.Contains(t, out, "musicvid001")

	err = rep.Document("nosuchvideo")
	assert.True(t, errors.Is(err, lderr.ErrLookup))
}

func TestRunPipelineExtraStops(t *testing.T) {
	cfg := testrun(t)
	fn := filepath.Join(t.TempDir(), "extra.json")
	require.NoError(t, os.WriteFile(fn, []byte(`["guitar", "photon"]`), 0o644))
	cfg.ExtraStops = fn

	r, err := RunPipeline(cfg, false)
	require.NoError(t, err)
	_, found := r.Vocab.Index("guitar")
	assert.False(t, found)
	assert.Equal(t, 6, r.Vocab.Len())
}

func TestRunPipelineBadCorpus(t *testing.T) {
	cfg := testrun(t)
	cfg.CorpusDir = filepath.Join(t.TempDir(), "absent")
	_, err := RunPipeline(cfg, false)
	assert.Error(t, err)
}

func TestWriteCharts(t *testing.T) {
	cfg := testrun(t)
	r, err := RunPipeline(cfg, false)
	require.NoError(t, err)

	fn, err := r.WriteCharts(cfg.OutDir, 2)
	require.NoError(t, err)
	assert.Equal(t, "ldw_k002.html", filepath.Base(fn))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	html := string(b)
	assert.Contains(t, html, "echarts.init(")
	assert.Contains(t, html, "youtube")
	assert.Equal(t, 4, strings.Count(html, "<iframe"))
}

func TestDefaultsNote(t *testing.T) {
	cfg := lnch.BuildDefaultConfig()
	note := defaultsnote(cfg)
	assert.Contains(t, note, "topic count and iteration count")
	assert.Contains(t, note, "k=10, 1500 iterations")
	assert.Contains(t, note, "-k/-i")

	cfg.LDA.K = 4
	assert.Equal(t, "using the built-in iteration count (1500 iterations); there is no right value for every corpus: set it with -i or in the configuration file", defaultsnote(cfg))

	cfg.LDA.Iterations = 300
	assert.Empty(t, defaultsnote(cfg))
}

func TestTopicLabel(t *testing.T) {
	assert.Equal(t, "Topic 3", topiclabel("3"))
	assert.Equal(t, "Topic 3", topiclabel("Topic 3"))
}

func TestSetupRejectsUnknownProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defer func() { profmode = "" }()

	rootCmd.SetArgs([]string{"--profile", "bogus", "version"})
	err := rootCmd.Execute()
	assert.True(t, errors.Is(err, lderr.ErrInvalidConfiguration))
}
