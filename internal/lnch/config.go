//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/lda"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/mm"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"io/fs"
	"os"
	"path/filepath"
)

var Msg = mm.Shared()

// Configuration - everything a run needs; the JSON file holds the same fields
type Configuration struct {
	CorpusDir     string     `json:"corpus_dir"`
	FilePattern   string     `json:"file_pattern"`
	MetadataFile  string     `json:"metadata_file"`
	MetaIDColumn  string     `json:"metadata_id_column"`
	CacheDir      string     `json:"cache_dir"`
	UseCache      bool       `json:"use_cache"`
	OutDir        string     `json:"out_dir"`
	MinDF         int        `json:"min_df"`
	TokenPattern  string     `json:"token_pattern"`
	ExtraStops    string     `json:"extra_stopwords_file"`
	LDA           lda.Config `json:"lda"`
	TopN          int        `json:"top_n"`
	VisTerms      int        `json:"vis_terms"`
	VisLambda     float64    `json:"vis_lambda"`
	LogLevel      int        `json:"log_level"`
	BlackAndWhite bool       `json:"black_and_white"`
}

// BuildDefaultConfig - return a Configuration filled out with various default values
func BuildDefaultConfig() *Configuration {
	var c Configuration
	c.CorpusDir = vv.DEFAULTCORPUSDIR
	c.FilePattern = vv.DEFAULTFILEPATTERN
	c.MetadataFile = ""
	c.MetaIDColumn = vv.METAIDCOLUMN
	c.CacheDir = vv.DEFAULTCACHEDIR
	c.UseCache = true
	c.OutDir = vv.DEFAULTOUTDIR
	c.MinDF = vv.DEFAULTMINDF
	c.TokenPattern = vv.DEFAULTTOKENPATTERN
	c.LDA = lda.DefaultConfig()
	c.TopN = vv.LDATOPN
	c.VisTerms = vv.LDAVISTERMS
	c.VisLambda = vv.LDAVISLAMBDA
	c.LogLevel = vv.DEFAULTLOGLEVEL
	c.BlackAndWhite = vv.BLACKANDWHITE
	return &c
}

// ConfDir - "~/.config/"; "" if there is no home directory
func ConfDir() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return fmt.Sprintf(vv.CONFIGALTAPTH, h)
}

// ConfigAtLaunch - read the configuration file; if none was named and the default one does not exist, write
// the defaults there so that there is something to edit next time
func ConfigAtLaunch(named string) (*Configuration, error) {
	const (
		FAIL1 = "Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead."
		FAIL2 = "ConfigAtLaunch() could not write '%s': %v"
		MSG1  = "ConfigAtLaunch() wrote configuration file: %s"
		MSG2  = "'%s' loaded"
	)

	if named != "" {
		c, err := ReadConfig(named)
		if err != nil {
			return nil, err
		}
		Msg.TMI(fmt.Sprintf(MSG2, named))
		return c, nil
	}

	dir := ConfDir()
	if dir == "" {
		return BuildDefaultConfig(), nil
	}
	fn := filepath.Join(dir, vv.CONFIGBASIC)

	c, err := ReadConfig(fn)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c = BuildDefaultConfig()
		if werr := WriteConfig(fn, c); werr != nil {
			Msg.WARN(fmt.Sprintf(FAIL2, fn, werr))
		} else {
			Msg.PEEK(fmt.Sprintf(MSG1, fn))
		}
	case err != nil:
		Msg.CRIT(fmt.Sprintf(FAIL1, fn))
		c = BuildDefaultConfig()
	default:
		Msg.TMI(fmt.Sprintf(MSG2, fn))
	}
	return c, nil
}

// ReadConfig - keys missing from the file keep their default values
func ReadConfig(fn string) (*Configuration, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	c := BuildDefaultConfig()
	if err = json.Unmarshal(b, c); err != nil {
		return nil, &lderr.ParseError{Path: fn, Reason: err.Error()}
	}
	return c, nil
}

// WriteConfig - indented JSON; the directory is created if need be
func WriteConfig(fn string, c *Configuration) error {
	if err := os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return err
	}
	content, err := json.MarshalIndent(c, vv.JSONINDENT, vv.JSONINDENT)
	if err != nil {
		return err
	}
	return os.WriteFile(fn, content, vv.WRITEPERMS)
}

// Validate - the checks that do not need a corpus
func (c *Configuration) Validate() error {
	switch {
	case c.CorpusDir == "":
		return lderr.Invalid("no corpus directory")
	case c.MinDF < 1:
		return lderr.Invalid("minimum document frequency must be >= 1, got %d", c.MinDF)
	case c.TopN < 1:
		return lderr.Invalid("top-N must be >= 1, got %d", c.TopN)
	case c.VisTerms < 1:
		return lderr.Invalid("number of terms per chart must be >= 1, got %d", c.VisTerms)
	case c.VisLambda < 0 || c.VisLambda > 1:
		return lderr.Invalid("relevance lambda must be in [0, 1], got %g", c.VisLambda)
	}
	return c.LDA.Validate()
}
