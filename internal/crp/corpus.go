//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package crp

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/mm"
	"golang.org/x/exp/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var Msg = mm.Shared()

//
// DOCUMENTS
//

// Document - one comment file; nothing about it changes after LoadCorpus() hands it out
type Document struct {
	ID    string
	Group string
	Path  string
	text  string
	inmem bool
}

// NewTextDocument - a document whose text is already in memory
func NewTextDocument(id string, group string, text string) Document {
	return Document{ID: id, Group: group, text: text, inmem: true}
}

// Text - the raw content; files are only read when somebody asks
func (d Document) Text() (string, error) {
	if d.inmem {
		return d.text, nil
	}
	b, err := os.ReadFile(d.Path)
	if err != nil {
		return "", fmt.Errorf("reading document %s: %w", d.ID, err)
	}
	return string(b), nil
}

// IDs - the identifiers in document order; this is the order every downstream row follows
func IDs(docs []Document) []string {
	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}
	return ids
}

// Groups - the group labels in document order
func Groups(docs []Document) []string {
	gg := make([]string, len(docs))
	for i := range docs {
		gg[i] = docs[i].Group
	}
	return gg
}

//
// LOADING
//

// LoadCorpus - root/<group>/<file> --> []Document, shuffled once with the supplied generator
func LoadCorpus(root string, pattern string, rng *rand.Rand) ([]Document, error) {
	const (
		MSG1 = "LoadCorpus() ignoring stray file at corpus root: %s"
		MSG2 = "LoadCorpus() ignoring nested directory %s"
		MSG3 = "LoadCorpus() found %s documents in %d groups under %s"
	)

	if rng == nil {
		return nil, lderr.Invalid("LoadCorpus() needs a seeded generator")
	}

	re, err := compilefilepattern(pattern)
	if err != nil {
		return nil, err
	}

	groupdirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading corpus root %s: %w", root, err)
	}

	var docs []Document
	seen := make(map[string]string)
	groups := 0

	// os.ReadDir() sorts by filename: the pre-shuffle order is lexical
	for _, g := range groupdirs {
		if ishidden(g.Name()) {
			continue
		}
		if !g.IsDir() {
			Msg.WARN(fmt.Sprintf(MSG1, g.Name()))
			continue
		}
		groups++
		gpath := filepath.Join(root, g.Name())
		files, ferr := os.ReadDir(gpath)
		if ferr != nil {
			return nil, fmt.Errorf("reading group %s: %w", gpath, ferr)
		}
		for _, f := range files {
			if ishidden(f.Name()) {
				continue
			}
			fpath := filepath.Join(gpath, f.Name())
			if f.IsDir() {
				Msg.TMI(fmt.Sprintf(MSG2, fpath))
				continue
			}
			id, perr := extractid(re, fpath)
			if perr != nil {
				return nil, perr
			}
			if prev, dup := seen[id]; dup {
				return nil, &lderr.ParseError{Path: fpath, Reason: fmt.Sprintf("identifier %s already used by %s", id, prev)}
			}
			seen[id] = fpath
			docs = append(docs, Document{ID: id, Group: g.Name(), Path: fpath})
		}
	}

	if len(docs) == 0 {
		return nil, lderr.Invalid("no documents found under %s", root)
	}

	rng.Shuffle(len(docs), func(i, j int) {
		docs[i], docs[j] = docs[j], docs[i]
	})

	Msg.NOTE(fmt.Sprintf(MSG3, Msg.Count(len(docs)), groups, root))
	return docs, nil
}

// compilefilepattern - the pattern must have a capture group holding the identifier
func compilefilepattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, lderr.Invalid("filename pattern %q: %v", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, lderr.Invalid("filename pattern %q has no capture group", pattern)
	}
	return re, nil
}

// extractid - "data/comments/music/comments_dQw4w9WgXcQ.txt" --> "dQw4w9WgXcQ"
func extractid(re *regexp.Regexp, fpath string) (string, error) {
	found := re.FindStringSubmatch(filepath.Base(fpath))
	if found == nil || found[1] == "" {
		return "", &lderr.ParseError{Path: fpath, Reason: fmt.Sprintf("filename does not match %s", re.String())}
	}
	return found[1], nil
}

func ishidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
