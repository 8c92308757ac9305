//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/gen"
	"github.com/e-gun/LDAWorkshop/internal/mm"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"os"
	"path/filepath"
)

var Msg = mm.Shared()

//
// STOPWORDS
//

// ReadStopConfig - read the vv.CONFIGSTOPSENG file in confdir and return the stop set; if it does not exist, generate it
func ReadStopConfig(confdir string) map[string]struct{} {
	const (
		ERR1 = "ReadStopConfig() failed to parse %s; using the built-in list"
		ERR2 = "ReadStopConfig() could not write %s: %v"
		MSG1 = "ReadStopConfig() wrote stopword configuration file: %s"
		MSG2 = "ReadStopConfig() read %s stopwords from %s"
	)

	stops := EnglishStops()
	fn := filepath.Join(confdir, vv.CONFIGSTOPSENG)

	if _, err := os.Stat(fn); err != nil {
		sl := gen.SortedKeys(stops)
		content, merr := json.MarshalIndent(sl, vv.JSONINDENT, vv.JSONINDENT)
		if merr == nil {
			merr = os.WriteFile(fn, content, vv.WRITEPERMS)
		}
		if merr != nil {
			Msg.WARN(fmt.Sprintf(ERR2, fn, merr))
		} else {
			Msg.PEEK(fmt.Sprintf(MSG1, fn))
		}
		return stops
	}

	loaded, err := ReadStopFile(fn)
	if err != nil {
		Msg.CRIT(fmt.Sprintf(ERR1, fn))
		return stops
	}
	Msg.TMI(fmt.Sprintf(MSG2, Msg.Count(len(loaded)), fn))
	return loaded
}

// ReadStopFile - a JSON array of strings
func ReadStopFile(fn string) (map[string]struct{}, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	var stp []string
	if err = json.Unmarshal(b, &stp); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fn, err)
	}
	return gen.ToSet(stp), nil
}

// EnglishStops - the built-in list: common english function words plus the filler of comment threads
func EnglishStops() map[string]struct{} {
	ss := append(append([]string{}, English150...), CommentExtra...)
	return gen.ToSet(gen.SetSubtraction(ss, EnglishKeep))
}

var (
	// English150 - very frequent english function words; contractions appear as the letter run before
	// the apostrophe since that is all a letter-run token pattern can see of them
	English150 = []string{"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any",
		"are", "aren", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both", "but",
		"by", "can", "cannot", "could", "couldn", "did", "didn", "do", "does", "doesn", "doing",
		"don", "down", "during", "each", "even", "ever", "every", "few", "for", "from", "further", "get", "gets",
		"got", "had", "hadn", "has", "hasn", "have", "haven", "having", "he", "her", "here", "hers", "herself",
		"him", "himself", "his", "how", "however", "i", "if", "in", "into", "is", "isn", "it", "its",
		"itself", "just", "let", "like", "may", "me", "might", "more", "most", "much", "must", "my", "myself", "no",
		"nor", "not", "now", "of", "off", "on", "once", "one", "only", "or", "other", "our", "ours", "ourselves",
		"out", "over", "own", "same", "she", "should", "shouldn", "since", "so", "some", "still", "such", "than",
		"that", "the", "their", "theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
		"though", "through", "to", "too", "under", "until", "up", "upon", "very", "was", "wasn", "we", "were",
		"weren", "what", "when", "where", "which", "while", "who", "whom", "why", "will", "with", "won", "would",
		"wouldn", "yet", "you", "your", "yours", "yourself", "yourselves"}
	// CommentExtra - what people type under videos without saying anything
	CommentExtra = []string{"lol", "lmao", "omg", "wow", "yeah", "yes", "yep", "nah", "haha", "hahaha", "pls",
		"please", "thanks", "thank", "thx", "guys", "guy", "video", "videos", "channel", "subscribe", "subscribed",
		"comment", "comments", "really", "actually", "literally", "gonna", "wanna", "gotta", "dont", "cant", "im",
		"ive", "youre", "thats", "didnt", "doesnt", "isnt", "www", "http", "https", "com", "amp", "quot"}
	// EnglishKeep - members of the lists above we will not toss
	EnglishKeep = []string{"against"}
)
