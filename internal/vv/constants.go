//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MYNAME    = "LDA Workshop"
	SHORTNAME = "LDW"
	VERSION   = "0.3.2"

	CONFIGALTAPTH    = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC      = "ldw-config.json"
	CONFIGSTOPSENG   = "ldw-stops-english.json"
	JSONINDENT       = "  "
	WRITEPERMS       = 0644
	DIRPERMS         = 0755
	BLACKANDWHITE    = false
	DEFAULTLOGLEVEL  = 2
	DEFAULTCORPUSDIR = "data/comments"
	DEFAULTCACHEDIR  = "data/models"
	DEFAULTOUTDIR    = "output"

	// a youtube video id is 11 chars of [A-Za-z0-9_-]: "comments_dQw4w9WgXcQ.txt" -> "dQw4w9WgXcQ"
	DEFAULTFILEPATTERN  = `([A-Za-z0-9_-]{11})\.txt$`
	DEFAULTTOKENPATTERN = `\p{L}{3,}`
	DEFAULTMINDF        = 5
	DEFAULTSEED         = 42

	LDAMETHOD       = "gibbs"
	LDATOPICS       = 10
	LDAITER         = 1500
	LDAALPHA        = 0.1
	LDAETA          = 0.01
	LDAREFRESH      = 100
	LDAXFORMPASSES  = 100
	LDABURNINPASSES = 1
	LDATOPN         = 10
	LDAVISTERMS     = 30
	LDAVISLAMBDA    = 0.6
	ROWSUMTOL       = 1e-6

	CACHETWFILE   = "topic_word_k%03d.bin"
	CACHEDTFILE   = "doc_topic_k%03d.bin"
	CACHEMANIFEST = "lda_manifest_k%03d.json"

	METAIDCOLUMN = "video_id"
	METATITLECOL = "title"

	DEFAULTCHRTWIDTH  = "1200px"
	DEFAULTCHRTHEIGHT = "800px"
	VIDEOEMBED        = `<iframe width="%d" height="%d" src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe>`
	VIDEOWIDTH        = 560
	VIDEOHEIGHT       = 315
)
