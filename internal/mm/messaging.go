//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGFYI
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	GREY3                = "\033[38;5;242m" // Grey42
	BLINK                = "\033[30;0;5m"
	FAILURE              = "[%s v.%s] (%s) UNRECOVERABLE ERROR"
)

var levelcolors = map[int]color.Attribute{
	MSGMAND: color.FgGreen,
	MSGCRIT: color.FgRed,
	MSGWARN: color.FgHiYellow,
	MSGNOTE: color.FgYellow,
	MSGFYI:  color.FgHiCyan,
	MSGPEEK: color.FgBlue,
	MSGTMI:  color.FgHiBlack,
}

var (
	shared     *MessageMaker
	sharedonce sync.Once
)

// Shared - the one MessageMaker every package logs through; the CLI adjusts its level and colors
func Shared() *MessageMaker {
	sharedonce.Do(func() {
		shared = NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
	})
	return shared
}

// MessageMaker - leveled terminal output; LLvl is the highest level that will be emitted
type MessageMaker struct {
	Lnc  time.Time
	BW   bool
	LLvl int
	LNm  string
	SNm  string
	Ver  string
	Win  bool
	Out  io.Writer
	mtx  sync.Mutex
	prnt *message.Printer
}

// NewMessageMaker - a MessageMaker writing to stdout at level MSGCRIT
func NewMessageMaker(longname string, shortname string, version string) *MessageMaker {
	return &MessageMaker{
		Lnc:  time.Now(),
		LLvl: MSGCRIT,
		LNm:  longname,
		SNm:  shortname,
		Ver:  version,
		Win:  runtime.GOOS == "windows",
		Out:  os.Stdout,
		prnt: message.NewPrinter(language.English),
	}
}

// Emit - send a message to the terminal, perhaps adding color to it
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "[LDW] Vectorize() kept 4,812 of 19,227 terms"

	if m.LLvl < threshold {
		return
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	w := m.Out
	if w == nil {
		w = os.Stdout
	}

	if m.Win || m.BW {
		// terminal color codes not w's friend
		_, _ = fmt.Fprintf(w, "[%s] %s\n", m.SNm, message)
		return
	}

	attr, ok := levelcolors[threshold]
	if !ok {
		attr = color.FgWhite
	}
	c := color.New(attr)
	c.EnableColor()
	sn := color.New(color.FgYellow)
	sn.EnableColor()
	_, _ = fmt.Fprintf(w, "[%s] %s\n", sn.Sprint(m.SNm), c.Sprint(message))
}

// MAND - always emitted
func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }

// CRIT - level 0
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }

func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }

func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }

func (m *MessageMaker) FYI(s string) { m.Emit(s, MSGFYI) }

func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }

func (m *MessageMaker) TMI(s string) { m.Emit(s, MSGTMI) }

// Count - 12345 --> "12,345"
func (m *MessageMaker) Count(n int) string {
	if m.prnt == nil {
		m.prnt = message.NewPrinter(language.English)
	}
	return m.prnt.Sprintf("%d", n)
}

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD    = "\033[1m"
		ITAL    = "\033[3m"
		UNDER   = "\033[4m"
		REVERSE = "\033[7m"
		STRIKE  = "\033[9m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S4", "", "S5", "", "S0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S4", STRIKE, "S5", REVERSE,
			"S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// Failure - report an error and the function that produced it; returns the error untouched
func (m *MessageMaker) Failure(err error, fn string) error {
	if err == nil {
		return nil
	}
	m.Emit(fmt.Sprintf(FAILURE, m.LNm, m.Ver, fn), MSGMAND)
	m.Emit(err.Error(), MSGCRIT)
	return err
}

// ExitOrHang - Windows should hang to keep the error visible before the window closes and hides it
func (m *MessageMaker) ExitOrHang(e int) {
	const (
		HANG = `Execution suspended. %s is now frozen. Note any errors above. Execution will halt after %d seconds.`
		SUSP = 60
	)
	if m.Win {
		m.Emit(fmt.Sprintf(HANG, m.LNm, SUSP), MSGMAND)
		time.Sleep(SUSP * time.Second)
	}
	os.Exit(e)
}

// Timer - report how much time elapsed between A and B
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	// sample output: "[C2: 33.764s][Δ: 8.024s] gibbs sampling finished"
	d := fmt.Sprintf("[Δ: %.3fs] ", time.Since(previous).Seconds())
	o = fmt.Sprintf("[%s: %.3fs]", letter, time.Since(start).Seconds()) + d + o
	m.Emit(o, TIMETRACKERMSGTHRESH)
}
