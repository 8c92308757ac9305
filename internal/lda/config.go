//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/mm"
	"github.com/e-gun/LDAWorkshop/internal/vec"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"sort"
)

var Msg = mm.Shared()

// Config - K and Iterations have no principled default; the defaults below are only a starting point
type Config struct {
	K          int     `json:"k"`
	Iterations int     `json:"iterations"`
	Alpha      float64 `json:"alpha"`
	Eta        float64 `json:"eta"`
	Seed       uint64  `json:"seed"`
	Method     string  `json:"method"`
	Refresh    int     `json:"refresh"`
	BurnIn     int     `json:"burn_in"`
	XformPass  int     `json:"transformation_passes"`
}

func DefaultConfig() Config {
	return Config{
		K:          vv.LDATOPICS,
		Iterations: vv.LDAITER,
		Alpha:      vv.LDAALPHA,
		Eta:        vv.LDAETA,
		Seed:       vv.DEFAULTSEED,
		Method:     vv.LDAMETHOD,
		Refresh:    vv.LDAREFRESH,
		BurnIn:     vv.LDABURNINPASSES,
		XformPass:  vv.LDAXFORMPASSES,
	}
}

// Validate - everything that can be checked without looking at the data
func (c Config) Validate() error {
	switch {
	case c.K < 1:
		return lderr.Invalid("number of topics must be >= 1, got %d", c.K)
	case c.Iterations < 1:
		return lderr.Invalid("iteration count must be >= 1, got %d", c.Iterations)
	case !(c.Alpha > 0):
		return lderr.Invalid("alpha must be > 0, got %g", c.Alpha)
	case !(c.Eta > 0):
		return lderr.Invalid("eta must be > 0, got %g", c.Eta)
	case c.Refresh < 0:
		return lderr.Invalid("refresh interval must be >= 0, got %d", c.Refresh)
	case c.BurnIn < 0 || c.XformPass < 0:
		return lderr.Invalid("pass counts must be >= 0")
	}
	if _, err := GetMethod(c.Method); err != nil {
		return err
	}
	return nil
}

//
// METHOD REGISTRY
//

// Sampler - what an inference method has to offer; Train() is called exactly once
type Sampler interface {
	Train(iterations int) error
	// Phi - K x |V|
	Phi() *mat.Dense
	// Theta - |D| x K
	Theta() *mat.Dense
	LogLikelihood() []float64
}

// SamplerCtor - rng is the only source of randomness a method may use
type SamplerCtor func(dtm *vec.DocTermMatrix, cfg Config, rng *rand.Rand) (Sampler, error)

var constructors = make(map[string]SamplerCtor)

// Register - new methods call this from an init()
func Register(name string, c SamplerCtor) {
	constructors[name] = c
}

func GetMethod(name string) (SamplerCtor, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, lderr.Invalid("unknown inference method %q (known: %v)", name, Methods())
	}
	return c, nil
}

// Methods - the registered method names, sorted
func Methods() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
