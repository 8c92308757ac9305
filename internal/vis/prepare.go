//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/xpl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
	"sort"
	"strconv"
)

//
// INTERTOPIC MAP PREPARATION (after Sievert & Shirley's LDAvis)
//

// PrepInput - the five arrays the preparation needs; nothing else about the model is consulted
type PrepInput struct {
	TopicWord     *dist.TopicWord
	DocTopic      *dist.DocTopic
	DocLengths    []int
	Vocab         []string
	TermFrequency []int
}

// TopicPoint - where a topic sits on the intertopic map and how much of the corpus it covers
type TopicPoint struct {
	Topic      string
	X          float64
	Y          float64
	Proportion float64
}

// TermStat - corpus frequency and saliency of one vocabulary entry
type TermStat struct {
	Term      string
	Index     int
	Frequency int
	Saliency  float64
}

// Prepared - the layout; Topics are in topic order, Salient is sorted by saliency
type Prepared struct {
	Topics  []TopicPoint
	Salient []TermStat
	vocab   []string
	labels  []string
	logphi  *mat.Dense
	loglift *mat.Dense
}

// Prepare - topic proportions, a 2-D map of the Jensen-Shannon distances between topics (classical
// multidimensional scaling), term saliency, and the tables that Relevant() needs
func Prepare(in PrepInput) (*Prepared, error) {
	if in.TopicWord == nil || in.DocTopic == nil {
		return nil, lderr.Invalid("Prepare() needs both distributions")
	}
	k, nv := in.TopicWord.Dims()
	nd, dk := in.DocTopic.Dims()

	switch {
	case dk != k:
		return nil, &lderr.ShapeMismatchError{What: "document-topic mixture", WantR: nd, WantC: k, GotR: nd, GotC: dk}
	case len(in.DocLengths) != nd:
		return nil, &lderr.ShapeMismatchError{What: "document lengths", WantR: nd, WantC: 1, GotR: len(in.DocLengths), GotC: 1}
	case len(in.Vocab) != nv:
		return nil, &lderr.ShapeMismatchError{What: "vocabulary", WantR: 1, WantC: nv, GotR: 1, GotC: len(in.Vocab)}
	case len(in.TermFrequency) != nv:
		return nil, &lderr.ShapeMismatchError{What: "term frequencies", WantR: 1, WantC: nv, GotR: 1, GotC: len(in.TermFrequency)}
	}

	// [a] topic proportions: expected number of tokens per topic

	prop := make([]float64, k)
	for d := 0; d < nd; d++ {
		floats.AddScaled(prop, float64(in.DocLengths[d]), in.DocTopic.Row(d))
	}
	total := floats.Sum(prop)
	if !(total > 0) {
		return nil, lderr.Invalid("Prepare(): the corpus has no tokens")
	}
	floats.Scale(1/total, prop)

	// [b] term marginals p(w) = sum_k p(w|k) p(k)

	phi := in.TopicWord.Raw()
	marg := make([]float64, nv)
	for t := 0; t < k; t++ {
		floats.AddScaled(marg, prop[t], phi.RawRowView(t))
	}

	// [c] saliency(w) = p(w) * sum_k p(k|w) log(p(k|w) / p(k)); p(w) from the observed counts

	tf := 0
	for _, n := range in.TermFrequency {
		tf += n
	}
	stats := make([]TermStat, nv)
	for w := 0; w < nv; w++ {
		distinct := 0.0
		for t := 0; t < k; t++ {
			if prop[t] == 0 || marg[w] == 0 {
				continue
			}
			pkw := phi.At(t, w) * prop[t] / marg[w]
			if pkw > 0 {
				distinct += pkw * math.Log(pkw/prop[t])
			}
		}
		pw := marg[w]
		if tf > 0 {
			pw = float64(in.TermFrequency[w]) / float64(tf)
		}
		stats[w] = TermStat{Term: in.Vocab[w], Index: w, Frequency: in.TermFrequency[w], Saliency: pw * distinct}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Saliency > stats[j].Saliency })

	// [d] relevance ingredients: log p(w|k) and log lift

	logphi := mat.NewDense(k, nv, nil)
	loglift := mat.NewDense(k, nv, nil)
	for t := 0; t < k; t++ {
		for w := 0; w < nv; w++ {
			p := phi.At(t, w)
			logphi.Set(t, w, math.Log(p))
			loglift.Set(t, w, math.Log(p/marg[w]))
		}
	}

	// [e] the map

	coords, err := classicalmds(jsdistances(phi), 2)
	if err != nil {
		return nil, err
	}
	labels := in.TopicWord.RowLabels()
	pts := make([]TopicPoint, k)
	for t := range pts {
		pts[t] = TopicPoint{Topic: labels[t], X: coords.At(t, 0), Y: coords.At(t, 1), Proportion: prop[t]}
	}

	return &Prepared{
		Topics:  pts,
		Salient: stats,
		vocab:   append([]string(nil), in.Vocab...),
		labels:  labels,
		logphi:  logphi,
		loglift: loglift,
	}, nil
}

// PrepareFromModel - the usual case: the arrays all come from one fit and one matrix
func PrepareFromModel(tw *dist.TopicWord, dt *dist.DocTopic, doclengths []int, termfreq []int) (*Prepared, error) {
	return Prepare(PrepInput{
		TopicWord:     tw,
		DocTopic:      dt,
		DocLengths:    doclengths,
		Vocab:         tw.ColLabels(),
		TermFrequency: termfreq,
	})
}

// Relevant - lambda*log p(w|k) + (1-lambda)*log(p(w|k)/p(w)); lambda = 1 is plain probability, lambda = 0 is lift
func (p *Prepared) Relevant(topic string, lambda float64, n int) ([]xpl.Ranked, error) {
	if lambda < 0 || lambda > 1 {
		return nil, lderr.Invalid("relevance lambda must be in [0, 1], got %g", lambda)
	}
	t := -1
	for i, l := range p.labels {
		if l == topic {
			t = i
		}
	}
	if t < 0 {
		return nil, &lderr.LookupError{Kind: "topic", Key: topic}
	}
	if n < 1 {
		return nil, &lderr.LookupError{Kind: "top-N size", Key: strconv.Itoa(n)}
	}

	_, nv := p.logphi.Dims()
	rr := make([]xpl.Ranked, nv)
	for w := 0; w < nv; w++ {
		r := lambda*p.logphi.At(t, w) + (1-lambda)*p.loglift.At(t, w)
		rr[w] = xpl.Ranked{Label: p.vocab[w], Index: w, P: r}
	}
	sort.SliceStable(rr, func(i, j int) bool { return rr[i].P > rr[j].P })
	if n < len(rr) {
		rr = rr[:n]
	}
	return rr, nil
}

// jsdistances - pairwise Jensen-Shannon divergence between the rows of phi
func jsdistances(phi *mat.Dense) *mat.SymDense {
	k, nv := phi.Dims()
	d := mat.NewSymDense(k, nil)
	m := make([]float64, nv)
	kl := func(p, q []float64) float64 {
		s := 0.0
		for i := range p {
			if p[i] > 0 {
				s += p[i] * math.Log(p[i]/q[i])
			}
		}
		return s
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			p, q := phi.RawRowView(i), phi.RawRowView(j)
			floats.AddTo(m, p, q)
			floats.Scale(0.5, m)
			d.SetSym(i, j, 0.5*kl(p, m)+0.5*kl(q, m))
		}
	}
	return d
}

// classicalmds - Torgerson scaling: double-center the squared distances and keep the leading eigenvectors
func classicalmds(dd *mat.SymDense, dims int) (*mat.Dense, error) {
	k, _ := dd.Dims()
	out := mat.NewDense(k, dims, nil)
	if k < 2 {
		return out, nil
	}

	// b = -1/2 J D² J with J = I - 11'/k
	b := mat.NewSymDense(k, nil)
	rowmean := make([]float64, k)
	grand := 0.0
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v := dd.At(i, j) * dd.At(i, j)
			rowmean[i] += v / float64(k)
			grand += v / float64(k*k)
		}
	}
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			v := dd.At(i, j) * dd.At(i, j)
			b.SetSym(i, j, -0.5*(v-rowmean[i]-rowmean[j]+grand))
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(b, true); !ok {
		return nil, lderr.Invalid("multidimensional scaling: eigendecomposition failed")
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// eigenvalues come back in ascending order
	for c := 0; c < dims && c < k; c++ {
		col := k - 1 - c
		l := vals[col]
		if l <= 0 {
			continue
		}
		s := math.Sqrt(l)
		for i := 0; i < k; i++ {
			out.Set(i, c, vecs.At(i, col)*s)
		}
	}
	return out, nil
}
