//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/xpl"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"math"
)

// RenderPrepared - the intertopic map, the most salient terms, and the n most relevant terms of every topic
func RenderPrepared(p *Prepared, lambda float64, n int) ([]components.Charter, error) {
	const (
		SALTITLE = "Top %d most salient terms"
		RELTITLE = "%s: top %d relevant terms"
		RELSUBT  = "λ = %.2f; %.1f%% of tokens"
	)

	cc := []components.Charter{intertopicmap(p)}

	top := n
	if top > len(p.Salient) {
		top = len(p.Salient)
	}
	sal := make([]xpl.Ranked, top)
	for i := 0; i < top; i++ {
		sal[i] = xpl.Ranked{Label: p.Salient[i].Term, Index: p.Salient[i].Index, P: float64(p.Salient[i].Frequency)}
	}
	cc = append(cc, rankedbars(fmt.Sprintf(SALTITLE, top), "overall term frequency", "frequency", sal))

	for _, tp := range p.Topics {
		rr, err := p.Relevant(tp.Topic, lambda, n)
		if err != nil {
			return nil, err
		}
		cc = append(cc, rankedbars(fmt.Sprintf(RELTITLE, tp.Topic, len(rr)), fmt.Sprintf(RELSUBT, lambda, tp.Proportion*100), "relevance", rr))
	}
	return cc, nil
}

// intertopicmap - bubble area follows the share of tokens
func intertopicmap(p *Prepared) *charts.Scatter {
	const (
		TITLE  = "Intertopic distance map"
		SUBT   = "multidimensional scaling of Jensen-Shannon divergence"
		MAXSYM = 80
		MINSYM = 6
	)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(globalopts(TITLE, SUBT),
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value"}),
	)...)

	pts := make([]opts.ScatterData, len(p.Topics))
	for i, tp := range p.Topics {
		sz := int(math.Round(math.Sqrt(tp.Proportion) * MAXSYM))
		if sz < MINSYM {
			sz = MINSYM
		}
		pts[i] = opts.ScatterData{
			Name:       tp.Topic,
			Value:      []interface{}{round(tp.X), round(tp.Y)},
			SymbolSize: sz,
		}
	}
	sc.AddSeries("topics", pts,
		charts.WithLabelOpts(opts.Label{Show: true, Position: "inside", Formatter: "{b}"}),
	)
	return sc
}
