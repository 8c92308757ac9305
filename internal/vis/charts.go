//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/e-gun/LDAWorkshop/internal/xpl"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"math"
)

//
// GRAPHING
//

// globalopts - title, toolbox, size: what every chart here shares
func globalopts(title string, subtitle string) []charts.GlobalOpts {
	const (
		FONTSTYLE = "normal"
		LEFTALIGN = "20"
		BOTTALIGN = "1%"
		SAVETYPE  = "png"
		SAVESTR   = "Save to file..."
	)

	tst := opts.TextStyle{
		FontStyle: FONTSTYLE,
		FontSize:  16,
		Padding:   "15",
	}

	sst := opts.TextStyle{
		FontStyle: FONTSTYLE,
		FontSize:  10,
	}

	tit := opts.Title{
		Title:         title,
		TitleStyle:    &tst,
		Subtitle:      subtitle,
		SubtitleStyle: &sst,
		Bottom:        BOTTALIGN,
		Left:          LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  title,
		Title: SAVESTR, // get chinese if ""
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
}

// GroupBarChart - x axis = groups; one series per topic
func GroupBarChart(gm *dist.GroupMix) *charts.Bar {
	const (
		TITLE = "Mean topic mixture per group"
		SUBT  = "%d groups; %d topics"
	)

	ng, k := gm.Dims()
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalopts(TITLE, fmt.Sprintf(SUBT, ng, k)),
		charts.WithLegendOpts(opts.Legend{Show: true, Type: "scroll", Top: "5%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "P", Max: 1}),
	)...)

	bar.SetXAxis(gm.RowLabels())
	for j, topic := range gm.ColLabels() {
		bd := make([]opts.BarData, ng)
		for i := 0; i < ng; i++ {
			bd[i] = opts.BarData{Name: gm.RowLabels()[i], Value: round(gm.At(i, j))}
		}
		bar.AddSeries(topic, bd)
	}
	return bar
}

// TopicWordBarChart - the top n words of one topic as horizontal bars, largest at the top
func TopicWordBarChart(tw *dist.TopicWord, topic string, n int) (*charts.Bar, error) {
	const (
		TITLE = "%s: top %d words"
	)

	rr, err := xpl.TopWords(tw, topic, n)
	if err != nil {
		return nil, err
	}
	return rankedbars(fmt.Sprintf(TITLE, topic, len(rr)), "", topic, rr), nil
}

// rankedbars - echarts draws category axes bottom-up, hence the reversal
func rankedbars(title string, subtitle string, series string, rr []xpl.Ranked) *charts.Bar {
	labels := make([]string, len(rr))
	bd := make([]opts.BarData, len(rr))
	for i := range rr {
		r := rr[len(rr)-1-i]
		labels[i] = r.Label
		bd[i] = opts.BarData{Name: r.Label, Value: round(r.P)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalopts(title, subtitle)...)
	bar.SetXAxis(labels).AddSeries(series, bd,
		charts.WithLabelOpts(opts.Label{Show: true, Position: "right"}),
	)
	bar.XYReversal()
	return bar
}

// DocScatter - documents projected onto the first two principal components of their mixtures;
// one series per dominant topic
func DocScatter(dt *dist.DocTopic) (*charts.Scatter, error) {
	const (
		TITLE  = "Documents by topic mixture"
		SUBT   = "%d documents; principal components 1 & 2 (%.1f%% of variance)"
		SYMSZ  = 8
		DIMS   = 2
		XLABEL = "PC1"
		YLABEL = "PC2"
	)

	xy, explained, err := project(dt.Raw(), DIMS)
	if err != nil {
		return nil, err
	}

	nd, k := dt.Dims()
	points := make([][]opts.ScatterData, k)
	ids := dt.RowLabels()
	for d := 0; d < nd; d++ {
		t := xpl.DominantTopic(dt.Row(d))
		points[t] = append(points[t], opts.ScatterData{
			Name:       ids[d],
			Value:      []interface{}{round(xy.At(d, 0)), round(xy.At(d, 1))},
			SymbolSize: SYMSZ,
		})
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(globalopts(TITLE, fmt.Sprintf(SUBT, nd, explained*100)),
		charts.WithLegendOpts(opts.Legend{Show: true, Type: "scroll", Top: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: XLABEL, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: YLABEL, Type: "value"}),
	)...)

	for t, label := range dt.ColLabels() {
		if len(points[t]) == 0 {
			continue
		}
		sc.AddSeries(label, points[t])
	}
	return sc, nil
}

// project - the rows of x on its first dims principal components (zero-padded if there are fewer) and the
// share of the variance those components carry
func project(x *mat.Dense, dims int) (*mat.Dense, float64, error) {
	n, d := x.Dims()
	out := mat.NewDense(n, dims, nil)
	if n < 2 {
		return out, 1, nil
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, 0, lderr.Invalid("principal component analysis of a %dx%d matrix failed", n, d)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	_, nc := vecs.Dims()
	use := nc
	if use > dims {
		use = dims
	}

	var proj mat.Dense
	proj.Mul(x, vecs.Slice(0, d, 0, use))
	out.Slice(0, n, 0, use).(*mat.Dense).Copy(&proj)

	total, kept := 0.0, 0.0
	for i, v := range vars {
		total += v
		if i < use {
			kept += v
		}
	}
	explained := 1.0
	if total > 0 {
		explained = kept / total
	}
	return out, explained, nil
}

func round(val float64) float64 {
	const (
		PRECISION = 4
	)
	ratio := math.Pow(10, PRECISION)
	return math.Round(val*ratio) / ratio
}
