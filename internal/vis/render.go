//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"bytes"
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/mm"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/go-echarts/go-echarts/v2/components"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

var Msg = mm.Shared()

//
// PAGES
//

// pagedata - the page plus whatever html should follow the charts
type pagedata struct {
	*components.Page
	Extras []template.HTML
}

// RenderPage - one self-contained html document holding every chart and then the extras
func RenderPage(w io.Writer, title string, extras []template.HTML, cc ...components.Charter) error {
	p := components.NewPage()
	p.PageTitle = title
	p.SetLayout(components.PageFlexLayout)
	p.AddCharts(cc...)

	pd := &pagedata{Page: p, Extras: extras}
	r := NewCustomPageRender(pd, p.Validate)
	return r.Render(w)
}

// WritePage - RenderPage() into a file; parent directories are created as needed
func WritePage(path string, title string, extras []template.HTML, cc ...components.Charter) error {
	const (
		MSG1 = "WritePage(): wrote %s"
	)
	if err := os.MkdirAll(filepath.Dir(path), vv.DIRPERMS); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, title, extras, cc...); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), vv.WRITEPERMS); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, path))
	return nil
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// ModRenderer etc modified from https://github.com/go-echarts/go-echarts/render/engine.go
type ModRenderer interface {
	Render(w io.Writer) error
}

type CustomPageRender struct {
	c      interface{}
	before []func()
}

// NewCustomPageRender returns a render implementation for Page.
func NewCustomPageRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *CustomPageRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "page"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	contents := []string{CustomHeaderTpl, CustomBaseTpl, CustomPageTpl}
	tpl := ModMustTemplate(TEMPLNAME, contents)

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, TEMPLNAME, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// ModMustTemplate creates a new template with the given name and parsed contents.
func ModMustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	}).Parse(contents[0]))

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// CustomHeaderTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var CustomHeaderTpl = `
{{ define "header" }}
<head>
    <meta charset="utf-8">
    <title>{{ .PageTitle }}</title>
{{- range .JSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CustomizedJSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
{{- range .CustomizedCSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
    <style> .box { justify-content:center; display:flex; flex-wrap:wrap } .extras { margin: 2em; } </style>
</head>
{{ end }}
`

var CustomBaseTpl = `
{{- define "base" }}
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var CustomPageTpl = `
{{- define "page" }}
<!DOCTYPE html>
<html>
{{- template "header" . }}
<body>
	{{ if eq .Layout "flex" }}
		<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
	{{ else }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}
	{{ if .Extras }}
	<div class="extras">
		{{- range .Extras }}
		{{ . }}
		{{- end }}
	</div>
	{{ end }}
</body>
</html>
{{ end }}
`
