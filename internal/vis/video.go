//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"html"
	"html/template"
	"net/url"
)

// EmbedVideo - document id --> youtube iframe; purely presentational
func EmbedVideo(id string) template.HTML {
	return template.HTML(fmt.Sprintf(vv.VIDEOEMBED, vv.VIDEOWIDTH, vv.VIDEOHEIGHT, url.PathEscape(id)))
}

// VideoBlock - a heading and one iframe per id
func VideoBlock(heading string, ids []string) template.HTML {
	s := fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(heading))
	for _, id := range ids {
		s += string(EmbedVideo(id)) + "\n"
	}
	return template.HTML(s)
}
