//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/LDAWorkshop/internal/mm"
)

// ConfigureMessages - the shared MessageMaker picks up the log level and colour choice of the configuration
func ConfigureMessages(c *Configuration) *mm.MessageMaker {
	m := mm.Shared()
	m.LLvl = c.LogLevel
	m.BW = c.BlackAndWhite
	return m
}
