//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"github.com/e-gun/LDAWorkshop/internal/lnch"
	"github.com/e-gun/LDAWorkshop/internal/mm"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

var Msg = mm.Shared()

func main() {
	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	if err := rootCmd.Execute(); err != nil {
		_ = Msg.Failure(err, "LDAWorkshop")
		Msg.ExitOrHang(1)
	}
}
