//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/dist"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/e-gun/LDAWorkshop/internal/lnch"
	"github.com/e-gun/LDAWorkshop/internal/vv"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"os"
	"strconv"
)

//
// COMMAND LINE
//

var (
	cfgfile  string
	profmode string
	loglevel int
	bw       bool

	corpusdir  string
	topics     int
	iterations int
	seed       uint64
	method     string
	mindf      int
	nocache    bool

	topn    int
	docid   string
	exemp   string
	groups  bool
	outdir  string
	nvideos int

	cfg      *lnch.Configuration
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:               "ldw",
	Short:             "Topic models of a comment corpus",
	Long:              `LDA Workshop loads a directory of comment files, fits a topic model and explores the result.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit (or load) a model and print its topics",
	Args:  cobra.NoArgs,
	RunE:  runFit,
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Inspect a fitted model",
	Args:  cobra.NoArgs,
	RunE:  runExplore,
}

var visCmd = &cobra.Command{
	Use:   "vis",
	Short: "Write the html charts for a model",
	Args:  cobra.NoArgs,
	RunE:  runVis,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lnch.PrintVersion(*cfg)
		lnch.PrintBuildInfo()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgfile, "config", "c", "", "configuration file (default ~/.config/"+vv.CONFIGBASIC+")")
	pf.IntVarP(&loglevel, "loglevel", "l", vv.DEFAULTLOGLEVEL, "message level (0-5)")
	pf.BoolVar(&bw, "bw", vv.BLACKANDWHITE, "no color in the console")
	pf.StringVar(&profmode, "profile", "", "write a 'cpu' or 'mem' profile to the working directory")

	pf.StringVar(&corpusdir, "corpus", vv.DEFAULTCORPUSDIR, "corpus directory")
	pf.IntVarP(&topics, "topics", "k", vv.LDATOPICS, "number of topics")
	pf.IntVarP(&iterations, "iterations", "i", vv.LDAITER, "sampling iterations")
	pf.Uint64Var(&seed, "seed", vv.DEFAULTSEED, "random seed for the shuffle and the sampler")
	pf.StringVar(&method, "method", vv.LDAMETHOD, "inference method (gibbs, scvb)")
	pf.IntVar(&mindf, "mindf", vv.DEFAULTMINDF, "minimum document frequency of a term")
	pf.BoolVar(&nocache, "nocache", false, "always fit; never load a cached model")

	exploreCmd.Flags().IntVarP(&topn, "top", "n", vv.LDATOPN, "rows per listing")
	exploreCmd.Flags().StringVarP(&docid, "doc", "d", "", "show the topic mixture of this document id")
	exploreCmd.Flags().StringVarP(&exemp, "topic", "t", "", "show the exemplar documents of this topic (number or label)")
	exploreCmd.Flags().BoolVarP(&groups, "groups", "g", false, "show the mean topic mixture of every group")

	visCmd.Flags().StringVarP(&outdir, "out", "o", "", "output directory (default from the configuration)")
	visCmd.Flags().IntVar(&nvideos, "videos", 3, "videos to embed per topic (0 for none)")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(visCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup - configuration file first, then whatever flags were actually given
func setup(cmd *cobra.Command, args []string) error {
	c, err := lnch.ConfigAtLaunch(cfgfile)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	if fl.Changed("loglevel") {
		c.LogLevel = loglevel
	}
	if fl.Changed("bw") {
		c.BlackAndWhite = bw
	}
	if fl.Changed("corpus") {
		c.CorpusDir = corpusdir
	}
	if fl.Changed("topics") {
		c.LDA.K = topics
	}
	if fl.Changed("iterations") {
		c.LDA.Iterations = iterations
	}
	if fl.Changed("seed") {
		c.LDA.Seed = seed
	}
	if fl.Changed("method") {
		c.LDA.Method = method
	}
	if fl.Changed("mindf") {
		c.MinDF = mindf
	}
	if nocache {
		c.UseCache = false
	}

	lnch.ConfigureMessages(c)
	if err = c.Validate(); err != nil {
		return err
	}
	cfg = c

	switch profmode {
	case "":
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return lderr.Invalid("unknown profile mode '%s'", profmode)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if profiler != nil {
		profiler.Stop()
	}
}

func runFit(cmd *cobra.Command, args []string) error {
	lnch.PrintVersion(*cfg)
	r, err := RunPipeline(cfg, cfg.UseCache)
	if err != nil {
		return err
	}
	rep := r.Report(cmd.OutOrStdout())
	if err = rep.Topics(); err != nil {
		return err
	}
	gm, err := r.GroupMix()
	if err != nil {
		return err
	}
	rep.Groups(gm)
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	r, err := RunPipeline(cfg, cfg.UseCache)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = topn
	}
	rep := r.Report(cmd.OutOrStdout())

	shown := false
	if docid != "" {
		if err = rep.Document(docid); err != nil {
			return err
		}
		shown = true
	}
	if exemp != "" {
		if err = rep.Exemplars(topiclabel(exemp)); err != nil {
			return err
		}
		shown = true
	}
	if groups {
		gm, gerr := r.GroupMix()
		if gerr != nil {
			return gerr
		}
		rep.Groups(gm)
		shown = true
	}
	if !shown {
		return rep.Topics()
	}
	return nil
}

func runVis(cmd *cobra.Command, args []string) error {
	const (
		MSG1 = "charts written to %s"
	)
	r, err := RunPipeline(cfg, cfg.UseCache)
	if err != nil {
		return err
	}
	dir := cfg.OutDir
	if outdir != "" {
		dir = outdir
	}
	if err = os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return err
	}
	fn, err := r.WriteCharts(dir, nvideos)
	if err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, fn))
	return nil
}

// topiclabel - "3" and "Topic 3" name the same topic
func topiclabel(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return dist.TopicLabel(n - 1)
	}
	return s
}
