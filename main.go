package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"square-deps/build"
	"square-deps/extract"
	"square-deps/handlers"
	"square-deps/utils"
)

// options collects the command line flags
type options struct {
	configFile string
	buckets    []string
	resolved   bool
	verbose    bool
	logFile    string
}

// bucketReport is the outcome for one configuration of one project
type bucketReport struct {
	Build   string
	Project string
	Bucket  string
	Deps    []utils.SquareDependency
	Err     error
}

// ---------------------------
// Process build
// ---------------------------

// Projects of included builds are labelled with their identity path
// (":includeBuild:project"), as resolved artifacts would name them.
func processBuild(logger *utils.Logger, cfg *utils.Config, rules []utils.CurationRule, b *build.Build, included bool) []bucketReport {
	var reports []bucketReport

	for p := range b.AllProjects() {
		for _, conf := range p.Configurations {
			if !cfg.WantsBucket(conf.Name()) {
				continue
			}
			r := processBucket(logger, cfg, conf, p)
			r.Build = b.Name
			if included {
				r.Project = build.IdentityPath(b.Name, p.Path())
			}
			r.Deps = utils.ApplyCurations(r.Deps, rules)
			reports = append(reports, r)
		}
	}

	for _, ib := range b.Included {
		reports = append(reports, processBuild(logger, cfg, rules, ib, true)...)
	}
	return reports
}

func processBucket(logger *utils.Logger, cfg *utils.Config, bucket extract.Bucket, owner extract.BuildUnit) bucketReport {
	r := bucketReport{Project: owner.Path(), Bucket: bucket.Name()}

	declared := slices.Collect(extract.ClassifyAll(bucket, owner))
	logger.Debugf("%s %s: %d declared dependencies", owner.Path(), bucket.Name(), len(declared))

	var resolved []utils.SquareDependency
	if cfg.Resolved {
		seq, err := extract.ProjectDependencies(bucket, owner)
		if err != nil {
			logger.Errorf("%s %s: resolution failed: %v", owner.Path(), bucket.Name(), err)
			r.Err = err
			r.Deps = declared
			return r
		}
		resolved = slices.Collect(seq)
		if !bucket.Resolvable() {
			logger.Debugf("%s %s: not resolvable, skipped resolved artifacts", owner.Path(), bucket.Name())
		}
	}

	r.Deps = utils.MergeDependencies(declared, resolved)
	for _, d := range r.Deps {
		logger.Debugf("%s %s -> %s", owner.Path(), bucket.Name(), d)
	}
	return r
}

func printSummary(w io.Writer, reports []bucketReport) {
	fmt.Fprintln(w, "----- Dependency Summary -----")
	for _, r := range reports {
		status := fmt.Sprintf("%d dependencies", len(r.Deps))
		if r.Err != nil {
			status = fmt.Sprintf("error: %v", r.Err)
		}
		fmt.Fprintf(w, "- %s %s %s: %s\n", r.Build, r.Project, r.Bucket, status)
		utils.PrintDependencies(w, r.Deps)
	}
}

// ---------------------------
// Command
// ---------------------------
func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "square-deps [path]",
		Short:        "Normalize a build's dependencies into canonical targets",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, opts, path)
		},
	}
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to YAML config file")
	cmd.Flags().StringArrayVarP(&opts.buckets, "bucket", "b", nil, "Configuration to inspect (repeatable, default all)")
	cmd.Flags().BoolVar(&opts.resolved, "resolved", false, "Also report projects found in resolved artifacts")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Also write logs to this file")
	return cmd
}

func run(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := utils.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("bucket") {
		cfg.Buckets = opts.buckets
	}
	if flags.Changed("resolved") {
		cfg.Resolved = opts.resolved
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}

	logger, err := utils.NewLogger(utils.LoggerOptions{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	var rules []utils.CurationRule
	if cfg.Curations != "" {
		rules, err = utils.LoadCurations(cfg.Curations)
		if err != nil {
			return err
		}
		logger.Infof("Loaded %d curation rules from %s", len(rules), cfg.Curations)
	}

	start := time.Now()
	b, err := handlers.Load(logger, path)
	if err != nil {
		return err
	}

	reports := processBuild(logger, cfg, rules, b, false)
	printSummary(cmd.OutOrStdout(), reports)

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
		}
	}
	logger.Infof("Total elapsed time: %s", time.Since(start))
	if failed > 0 {
		return fmt.Errorf("%d configurations failed to resolve", failed)
	}
	return nil
}

// ---------------------------
// Main
// ---------------------------
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
