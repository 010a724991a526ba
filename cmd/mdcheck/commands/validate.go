package commands

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mdcheck/internal/config"
	"github.com/thoreinstein/mdcheck/internal/errors"
	"github.com/thoreinstein/mdcheck/internal/logging"
	"github.com/thoreinstein/mdcheck/internal/paths"
	"github.com/thoreinstein/mdcheck/internal/pipeline"
	"github.com/thoreinstein/mdcheck/internal/validator"
	"github.com/thoreinstein/mdcheck/pkg/fileutil"
)

var (
	jsonOutput     bool
	outputFile     string
	failOnWarnings bool
	workspaceRoot  string
	jobs           int
	timeout        time.Duration
	interactive    bool
	rulesFile      string
	disabled       []string
	enabled        []string
)

func init() {
	validateCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"output the report as JSON")
	validateCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"write the report to a file instead of stdout")
	validateCmd.Flags().BoolVar(&failOnWarnings, "fail-on-warnings", false,
		"treat warnings as failures")
	validateCmd.Flags().StringVar(&workspaceRoot, "workspace-root", "",
		"root directory for resolving related_docs paths (default: current directory)")
	validateCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"maximum documents validated concurrently (default: number of CPUs)")
	validateCmd.Flags().DurationVar(&timeout, "timeout", 0,
		"abort validation after this duration (e.g. 30s)")
	validateCmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"pick documents to validate with a fuzzy finder")
	validateCmd.Flags().StringVar(&rulesFile, "rules", "",
		"path to a TOML rule profile")
	validateCmd.Flags().StringSliceVar(&disabled, "disable", nil,
		"validators to disable (repeatable)")
	validateCmd.Flags().StringSliceVar(&enabled, "enable", nil,
		"validators to enable, disabling all others (repeatable)")

	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Validate MDC rule files",
	Long: `Validate runs the configured validator set over the given files and
directories. Directories are expanded using the include and exclude glob
patterns from configuration. With no paths, the current directory is
validated.

The exit code is 0 when validation passes, 1 when findings block, 2 for
usage errors, and 3 for system errors.`,
	Example: `  # Validate everything under the current directory
  mdcheck validate

  # Validate one file with only the frontmatter validator
  mdcheck validate --enable frontmatter rule.mdc

  # Enforce a shared rule profile
  mdcheck validate --rules team-rules.toml rules/`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	log := logging.FromContext(cmd.Context())

	if failOnWarnings {
		cfg.FailOnWarnings = true
	}
	if jobs > 0 {
		cfg.MaxWorkers = jobs
	}
	if workspaceRoot != "" {
		cfg.WorkspaceRoot = workspaceRoot
	}
	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}

	root, err := paths.WorkspaceRoot(cfg.WorkspaceRoot)
	if err != nil {
		return errors.NewUserError(err, "pass an existing directory to --workspace-root")
	}

	settings := cfg.Validators
	if cfg.RulesFile != "" {
		rules, err := config.LoadRules(cfg.RulesFile)
		if err != nil {
			return errors.NewUserError(err, "check the rules file path and TOML syntax")
		}
		settings = rules.Apply(settings)
	}

	cfg.Validators = settings
	configs, err := cfg.ValidatorConfigs()
	if err != nil {
		return errors.NewUserError(err, "severities must be one of: info, warning, error")
	}
	configs = applyEnableFlags(configs)

	registry := validator.NewRegistry(
		validator.NewFrontmatter(),
		validator.NewAnnotations(),
		validator.NewContent(),
		validator.NewXMLTags(),
		validator.NewCrossRef(root, nil),
	)

	p, err := pipeline.New(registry, configs,
		pipeline.WithWorkers(cfg.MaxWorkers),
		pipeline.WithLogger(log))
	if err != nil {
		return errors.NewUserError(err,
			fmt.Sprintf("known validators: %v", registry.Names()))
	}

	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}
	files, err := pipeline.Discover(targets, cfg.Include, cfg.Exclude)
	if err != nil {
		return errors.NewSystemError(err, "check that the given paths exist and are readable")
	}
	if len(files) == 0 {
		return errors.NewUserError(errors.ErrNoDocuments,
			"adjust the include/exclude patterns or pass files explicitly")
	}

	if interactive {
		files, err = pickDocuments(files)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info("validating documents",
		"documents", len(files),
		"workspace_root", root)

	report, err := p.Run(ctx, files)
	if err != nil {
		return errors.NewSystemError(err, "validation could not run")
	}

	if err := writeReport(cmd, report); err != nil {
		return err
	}

	if report.Failed(cfg.FailOnWarnings) {
		return errors.NewFindingsError(errors.ErrValidationFailed)
	}
	return nil
}

// applyEnableFlags folds the --enable and --disable flags into the
// validator configs. --enable names an allow-list; --disable switches
// individual validators off.
func applyEnableFlags(configs map[string]validator.Config) map[string]validator.Config {
	if len(enabled) == 0 && len(disabled) == 0 {
		return configs
	}
	if configs == nil {
		configs = make(map[string]validator.Config)
	}

	setEnabled := func(name string, on bool) {
		c := configs[name]
		c.Enabled = validator.Bool(on)
		configs[name] = c
	}

	if len(enabled) > 0 {
		allow := make(map[string]bool, len(enabled))
		for _, name := range enabled {
			allow[name] = true
		}
		for _, name := range []string{"frontmatter", "annotations", "content", "xmltags", "crossref"} {
			setEnabled(name, allow[name])
		}
	}
	for _, name := range disabled {
		setEnabled(name, false)
	}
	return configs
}

// writeReport renders the report to stdout or, with --output, atomically
// to a file.
func writeReport(cmd *cobra.Command, report *validator.RunReport) error {
	format := validator.FormatText
	if jsonOutput {
		format = validator.FormatJSON
	}

	if outputFile == "" {
		reporter := validator.NewReporter(cmd.OutOrStdout(), format, verbosity > 0)
		return reporter.Report(report)
	}

	var buf bytes.Buffer
	reporter := validator.NewReporter(&buf, format, verbosity > 0)
	if err := reporter.Report(report); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
		return errors.NewSystemError(err, "check that the output path is writable")
	}
	return nil
}
