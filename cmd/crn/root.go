package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/crnr/cronrunner/internal/config"
	"github.com/crnr/cronrunner/internal/constants"
	"github.com/crnr/cronrunner/internal/crontab"
	"github.com/crnr/cronrunner/internal/envfile"
	"github.com/crnr/cronrunner/internal/logger"
	"github.com/crnr/cronrunner/internal/menu"
)

// exitError carries a specific process exit code out of RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type options struct {
	listOnly bool
	asJSON   bool
	output   string
	safe     bool
	tag      string
	detach   bool
	envFile  string
	noColor  bool
	verbose  bool
}

var opts options

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crn [ID]",
	Short: "Run cron jobs manually",
	Long: `Crn reads your crontab and lets you run its jobs on demand,
either from an interactive menu or directly by ID, fingerprint or tag.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolVarP(&opts.listOnly, "list-only", "l", false, "List available jobs and exit")
	rootCmd.Flags().BoolVar(&opts.asJSON, "as-json", false, "Render --list-only as JSON")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Listing format: json or yaml")
	rootCmd.Flags().BoolVarP(&opts.safe, "safe", "s", false, "Use job fingerprints")
	rootCmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Run specific tag")
	rootCmd.Flags().BoolVarP(&opts.detach, "detach", "d", false, "Run job in the background")
	rootCmd.Flags().StringVarP(&opts.envFile, "env", "e", "", "Override job environment from a file")
	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return &exitError{code: 1}
	}
	applyConfig(&opts, cfg)

	st := menu.StylesFor(opts.noColor)
	log := newLogger(cfg, opts.verbose)

	tab, err := crontab.MakeInstance()
	if err != nil {
		return exitFromReadError(cmd, st, err)
	}

	if opts.envFile != "" {
		env, err := envfile.Load(opts.envFile)
		if err != nil {
			printError(cmd, st, err.Error())
			return &exitError{code: 1}
		}
		tab.SetEnv(env)
		log.Debug("environment overridden", logger.Field{Key: "file", Value: opts.envFile}, logger.Field{Key: "variables", Value: len(env)})
	}

	if opts.listOnly || opts.asJSON || opts.output != "" {
		return runList(cmd, tab, st)
	}

	if opts.tag != "" {
		job := tab.GetJobFromTag(opts.tag)
		if job == nil {
			printError(cmd, st, constants.MsgInvalidSelection)
			return &exitError{code: 1}
		}
		return runJob(cmd, log, st, tab, *job)
	}

	if len(args) == 1 {
		job, err := jobFromArgument(tab, args[0], opts.safe)
		if err != nil {
			printError(cmd, st, err.Error())
			return &exitError{code: 1}
		}
		return runJob(cmd, log, st, tab, *job)
	}

	return runInteractive(cmd, log, st, tab)
}

func runInteractive(cmd *cobra.Command, log *logger.Logger, st menu.Styles, tab *crontab.Crontab) error {
	out := cmd.OutOrStdout()

	if !tab.HasRunnableJobs() {
		fmt.Fprintln(out, constants.MsgNoJobs)
		return nil
	}

	jobs := tab.Jobs()
	fmt.Fprintln(out, menu.Render(jobs, st))

	selection, err := menu.Select(cmd.InOrStdin(), out)
	if err != nil {
		printError(cmd, st, err.Error())
		return &exitError{code: 1}
	}
	if selection == nil {
		return nil
	}

	if *selection == 42 && len(jobs) < 42 {
		fmt.Fprintln(out, constants.MsgUltimateAnswer)
		return nil
	}

	job := tab.GetJobFromUID(*selection)
	if job == nil {
		printError(cmd, st, constants.MsgInvalidSelection)
		return &exitError{code: 1}
	}

	fmt.Fprintf(out, "%s %s\n", st.Highlight.Render("$"), job.Command)
	return runJob(cmd, log, st, tab, *job)
}

// jobFromArgument resolves a positional argument: a fingerprint in
// lowercase hex when safe mode is on, a UID otherwise.
func jobFromArgument(tab *crontab.Crontab, arg string, safe bool) (*crontab.CronJob, error) {
	if safe {
		fingerprint, err := strconv.ParseUint(arg, 16, 64)
		if err != nil {
			return nil, menu.ErrInvalidSelection
		}
		if job := tab.GetJobFromFingerprint(fingerprint); job != nil {
			return job, nil
		}
		return nil, menu.ErrInvalidSelection
	}

	uid, err := strconv.Atoi(arg)
	if err != nil {
		return nil, menu.ErrInvalidSelection
	}
	if job := tab.GetJobFromUID(uid); job != nil {
		return job, nil
	}
	return nil, menu.ErrInvalidSelection
}

func runJob(cmd *cobra.Command, log *logger.Logger, st menu.Styles, tab *crontab.Crontab, job crontab.CronJob) error {
	runLog := log.With(logger.Field{Key: "run_id", Value: uuid.NewString()})
	runLog.Debug("running job",
		logger.Field{Key: "uid", Value: job.UID},
		logger.Field{Key: "command", Value: job.Command},
		logger.Field{Key: "detached", Value: opts.detach},
	)

	var result crontab.RunResult
	if opts.detach {
		result = tab.RunDetached(job)
	} else {
		result = tab.Run(job)
	}

	switch detail := result.Detail.(type) {
	case crontab.IsRunning:
		runLog.Debug("job detached", logger.Field{Key: "pid", Value: detail.PID})
		fmt.Fprintln(cmd.OutOrStdout(), detail.PID)
		return nil
	case crontab.DidNotRun:
		runLog.Debug("job did not run", logger.Field{Key: "reason", Value: detail.Reason})
		printError(cmd, st, detail.Reason)
		return &exitError{code: 1}
	case crontab.DidRun:
		if result.WasSuccessful {
			return nil
		}
		return &exitError{code: exitCodeFrom(detail.ExitCode)}
	}
	return nil
}

// exitCodeFrom maps a child exit code onto ours. Absent or out-of-range
// codes become a generic 1.
func exitCodeFrom(code *int) int {
	if code == nil || *code < 0 || *code > 255 {
		return 1
	}
	return *code
}

func exitFromReadError(cmd *cobra.Command, st menu.Styles, err error) error {
	var readErr *crontab.ReadError
	if !errors.As(err, &readErr) {
		printError(cmd, st, err.Error())
		return &exitError{code: 1}
	}

	printError(cmd, st, readErr.Reason)
	if stderr := strings.TrimSuffix(readErr.Stderr, "\n"); stderr != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), stderr)
	}
	if readErr.ExitCode != nil {
		return &exitError{code: exitCodeFrom(readErr.ExitCode)}
	}
	return &exitError{code: 1}
}

func printError(cmd *cobra.Command, st menu.Styles, message string) {
	fmt.Fprintln(cmd.ErrOrStderr(), st.Error.Render(message))
}

// applyConfig fills in options the command line left unset, from the
// environment first and the config file second.
func applyConfig(o *options, cfg *config.Config) {
	if !o.safe {
		if _, ok := os.LookupEnv(constants.EnvSafe); ok {
			o.safe = true
		} else if cfg.Runner.Safe {
			o.safe = true
		}
	}

	if o.envFile == "" {
		if file := os.Getenv(constants.EnvEnvFile); file != "" {
			o.envFile = file
		} else if cfg.Runner.EnvFile != "" {
			o.envFile = cfg.Runner.EnvFile
		}
	}

	if !o.noColor && cfg.Runner.NoColor {
		o.noColor = true
	}
}

func newLogger(cfg *config.Config, verbose bool) *logger.Logger {
	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if verbose {
		logCfg.Level = "debug"
	}

	log, err := logger.New(logCfg)
	if err != nil {
		log, _ = logger.New(logger.Config{Level: "info", Format: "text", Output: "stderr"})
	}
	return log
}
