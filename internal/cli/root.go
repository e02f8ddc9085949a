// Package cli implements the cobra-based CLI commands for screensplit.
//
// Each subcommand (table, validate, lookup, addr) is defined in its own
// file within this package. This file defines the root command that serves
// as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shinji-kodama/screensplit/internal/config"
	"github.com/shinji-kodama/screensplit/internal/layout"
	"github.com/shinji-kodama/screensplit/internal/logging"
	"github.com/shinji-kodama/screensplit/internal/model"
	"github.com/shinji-kodama/screensplit/internal/report"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// formatName selects the output format (text, json, yaml, compose, docker).
	formatName string

	// configPath is an explicit config file. When empty, the working
	// directory is searched for screensplit.{yaml,yml,json,jsonc}.
	configPath string

	// verbose enables debug logging on stderr.
	verbose bool

	// logFile redirects diagnostics to a rotated file.
	logFile string

	// logLevel is the logrus level used when verbose is off.
	logLevel string
)

// Per-run state, initialized in PersistentPreRunE.
var (
	// settings holds the merged configuration sources for this run.
	settings *viper.Viper

	// log is the diagnostics logger for this run.
	log = logrus.New()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Run without a subcommand, the root command prints the assignment table,
// exactly like `screensplit table`.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "screensplit",
		Short: "Split a pixelflut-v6 screen and /64 network across servers",
		Long: `screensplit divides a screen into equal vertical slices and assigns every
server one slice together with its own IPv6 subnet of a /64 network.

The layout comes from built-in defaults (1920x1080, 16 servers,
2000:42::/64), an optional config file, SCREENSPLIT_* environment
variables and flags, in increasing order of precedence.`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// SilenceErrors lets Execute format errors (text or JSON).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: setup,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&formatName, "format", "f", string(report.FormatText),
		"Output format: text, json, yaml, compose, docker")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (.yaml, .yml, .json, .jsonc)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&logFile, "log-file", "", "Write diagnostics to a rotated log file")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: error, warn, info, debug")

	// Layout flags. Their defaults only apply when no other source sets
	// the key, see config.New.
	flags.Int(config.KeyWidth, model.DefaultWidth, "Screen width in pixels")
	flags.Int(config.KeyHeight, model.DefaultHeight, "Screen height in pixels")
	flags.Int(config.KeyServers, model.DefaultServers, "Number of servers (power of two)")
	flags.String(config.KeyNetwork, model.DefaultNetwork, "Base IPv6 network, must be a /64")

	rootCmd.AddCommand(NewTableCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewLookupCommand())
	rootCmd.AddCommand(NewAddrCommand())

	return rootCmd
}

// setup initializes logging and the configuration sources for a run.
func setup(cmd *cobra.Command, args []string) error {
	if _, err := report.ParseFormat(formatName); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid --format", err)
	}

	opts := logging.DefaultOptions()
	opts.Level = logLevel
	opts.Verbose = verbose
	opts.FilePath = logFile
	logger, err := logging.New(opts)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to initialize logging", err)
	}
	log = logger

	settings = config.New()
	for _, key := range []string{config.KeyWidth, config.KeyHeight, config.KeyServers, config.KeyNetwork} {
		if err := settings.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("failed to bind flag --%s", key), err)
		}
	}
	return nil
}

// resolvePlan loads the layout from all sources and derives the plan.
// Nothing is printed before this succeeds, so a rejected layout never
// produces partial output.
func resolvePlan() (*layout.Plan, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to determine working directory", err)
	}

	l, used, err := config.Load(settings, configPath, dir)
	if err != nil {
		return nil, err
	}

	fields := logging.LayoutFields(l.Width, l.Height, l.Servers, l.Network.String())
	fields["configFile"] = used
	log.WithFields(fields).Debug("resolved layout")

	plan, err := layout.NewPlan(l)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidLayout, "layout rejected", err)
	}

	log.WithFields(logrus.Fields{
		"chunkWidth":   plan.ChunkWidth,
		"subnetPrefix": plan.Assignments[0].Subnet.Bits(),
	}).Debug("derived assignment plan")
	return plan, nil
}

// coordinateFlagError is the FlagErrorFunc of commands taking pixel
// coordinates. A negative number such as -5 reaches pflag as an unknown
// shorthand flag; it is reported as an off-screen coordinate instead.
func coordinateFlagError(cmd *cobra.Command, err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "unknown shorthand flag") {
		return err
	}
	idx := strings.LastIndex(msg, " in ")
	if idx < 0 {
		return err
	}
	arg := msg[idx+len(" in "):]
	if n, convErr := strconv.Atoi(arg); convErr != nil || n >= 0 {
		return err
	}
	return model.NewCLIError(model.ExitLookupFailed,
		fmt.Sprintf("coordinate %s outside screen (use -- before negative values)", arg))
}

// currentFormat returns the parsed --format value. setup has already
// validated it.
func currentFormat() report.Format {
	f, _ := report.ParseFormat(formatName)
	return f
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if code := run(rootCmd, os.Stderr); code != model.ExitSuccess {
		os.Exit(int(code))
	}
}

// run executes rootCmd and returns its exit code. The log file is closed on
// every path, including failures.
func run(rootCmd *cobra.Command, stderr io.Writer) model.ExitCode {
	err := rootCmd.Execute()

	code := model.ExitSuccess
	if err != nil {
		code = HandleError(stderr, err)
	}
	if closeErr := logging.Close(log); closeErr != nil {
		fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", closeErr)
	}
	return code
}

// HandleError prints err to w in the active format and returns the exit
// code the process should terminate with.
func HandleError(w io.Writer, err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --format global flag.
func printError(w io.Writer, message string, underlying error) {
	if currentFormat() == report.FormatJSON {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}
