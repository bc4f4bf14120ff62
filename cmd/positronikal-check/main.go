// Command positronikal-check validates a repository against the
// Positronikal coding standards: required files, build system discipline,
// code formatting, and security requirements.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/positronikal/standards-check/internal/checker"
	"github.com/positronikal/standards-check/internal/config"
	"github.com/positronikal/standards-check/internal/ui"
)

var version = "1.0.0"

var checkTypes = []string{"all", "files", "build", "code", "security", "forensic"}

var rootCmd = &cobra.Command{
	Use:   "positronikal-check [repository]",
	Short: "Validate repository compliance with Positronikal coding standards",
	Long: `Validates a repository against the Positronikal coding standards:
required files and directory layout, build system discipline, code
formatting rules, and security requirements.

` + usageEpilog(),
	Args:          cobra.MaximumNArgs(1),
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().String("check", "all",
		"Type of checks to run (all, files, build, code, security, forensic)")
	rootCmd.Flags().Bool("forensic", false,
		"Include forensic tool standards in validation")
	rootCmd.Flags().String("config", "",
		"Path to custom standards profile")
	rootCmd.Flags().BoolP("verbose", "v", false,
		"Show verbose output including passing checks")
	rootCmd.Flags().BoolP("quiet", "q", false,
		"Suppress all output except errors")
	rootCmd.Flags().Bool("strict", false,
		"Exit with non-zero status if any checks fail")
	rootCmd.Flags().Bool("json", false,
		"Output results in JSON format")
	rootCmd.Flags().BoolP("interactive", "i", false,
		"Browse results interactively")

	viper.BindPFlag("strict", rootCmd.Flags().Lookup("strict"))
	viper.BindPFlag("forensic", rootCmd.Flags().Lookup("forensic"))
}

func initConfig() {
	configFile, _ := rootCmd.Flags().GetString("config")
	if err := config.Init(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// newLogger builds the zap logger for the selected verbosity
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg.Build()
}

func runCheck(cmd *cobra.Command, args []string) error {
	repo := config.GetRepository()
	if len(args) > 0 {
		repo = args[0]
	}

	checkType, _ := cmd.Flags().GetString("check")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	asJSON, _ := cmd.Flags().GetBool("json")
	interactive, _ := cmd.Flags().GetBool("interactive")

	// Flags win; the config file's output mode fills the gap.
	if !asJSON && !interactive {
		switch config.GetOutput() {
		case "json":
			asJSON = true
		case "interactive":
			interactive = true
		}
	}

	validType := false
	for _, t := range checkTypes {
		if checkType == t {
			validType = true
			break
		}
	}
	if !validType {
		return fmt.Errorf("unknown check type: %s", checkType)
	}

	logger, err := newLogger(verbose, quiet)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := checker.New(repo,
		checker.WithLogger(logger),
		checker.WithMaxLineLength(config.GetMaxLineLength()))
	if err != nil {
		return err
	}

	var report *checker.Report
	switch checkType {
	case "all":
		report = c.All(ctx, config.GetForensic())
	case "files":
		report = c.Files(ctx)
	case "build":
		report = c.Build(ctx)
	case "code":
		report = c.Code(ctx)
	case "security":
		report = c.Security(ctx)
	case "forensic":
		report = c.Forensic(ctx)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nInterrupted by user")
		os.Exit(130)
	}

	switch {
	case asJSON:
		if err := report.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	case interactive:
		if err := ui.Run(report); err != nil {
			return fmt.Errorf("interactive browser: %w", err)
		}
	case !quiet:
		report.Write(os.Stdout, verbose)
	}

	if config.GetStrict() && !report.Passing() {
		os.Exit(1)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
