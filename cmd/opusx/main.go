// Package main provides the opusx CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opus4tools/opusx/internal/config"
	"github.com/opus4tools/opusx/internal/convert"
	"github.com/opus4tools/opusx/internal/opus"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configPath  string
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (like unknown flags) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opusx [file.xml]",
	Short: "Convert OPUS4 XML exports to CSV, JSON or text",
	Long: `opusx extracts bibliographic metadata from an OPUS4 repository XML export.

Without a subcommand it runs interactively: it shows the available document
types, asks which ones to convert and which file type to write (csv, json or
txt), and saves the result in the output directory under a random name.

If no file is given, the first *.xml file in the working directory is used.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setupLogging,
	RunE:              runInteractive,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Version = Version
}

func setupLogging(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return nil
}

// settings are the config-file defaults resolved for one invocation.
type settings struct {
	cfg      *config.Config
	docTypes []string
}

// mustLoadSettings loads the config file, exits on error.
func mustLoadSettings() settings {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	docTypes, err := convert.DocTypesFromYAML(cfg.DocTypes)
	if err != nil {
		exitWithError(ExitConfigError, "%s: %v", configPath, err)
	}
	return settings{cfg: cfg, docTypes: docTypes}
}

// mustOpenExtractor loads the export named in args (or the first XML file in
// the working directory), exits on error.
func mustOpenExtractor(s settings, args []string) *convert.Extractor {
	loc, err := s.cfg.Location()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	opts := []convert.Option{convert.WithLocation(loc)}
	if s.cfg.OutputDir != "" {
		opts = append(opts, convert.WithDir(s.cfg.OutputDir))
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	e, err := convert.Open(path, opts...)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	return e
}

// exitCodeFor maps loader and conversion errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, opus.ErrNoSourceFound):
		return ExitNoSource
	case errors.Is(err, opus.ErrParse):
		return ExitDataError
	default:
		return ExitError
	}
}
