package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opus4tools/opusx/internal/convert"
)

var (
	convertFormat string
	convertTypes  []string
	convertName   string
	convertDir    string
)

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output format (csv, json, txt, bibtex, sqlite)")
	convertCmd.Flags().StringSliceVar(&convertTypes, "types", nil, "Document types to convert (comma-separated; default all)")
	convertCmd.Flags().StringVar(&convertName, "name", "", "Output file name without extension (default: random UUID)")
	convertCmd.Flags().StringVar(&convertDir, "dir", "", "Output directory (default: config output_dir or working directory)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [file.xml]",
	Short: "Convert an export without prompting",
	Long: `Convert an OPUS4 export to a file.

CSV and TXT output is appended to an existing file; JSON, BibTeX and SQLite
output replaces it.

Examples:
  opusx convert export.xml --format csv
  opusx convert export.xml --format json --types article,book --name articles
  opusx convert --format sqlite --name repository`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	s := mustLoadSettings()

	formatName := convertFormat
	if formatName == "" {
		formatName = s.cfg.Format
	}
	if formatName == "" {
		exitWithError(ExitError, "--format is required (csv, json, txt, bibtex, sqlite)")
	}
	format, err := convert.ParseFormat(formatName)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	docTypes := s.docTypes
	if cmd.Flags().Changed("types") {
		docTypes = convertTypes
	}

	if convertDir != "" {
		s.cfg.OutputDir = convertDir
	}
	e := mustOpenExtractor(s, args)

	records := e.Records(docTypes)
	path, err := e.Write(format, convertName, records)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Println(savedMessage(format.Label(), path))
		return nil
	}
	return outputJSON(SavedResponse{
		Status:  "saved",
		Format:  string(format),
		Path:    path,
		Records: len(records),
	})
}
