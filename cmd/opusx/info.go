package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [file.xml]",
	Short: "Show a summary of an export",
	Long: `Show the export file, its last modification date, the number of
publications and the available document types.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	e := mustOpenExtractor(mustLoadSettings(), args)

	if humanOutput {
		fmt.Print(e)
		return nil
	}
	return outputJSON(e.Info())
}
