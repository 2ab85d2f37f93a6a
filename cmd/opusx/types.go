package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types [file.xml]",
	Short: "List the document types in an export",
	Long: `List the distinct document types in an OPUS4 export, sorted.
Documents without a type are listed as "greylit".

Examples:
  opusx types export.xml
  opusx types --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	e := mustOpenExtractor(mustLoadSettings(), args)
	types := e.DocTypes()

	if humanOutput {
		fmt.Println(strings.Join(types, ", "))
		return nil
	}
	return outputJSON(TypesResponse{DocTypes: types})
}
