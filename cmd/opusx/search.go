package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opus4tools/opusx/internal/extract"
	"github.com/opus4tools/opusx/internal/storage"
)

// DefaultSearchLimit is the default number of search results.
const DefaultSearchLimit = 50

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <file.db> <query>",
	Short: "Search a SQLite export by title or author",
	Long: `Full-text search over titles and authors of a database written with
"opusx convert --format sqlite".

Examples:
  opusx search repository.db "graph theory"
  opusx search repository.db Doe --human`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err != nil {
		exitWithError(ExitDataError, "database not found: %s", args[0])
	}

	db, err := storage.OpenDB(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	defer db.Close()

	positions, err := db.Search(args[1], searchLimit)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	results := make([]SearchResult, 0, len(positions))
	for _, pos := range positions {
		rec, err := db.Record(pos)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		if rec == nil {
			continue
		}
		results = append(results, SearchResult{
			Position: pos,
			Type:     rec.Value(extract.FieldType),
			Year:     rec.Value(extract.FieldYear),
			Title:    rec.Value(extract.FieldTitle),
			Authors:  rec.Value(extract.FieldAuthors),
		})
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No documents found.")
			return nil
		}
		fmt.Printf("Found %d documents:\n\n", len(results))
		for _, r := range results {
			fmt.Printf("  %4d  %s  %s\n", r.Position, r.Year, truncateString(r.Title, SearchTitleMaxLen))
			if r.Authors != "" {
				fmt.Printf("        %s\n", r.Authors)
			}
		}
		return nil
	}
	return outputJSON(results)
}
