package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-refinery/internal/index"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the chunk index with full-text search and filters",
	Long: `Query searches the chunk index using FTS5 full-text search, structured
filters (category, document), or a combination of both. Full-text results
are ranked by relevance.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := indexConfig(cmd)

	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	category, _ := cmd.Flags().GetString("category")
	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.QueryOptions{
		Query:      queryText,
		Category:   category,
		DocID:      docID,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --category, or --doc")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%d. %s (%s)\n", i+1, r.ChunkID, r.DocTitle)
		content := r.Content
		if runes := []rune(content); len(runes) > 200 {
			content = string(runes[:197]) + "..."
		}
		fmt.Fprintf(os.Stdout, "   %s\n\n", strings.ReplaceAll(content, "\n", "\n   "))
	}

	fmt.Fprintf(os.Stdout, "%d results\n", len(results))
	return nil
}

func init() {
	queryCmd.Flags().String("query", "", "full-text search query")
	queryCmd.Flags().String("category", "", "filter by document category")
	queryCmd.Flags().String("doc", "", "filter by document ID")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("index-dir", "database", "directory holding the SQLite database")
	queryCmd.Flags().Int("max-results", 10, "default maximum number of query results")

	rootCmd.AddCommand(queryCmd)
}
