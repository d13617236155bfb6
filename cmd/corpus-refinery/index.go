package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-refinery/internal/index"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index validated chunks into the retrieval database",
	Long: `Index runs the preprocessing pipeline (parse, chunk, validate) over a
directory of documents and stores the surviving chunks in a SQLite database
with FTS5 full-text search. Extracted contacts, emails, systems, and
cross-references are inlined into the indexed text so they are searchable.
Unchanged documents are skipped on subsequent runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := indexConfig(cmd)

		store, err := index.NewStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Ingest(context.Background(), cfg.DocsDir, os.Stdout)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d document(s) failed indexing", summary.Failed)
		}
		return nil
	},
}

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.IndexConfig{
		DocsDir:    stringSetting(cmd, "docs-dir", "index.docs_dir"),
		IndexDir:   stringSetting(cmd, "index-dir", "index.index_dir"),
		MaxResults: maxResults,
	}
}

func init() {
	indexCmd.Flags().String("docs-dir", "data/preprocessed/markdown", "directory of documents to index")
	indexCmd.Flags().String("index-dir", "database", "directory holding the SQLite database")
	indexCmd.Flags().Int("max-results", 10, "default maximum number of query results")

	rootCmd.AddCommand(indexCmd)
}
