// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/corpus-refinery/internal/chunker"
	"github.com/pdiddy/corpus-refinery/internal/frontmatter"
	"github.com/pdiddy/corpus-refinery/internal/validate"
	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// IngestSummary holds counts from one indexing run.
type IngestSummary struct {
	Indexed       int
	Updated       int
	Skipped       int
	Failed        int
	ParseFailures int
	TotalChunks   int
	IndexedChunks int
	Warnings      int
	Errors        int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest runs the preprocessing pipeline over every Markdown file in
// docsDir and populates the index. Files unchanged since the previous
// run are skipped; changed files have their chunks replaced. A chunk
// that fails validation is counted but not indexed; a parse failure is
// counted but the document is still indexed with a derived title,
// since the body survives parsing. Files are processed in sorted order.
func (s *Store) Ingest(ctx context.Context, docsDir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading documents directory %s: %w", docsDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	fmt.Fprintf(w, "found %d markdown files in %s\n", len(names), docsDir)

	var summary IngestSummary

	for _, name := range names {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		path := filepath.Join(docsDir, name)
		docID := strings.TrimSuffix(name, ".md")

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE doc_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		doc := frontmatter.Parse(name, string(data))
		if !doc.ParseSuccess {
			summary.ParseFailures++
		}

		defaultHeader := validate.TitleFor(doc.Body, doc.Filename)
		if title, ok := doc.Metadata["title"].(string); ok && title != "" {
			defaultHeader = title
		}

		chunks := chunker.ByHeadings(doc.Body, defaultHeader)
		summary.TotalChunks += len(chunks)

		indexable := buildEntries(chunks, doc, &summary)

		if err := s.ingestDocument(ctx, doc, indexable, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		summary.IndexedChunks += len(indexable)

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d chunks)\n", name, len(indexable))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d chunks)\n", name, len(indexable))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	fmt.Fprintf(w, "chunks: %d total, %d indexed, %d warnings, %d errors, %d parse failures\n",
		summary.TotalChunks, summary.IndexedChunks, summary.Warnings, summary.Errors, summary.ParseFailures)

	return summary, nil
}

// entry is one validated chunk ready for insertion.
type entry struct {
	id   string
	text string
	meta types.EnrichedMetadata
}

// buildEntries validates each chunk and assembles its indexable text.
// Extracted contact, system, and cross-reference fields are inlined into
// the chunk text so a full-text query over names or emails finds the
// chunk even when those values sit only in the metadata.
func buildEntries(chunks []types.Chunk, doc types.ParsedDocument, summary *IngestSummary) []entry {
	var out []entry
	for _, chunk := range chunks {
		result := validate.Check(chunk, doc)

		switch result.Severity {
		case types.SeverityWarning:
			summary.Warnings++
		case types.SeverityCritical:
			summary.Errors++
		}

		if !result.IsValid {
			continue
		}

		meta := result.Metadata

		var context []string
		if meta.ContactNames != "" {
			context = append(context, "Contacts: "+meta.ContactNames)
		}
		if meta.ContactEmails != "" {
			context = append(context, "Emails: "+meta.ContactEmails)
		}
		if meta.SystemNames != "" {
			context = append(context, "Systems: "+meta.SystemNames)
		}
		if meta.RelatedDocIDs != "" {
			context = append(context, "Related: "+meta.RelatedDocIDs)
		}

		text := chunk.Header + "\n\n" + chunk.Content
		if len(context) > 0 {
			text += "\n\n[Metadata: " + strings.Join(context, " | ") + "]"
		}

		out = append(out, entry{
			id:   fmt.Sprintf("%s_chunk_%d", doc.DocID, chunk.Index),
			text: text,
			meta: meta,
		})
	}
	return out
}

func (s *Store) ingestDocument(ctx context.Context, doc types.ParsedDocument, entries []entry, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE doc_id = ?`, doc.DocID); err != nil {
			return fmt.Errorf("deleting old chunks: %w", err)
		}
	}

	title := validate.TitleFor(doc.Body, doc.Filename)
	var docMeta types.EnrichedMetadata
	if len(entries) > 0 {
		docMeta = entries[0].meta
		title = docMeta.Title
	}

	parseSuccess := 0
	if doc.ParseSuccess {
		parseSuccess = 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, filename, title, category, subcategory, priority, cluster, frequency, parse_success, parse_error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			filename=excluded.filename, title=excluded.title, category=excluded.category,
			subcategory=excluded.subcategory, priority=excluded.priority,
			cluster=excluded.cluster, frequency=excluded.frequency,
			parse_success=excluded.parse_success, parse_error=excluded.parse_error`,
		doc.DocID, doc.Filename, title,
		docMeta.Category, docMeta.Subcategory, docMeta.Priority,
		docMeta.Cluster, docMeta.Frequency,
		parseSuccess, doc.ParseError,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO chunks (id, doc_id, chunk_index, header, chunk_type, content,
			contact_names, contact_emails, system_names, related_doc_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx,
			e.id, e.meta.DocID, e.meta.ChunkIndex, e.meta.Header, string(e.meta.ChunkType), e.text,
			e.meta.ContactNames, e.meta.ContactEmails, e.meta.SystemNames, e.meta.RelatedDocIDs,
		)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", e.id, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (doc_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		doc.DocID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
