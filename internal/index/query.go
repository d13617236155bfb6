// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for chunk index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Category filters by document category.
	Category string

	// DocID filters by document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == "" && q.DocID == ""
}

// QueryResult is one matched chunk with its parent document's identity.
type QueryResult struct {
	ChunkID    string `json:"chunk_id" yaml:"chunk_id"`
	DocID      string `json:"doc_id" yaml:"doc_id"`
	ChunkIndex int    `json:"chunk_index" yaml:"chunk_index"`
	Header     string `json:"header" yaml:"header"`
	Content    string `json:"content" yaml:"content"`
	DocTitle   string `json:"doc_title" yaml:"doc_title"`
	Category   string `json:"category" yaml:"category"`
}

// Retrieve queries the chunk index with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries come back in document and chunk order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.id, c.doc_id, c.chunk_index, c.header, c.content,
				d.title, d.category
			FROM chunks_fts
			JOIN chunks c ON c.rowid = chunks_fts.rowid
			LEFT JOIN documents d ON c.doc_id = d.id
			WHERE chunks_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.id, c.doc_id, c.chunk_index, c.header, c.content,
				d.title, d.category
			FROM chunks c
			LEFT JOIN documents d ON c.doc_id = d.id
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND d.category = ?`)
		args = append(args, opts.Category)
	}

	if opts.DocID != "" {
		qb.WriteString(` AND c.doc_id = ?`)
		args = append(args, opts.DocID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY chunks_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.doc_id, c.chunk_index`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunk index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr       QueryResult
			title    sql.NullString
			category sql.NullString
		)
		if err := rows.Scan(
			&qr.ChunkID, &qr.DocID, &qr.ChunkIndex, &qr.Header, &qr.Content,
			&title, &category,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.DocTitle = title.String
		qr.Category = category.String
		results = append(results, qr)
	}

	return results, rows.Err()
}
