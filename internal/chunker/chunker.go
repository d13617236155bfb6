// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunker splits a Markdown body into ordered header-delimited
// chunks for validation and indexing. Chunking is a pure function of the
// input: no I/O, no randomness, identical input yields an identical
// sequence.
package chunker

import (
	"regexp"
	"strings"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// headingLine matches a Markdown heading of level 1-3.
var headingLine = regexp.MustCompile(`^#{1,3}\s+\S`)

// ByHeadings splits body into chunks at level-1 to level-3 heading lines.
// Text before the first heading is attributed to defaultHeader (typically
// the document title). Whitespace-only chunks are dropped, so a heading
// with no following content produces no chunk. Indices are 0-based and
// contiguous in document order.
func ByHeadings(body, defaultHeader string) []types.Chunk {
	var chunks []types.Chunk

	currentHeader := defaultHeader
	var currentLines []string
	index := 0

	flush := func() {
		content := strings.TrimSpace(strings.Join(currentLines, "\n"))
		currentLines = nil
		if content == "" {
			return
		}
		chunks = append(chunks, types.Chunk{
			Header:  currentHeader,
			Content: content,
			Index:   index,
			Type:    types.ChunkSection,
		})
		index++
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if headingLine.MatchString(trimmed) {
			flush()
			currentHeader = trimmed
			continue
		}
		currentLines = append(currentLines, line)
	}
	flush()

	return chunks
}
