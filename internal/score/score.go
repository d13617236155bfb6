// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes reproducible quality metrics over a document. All
// functions are pure and deterministic: no I/O, no clock, no randomness.
//
// Metrics are computed on the raw found sections, before structure
// enforcement, so they measure original generation quality; the enforced
// document is structurally complete by construction and would always score
// 100.
package score

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// Hebrew Unicode block boundaries. The corpus language is Hebrew; changing
// the block changes the language the ratio measures.
const (
	hebrewLo = 0x0590
	hebrewHi = 0x05FF
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// LanguageRatio returns the percentage of Hebrew characters among all
// alphabetic characters in text, 0 when text has no alphabetic characters.
func LanguageRatio(text string) float64 {
	var hebrew, alpha int
	for _, r := range text {
		if r >= hebrewLo && r <= hebrewHi {
			hebrew++
		}
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	if alpha == 0 {
		return 0
	}
	return float64(hebrew) / float64(alpha) * 100
}

// Text computes readability metrics over a document body. Callers pass the
// body with the frontmatter already stripped; the metadata block must not
// influence word or sentence counts.
func Text(body string) types.TextMetrics {
	wordCount := len(strings.Fields(body))

	sentenceCount := 0
	for _, s := range sentenceBreak.Split(body, -1) {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}

	avg := 0.0
	if sentenceCount > 0 {
		avg = round2(float64(wordCount) / float64(sentenceCount))
	}

	charCount := 0
	for _, r := range body {
		if r != ' ' && r != '\n' {
			charCount++
		}
	}

	return types.TextMetrics{
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: avg,
		CharCount:         charCount,
	}
}

// Completeness measures how many of totalSections template sections are
// filled. A section counts as filled when its trimmed content is non-empty
// and not the missing-content placeholder. The result percentage is always
// within [0, 100].
func Completeness(sections map[string]string, totalSections int) types.CompletenessMetrics {
	filled := 0
	crossRefs := 0
	totalWords := 0

	for _, content := range sections {
		trimmed := strings.TrimSpace(content)
		crossRefs += strings.Count(content, "##")
		if trimmed == "" || trimmed == types.MissingPlaceholder {
			continue
		}
		filled++
		totalWords += len(strings.Fields(content))
	}

	pct := 0.0
	if totalSections > 0 {
		pct = round2(float64(filled) / float64(totalSections) * 100)
	}

	avgWords := 0.0
	if filled > 0 {
		avgWords = round2(float64(totalWords) / float64(filled))
	}

	return types.CompletenessMetrics{
		FilledSections:     filled,
		TotalSections:      totalSections,
		Percentage:         pct,
		CrossReferences:    crossRefs,
		AvgWordsPerSection: avgWords,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
