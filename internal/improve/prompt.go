// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package improve

import (
	"fmt"
	"strings"
)

// ResponsibilityName reconstructs a human-readable responsibility name
// from a generated filename of the form res_<responsibility>_<model>_<number>.md.
// The leading "res" token and the trailing model and number tokens are
// dropped; the rest is title-cased. Filenames that do not fit the pattern
// fall back to "Unknown".
func ResponsibilityName(filename string) string {
	base := strings.TrimSuffix(filename, ".md")
	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return "Unknown"
	}
	words := parts[1 : len(parts)-2]
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// BuildPrompt assembles the improvement prompt for one structured
// document. The rules keep the regenerated document re-enforceable:
// headers, order, and separators must survive so the enforcer can score
// the result against the same template.
func BuildPrompt(structuredDoc, responsibility string) string {
	return fmt.Sprintf(`You are improving a Hebrew document about municipal responsibilities.

DOCUMENT TO IMPROVE:
%s

YOUR TASK:
Improve this document by filling empty sections and enriching content.

RULES:
1. KEEP section headers exactly as shown
2. KEEP section order
3. KEEP the "---" separators
4. Write ONLY in Hebrew
5. Fill sections marked [לא מולא]
6. Expand sections with thin content

DO NOT:
- Change section headers
- Reorder sections
- Add/remove sections
- Write in English

CONTEXT:
Responsibility: %s
Area: Municipal Services

Generate the improved document now.
`, structuredDoc, responsibility)
}
