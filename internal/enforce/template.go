// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enforce

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/corpus-refinery/internal/frontmatter"
)

// LoadTemplate reads the canonical template file and returns its section
// names in order. Sections are the template body's level-2 headings with
// any leading ordinal stripped; bracketed placeholder headings (e.g. a
// "[title]" slot) are skipped. The template is loaded once per run and is
// the single source of truth for document shape; an unreadable or empty
// template is fatal.
func LoadTemplate(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	_, body, _ := frontmatter.Split(string(data))

	var sections []string
	for _, line := range strings.Split(body, "\n") {
		name, ok := strings.CutPrefix(line, "## ")
		if !ok {
			continue
		}
		name = NormalizeName(name)
		if name == "" || strings.HasPrefix(name, "[") {
			continue
		}
		sections = append(sections, name)
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("template %s defines no sections (no ## headings found)", path)
	}

	return sections, nil
}
