package content

import (
	"fmt"
	"strings"

	"github.com/guidebot-io/guidebot/internal/domain"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseDocument separates the YAML frontmatter header from the body text.
// A document without a header is returned with zero-value frontmatter and
// the full text as body.
func ParseDocument(raw string) (domain.Frontmatter, string, error) {
	var fm domain.Frontmatter

	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return fm, normalized, nil
	}

	rest := normalized[len(frontmatterDelimiter)+1:]

	var header, body string
	if idx := strings.Index(rest, "\n"+frontmatterDelimiter+"\n"); idx >= 0 {
		header = rest[:idx]
		body = rest[idx+len(frontmatterDelimiter)+2:]
	} else if strings.HasSuffix(rest, "\n"+frontmatterDelimiter) {
		header = rest[:len(rest)-len(frontmatterDelimiter)-1]
	} else {
		return fm, "", fmt.Errorf("unterminated frontmatter header")
	}

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("invalid frontmatter: %w", err)
	}

	return fm, body, nil
}
