package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/guidebot-io/guidebot/internal/domain"
)

// MinChunkChars is the minimum trimmed length for a section to be worth
// indexing on its own. Shorter sections carry too little retrievable signal.
const MinChunkChars = 50

var (
	sectionHeadingRe = regexp.MustCompile(`^## (.+)`)

	anchorPrefixRe  = regexp.MustCompile(`^#+\s*`)
	anchorInvalidRe = regexp.MustCompile(`[^\w\s-]`)
	anchorSpaceRe   = regexp.MustCompile(`\s+`)
	anchorHyphenRe  = regexp.MustCompile(`-+`)
)

// Anchor converts a section heading into a URL fragment identifier:
// lowercase, heading markers stripped, punctuation removed, whitespace
// collapsed to single hyphens.
func Anchor(heading string) string {
	a := strings.ToLower(heading)
	a = anchorPrefixRe.ReplaceAllString(a, "")
	a = anchorInvalidRe.ReplaceAllString(a, "")
	a = anchorSpaceRe.ReplaceAllString(a, "-")
	a = anchorHyphenRe.ReplaceAllString(a, "-")
	return strings.Trim(a, "-")
}

// SectionURL builds the navigable path for a document, with a fragment when
// the section heading yields a non-empty anchor.
func SectionURL(slug, sectionHeading string) string {
	base := "/docs/" + slug
	if sectionHeading == "" {
		return base
	}
	if a := Anchor(sectionHeading); a != "" {
		return base + "#" + a
	}
	return base
}

// SplitChunks strips markup from the body and splits it into retrievable
// chunks at second-level heading boundaries. Every chunk is prefixed with
// the document title so it reads standalone; chunk IDs are the slug plus
// the ordinal position, stable across runs for unchanged content.
func SplitChunks(body string, fm domain.Frontmatter, slug string) []domain.Chunk {
	category := fm.Category
	if category == "" {
		if parts := strings.SplitN(slug, "/", 2); parts[0] != "" {
			category = parts[0]
		}
	}
	if category == "" {
		category = "general"
	}

	clean := StripMarkup(body)
	sections := splitSections(clean)

	var chunks []domain.Chunk
	for _, sec := range sections {
		trimmed := strings.TrimSpace(sec.text)
		if trimmed == "" || utf8.RuneCountInString(trimmed) < MinChunkChars {
			continue
		}

		var sectionTitle string
		if m := sectionHeadingRe.FindStringSubmatch(trimmed); m != nil {
			sectionTitle = strings.TrimSpace(m[1])
		}

		chunks = append(chunks, domain.Chunk{
			ID:      fmt.Sprintf("%s-%d", slug, len(chunks)),
			Content: fmt.Sprintf("# %s\n\n%s", fm.Title, trimmed),
			Metadata: domain.ChunkMetadata{
				Title:    fm.Title,
				Slug:     slug,
				Category: category,
				Section:  sectionTitle,
				URL:      SectionURL(slug, sectionTitle),
				Tags:     fm.Tags,
			},
		})
	}

	// Nothing qualified but the document has content: emit one chunk for
	// the whole document so it still contributes to the index.
	if len(chunks) == 0 && clean != "" {
		chunks = append(chunks, domain.Chunk{
			ID:      fmt.Sprintf("%s-0", slug),
			Content: fmt.Sprintf("# %s\n\n%s\n\n%s", fm.Title, fm.Description, clean),
			Metadata: domain.ChunkMetadata{
				Title:    fm.Title,
				Slug:     slug,
				Category: category,
				URL:      SectionURL(slug, ""),
				Tags:     fm.Tags,
			},
		})
	}

	return chunks
}

type bodySection struct {
	text       string
	hasHeading bool
}

// splitSections cuts the cleaned body at lines beginning with exactly two
// heading markers, keeping each heading with the text that follows it.
// Content before the first heading is a boundary artifact and is dropped,
// unless it is the only content.
func splitSections(text string) []bodySection {
	lines := strings.Split(text, "\n")

	var sections []bodySection
	var current []string
	currentHasHeading := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		sections = append(sections, bodySection{
			text:       strings.Join(current, "\n"),
			hasHeading: currentHasHeading,
		})
		current = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			flush()
			currentHasHeading = true
		}
		current = append(current, line)
	}
	flush()

	if len(sections) > 1 && !sections[0].hasHeading {
		sections = sections[1:]
	}

	return sections
}
