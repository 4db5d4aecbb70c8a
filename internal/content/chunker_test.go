package content

import (
	"strings"
	"testing"

	"github.com/guidebot-io/guidebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrontmatter() domain.Frontmatter {
	return domain.Frontmatter{
		Title:       "Creating Assignments",
		Description: "How to create and grade assignments.",
		Category:    "assignments",
		Tags:        []string{"grading", "dropbox"},
	}
}

const sectionBody = `Some introductory text before any heading.

## Getting Started

To create an assignment, open the course and navigate to the assignments
area. From there you can configure the submission type and due dates.

## Grading Submissions

Open the submission list and select a learner. Enter a score and feedback,
then publish the evaluation so the learner can see it.
`

func TestSplitChunks_SectionsWithHeadings(t *testing.T) {
	chunks := SplitChunks(sectionBody, testFrontmatter(), "assignments/creating")

	require.Len(t, chunks, 2)

	assert.Equal(t, "assignments/creating-0", chunks[0].ID)
	assert.Equal(t, "Getting Started", chunks[0].Metadata.Section)
	assert.Equal(t, "/docs/assignments/creating#getting-started", chunks[0].Metadata.URL)
	assert.True(t, strings.HasPrefix(chunks[0].Content, "# Creating Assignments\n\n"))
	assert.Contains(t, chunks[0].Content, "## Getting Started")

	assert.Equal(t, "assignments/creating-1", chunks[1].ID)
	assert.Equal(t, "Grading Submissions", chunks[1].Metadata.Section)
	assert.Equal(t, "/docs/assignments/creating#grading-submissions", chunks[1].Metadata.URL)
}

func TestSplitChunks_DropsPreamble(t *testing.T) {
	chunks := SplitChunks(sectionBody, testFrontmatter(), "assignments/creating")

	for _, c := range chunks {
		assert.NotContains(t, c.Content, "introductory text")
	}
}

func TestSplitChunks_Deterministic(t *testing.T) {
	first := SplitChunks(sectionBody, testFrontmatter(), "assignments/creating")
	second := SplitChunks(sectionBody, testFrontmatter(), "assignments/creating")

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].Metadata.URL, second[i].Metadata.URL)
	}
}

func TestSplitChunks_MinimumLength(t *testing.T) {
	body := "## Tiny\n\nToo short.\n\n## Useful Section\n\n" + strings.Repeat("Real content. ", 10)

	chunks := SplitChunks(body, testFrontmatter(), "assignments/creating")

	require.Len(t, chunks, 1)
	assert.Equal(t, "Useful Section", chunks[0].Metadata.Section)

	for _, c := range chunks {
		trimmed := strings.TrimSpace(c.Content)
		assert.GreaterOrEqual(t, len([]rune(trimmed)), MinChunkChars)
	}
}

func TestSplitChunks_FallbackChunk(t *testing.T) {
	body := "Just a short note." // no sections, below the per-section threshold

	chunks := SplitChunks(body, testFrontmatter(), "notes/short")

	require.Len(t, chunks, 1)
	assert.Equal(t, "notes/short-0", chunks[0].ID)
	assert.Contains(t, chunks[0].Content, "Creating Assignments")
	assert.Contains(t, chunks[0].Content, "How to create and grade assignments.")
	assert.Contains(t, chunks[0].Content, "Just a short note.")
	assert.Equal(t, "/docs/notes/short", chunks[0].Metadata.URL)
	assert.Empty(t, chunks[0].Metadata.Section)
}

func TestSplitChunks_EmptyBody(t *testing.T) {
	chunks := SplitChunks("", testFrontmatter(), "notes/empty")
	assert.Empty(t, chunks)

	// markup-only body strips down to nothing
	chunks = SplitChunks("<Video />\n\n<Embed />", testFrontmatter(), "notes/markup-only")
	assert.Empty(t, chunks)
}

func TestSplitChunks_PreambleOnlyDocument(t *testing.T) {
	body := "This document has no second-level headings but still carries enough content to index on its own."

	chunks := SplitChunks(body, testFrontmatter(), "notes/flat")

	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Metadata.Section)
	assert.Equal(t, "/docs/notes/flat", chunks[0].Metadata.URL)
	assert.Contains(t, chunks[0].Content, "no second-level headings")
}

func TestSplitChunks_CategoryFallsBackToSlug(t *testing.T) {
	fm := testFrontmatter()
	fm.Category = ""

	chunks := SplitChunks(sectionBody, fm, "quizzes/building")
	require.NotEmpty(t, chunks)
	assert.Equal(t, "quizzes", chunks[0].Metadata.Category)

	chunks = SplitChunks(sectionBody, fm, "")
	require.NotEmpty(t, chunks)
	assert.Equal(t, "general", chunks[0].Metadata.Category)
}

func TestSplitChunks_ThirdLevelHeadingsStayInline(t *testing.T) {
	body := "## Parent Section\n\nIntro paragraph with enough words to pass the threshold easily.\n\n### Child heading\n\nMore detail underneath the child heading."

	chunks := SplitChunks(body, testFrontmatter(), "assignments/creating")

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "### Child heading")
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"## Getting Started: Step 1!", "getting-started-step-1"},
		{"Getting Started", "getting-started"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"Already-Hyphenated Title", "already-hyphenated-title"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Anchor(tt.heading), "heading %q", tt.heading)
	}
}

func TestSectionURL_PunctuationOnlyHeading(t *testing.T) {
	// a heading that sanitizes to nothing yields a URL with no fragment
	assert.Equal(t, "/docs/notes/odd", SectionURL("notes/odd", "!!!"))
	assert.Equal(t, "/docs/notes/odd#real", SectionURL("notes/odd", "Real"))
}
