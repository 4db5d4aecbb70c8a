package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup_TitledCallout(t *testing.T) {
	in := `<Callout type="tip" title="Pro Tip">Use the rubric preview.</Callout>`
	out := StripMarkup(in)
	assert.Equal(t, "> **Pro Tip**: Use the rubric preview.", out)
}

func TestStripMarkup_UntitledCallout(t *testing.T) {
	in := `<Callout>Remember to save.</Callout>`
	out := StripMarkup(in)
	assert.Equal(t, "> Remember to save.", out)
}

func TestStripMarkup_Steps(t *testing.T) {
	in := `<Steps>
<Step title="Open the course">Navigate to the home page.</Step>
<Step title="Add content">Click the add button.</Step>
</Steps>`

	out := StripMarkup(in)

	assert.Contains(t, out, "**Step: Open the course**")
	assert.Contains(t, out, "**Step: Add content**")
	assert.Contains(t, out, "Navigate to the home page.")
	assert.NotContains(t, out, "<Step")
	assert.NotContains(t, out, "</Steps>")
}

func TestStripMarkup_RemovesImports(t *testing.T) {
	in := "import { Callout } from \"@/components\"\n\nActual body text."
	out := StripMarkup(in)
	assert.Equal(t, "Actual body text.", out)
}

func TestStripMarkup_DropsUnknownComponents(t *testing.T) {
	in := `<VideoPlayer src="intro.mp4" />

<Accordion label="Details">Hidden text stays.</Accordion>`

	out := StripMarkup(in)

	assert.NotContains(t, out, "VideoPlayer")
	assert.NotContains(t, out, "Accordion")
	assert.Contains(t, out, "Hidden text stays.")
}

func TestStripMarkup_CollapsesBlankLines(t *testing.T) {
	in := "First paragraph.\n\n\n\n\nSecond paragraph."
	out := StripMarkup(in)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", out)
}

func TestStripMarkup_KeepsMarkdown(t *testing.T) {
	in := "## A Heading\n\nSome **bold** text and a [link](/docs/other)."
	out := StripMarkup(in)
	assert.Equal(t, in, out)
}
