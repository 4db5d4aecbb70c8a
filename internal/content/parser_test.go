package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_FullHeader(t *testing.T) {
	raw := `---
title: Creating Quizzes
description: Build and publish quizzes.
category: quizzes
tags:
  - assessment
  - questions
---

Body starts here.
`

	fm, body, err := ParseDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, "Creating Quizzes", fm.Title)
	assert.Equal(t, "Build and publish quizzes.", fm.Description)
	assert.Equal(t, "quizzes", fm.Category)
	assert.Equal(t, []string{"assessment", "questions"}, fm.Tags)
	assert.Equal(t, "\nBody starts here.\n", body)
}

func TestParseDocument_NoHeader(t *testing.T) {
	raw := "Just body text without a header."

	fm, body, err := ParseDocument(raw)
	require.NoError(t, err)

	assert.Empty(t, fm.Title)
	assert.Equal(t, raw, body)
}

func TestParseDocument_HeaderOnly(t *testing.T) {
	raw := "---\ntitle: Stub Page\n---"

	fm, body, err := ParseDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, "Stub Page", fm.Title)
	assert.Empty(t, body)
}

func TestParseDocument_Unterminated(t *testing.T) {
	raw := "---\ntitle: Broken\nno closing delimiter"

	_, _, err := ParseDocument(raw)
	assert.Error(t, err)
}

func TestParseDocument_InvalidYAML(t *testing.T) {
	raw := "---\ntitle: [unclosed\n---\nbody"

	_, _, err := ParseDocument(raw)
	assert.Error(t, err)
}

func TestParseDocument_WindowsLineEndings(t *testing.T) {
	raw := "---\r\ntitle: CRLF Doc\r\n---\r\nBody line.\r\n"

	fm, body, err := ParseDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, "CRLF Doc", fm.Title)
	assert.Equal(t, "Body line.\n", body)
}
