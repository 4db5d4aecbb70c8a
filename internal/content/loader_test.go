package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContentFile(t *testing.T, dir, rel, contents string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoader_List(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, "getting-started/overview.mdx", "---\ntitle: Overview\ndescription: Start here.\n---\n\nWelcome.\n")
	writeContentFile(t, dir, "quizzes/building.mdx", "---\ntitle: Building Quizzes\n---\n\nQuiz body.\n")
	writeContentFile(t, dir, "notes.md", "---\ntitle: Notes\n---\n\nPlain markdown works too.\n")
	writeContentFile(t, dir, "assets/readme.txt", "not content")

	docs, err := NewLoader(dir).List()
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// sorted by slug
	assert.Equal(t, "getting-started/overview", docs[0].Slug)
	assert.Equal(t, "notes", docs[1].Slug)
	assert.Equal(t, "quizzes/building", docs[2].Slug)

	assert.Equal(t, "Overview", docs[0].Frontmatter.Title)
	assert.Contains(t, docs[0].Body, "Welcome.")
	assert.False(t, docs[0].ModTime.IsZero())
}

func TestLoader_MissingDirectory(t *testing.T) {
	docs, err := NewLoader(filepath.Join(t.TempDir(), "does-not-exist")).List()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoader_PropagatesParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, "bad.mdx", "---\ntitle: Broken\nno closing delimiter")

	_, err := NewLoader(dir).List()
	assert.Error(t, err)
}
