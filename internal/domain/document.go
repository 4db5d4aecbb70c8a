package domain

import "time"

// Frontmatter holds the YAML metadata header of a content document.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category,omitempty"`
	Order       int      `yaml:"order,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Document is a single unit of source content. Documents are authored
// externally; the indexing pipeline only ever reads them.
type Document struct {
	Slug        string
	Frontmatter Frontmatter
	Body        string
	ModTime     time.Time
}
