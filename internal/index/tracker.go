// Package index drives the embedding pipeline: it decides which documents
// need (re)indexing, chunks and embeds them, and records what was indexed.
package index

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/guidebot-io/guidebot/internal/domain"
)

// Record stores what the last successful run indexed for one document.
type Record struct {
	Slug       string    `json:"slug"`
	MTime      time.Time `json:"mtime"`
	ChunkCount int       `json:"chunkCount"`
}

// State is the persisted tracking file.
type State struct {
	LastRun   time.Time `json:"lastRun"`
	Documents []Record  `json:"documents"`
}

// RecordFor returns the record for a slug, or nil when the document was
// never indexed.
func (s *State) RecordFor(slug string) *Record {
	for i := range s.Documents {
		if s.Documents[i].Slug == slug {
			return &s.Documents[i]
		}
	}
	return nil
}

// ShouldIndex reports whether a document needs (re)indexing: always under
// force, when it was never indexed, or when it changed since the recorded
// run. Timestamps are compared with truncated precision because most
// filesystems and the JSON round-trip do not preserve nanoseconds.
func ShouldIndex(doc *domain.Document, rec *Record, force bool) bool {
	if force || rec == nil {
		return true
	}
	return doc.ModTime.Truncate(time.Millisecond).After(rec.MTime.Truncate(time.Millisecond))
}

// Tracker persists indexing state to a JSON file.
type Tracker struct {
	path string
}

// NewTracker creates a tracker backed by the given file path.
func NewTracker(path string) *Tracker {
	return &Tracker{path: path}
}

// Load reads the tracking file. A missing or unreadable file yields an
// empty state so a fresh checkout simply reindexes everything.
func (t *Tracker) Load() *State {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read tracking file %s: %v", t.path, err)
		}
		return &State{}
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("Warning: tracking file %s is corrupt, reindexing from scratch: %v", t.path, err)
		return &State{}
	}

	return &state
}

// Save writes the state with documents sorted by slug.
func (t *Tracker) Save(state *State) error {
	sort.Slice(state.Documents, func(i, j int) bool {
		return state.Documents[i].Slug < state.Documents[j].Slug
	})

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tracking state: %w", err)
	}

	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create tracking directory: %w", err)
		}
	}

	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tracking file %s: %w", t.path, err)
	}

	return nil
}

// Reset persists an empty state. Called in lockstep with clearing the
// vector collection so tracking never claims documents the store lost.
func (t *Tracker) Reset() error {
	return t.Save(&State{LastRun: time.Now().UTC()})
}
