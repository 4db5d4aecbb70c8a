package domain

// ChunkMetadata describes where a chunk came from and how to link back to it.
type ChunkMetadata struct {
	Title    string
	Slug     string
	Category string
	Section  string
	URL      string
	Tags     []string
}

// Chunk is the unit that gets embedded and indexed. The ID is derived from
// the parent slug and the chunk's ordinal position, so re-chunking an
// unchanged document reproduces the same IDs.
type Chunk struct {
	ID       string
	Content  string
	Metadata ChunkMetadata
}
