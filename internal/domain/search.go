package domain

// SearchResult is a retrieved chunk with its similarity score.
// Higher scores mean closer matches (cosine similarity).
type SearchResult struct {
	Content  string
	Score    float32
	Metadata ChunkMetadata
}
