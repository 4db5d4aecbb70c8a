// Package qdrant adapts the Qdrant gRPC client to the needs of the
// indexing and answering pipeline: one named collection of chunk vectors
// with cosine similarity.
package qdrant

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"log"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/guidebot-io/guidebot/internal/domain"
)

// DefaultUpsertBatchSize bounds how many points a single upsert request
// carries.
const DefaultUpsertBatchSize = 100

// API is the subset of the Qdrant client the store depends on
type API interface {
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	ListCollections(ctx context.Context) ([]string, error)
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error
	DeleteCollection(ctx context.Context, collectionName string) error
	Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

// Point pairs a chunk with its embedding vector for upload.
type Point struct {
	Chunk  domain.Chunk
	Vector []float32
}

// StoreConfig configures the vector store adapter.
type StoreConfig struct {
	Host   string
	Port   int
	UseTLS bool
	APIKey string

	Collection string
	VectorSize uint64
	BatchSize  int
}

// Store manages the named chunk collection in Qdrant.
type Store struct {
	api        API
	collection string
	vectorSize uint64
	batchSize  int
}

// NewStore connects to Qdrant over gRPC and returns a store bound to the
// configured collection.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if cfg.VectorSize == 0 {
		return nil, fmt.Errorf("vector size is required")
	}

	clientCfg := &qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		UseTLS: cfg.UseTLS,
		APIKey: cfg.APIKey,
	}
	if !cfg.UseTLS {
		clientCfg.GrpcOptions = append(clientCfg.GrpcOptions,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
	}

	client, err := qdrant.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return NewStoreWithAPI(client, cfg), nil
}

// NewStoreWithAPI creates a store on top of an existing client.
func NewStoreWithAPI(api API, cfg StoreConfig) *Store {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultUpsertBatchSize
	}
	return &Store{
		api:        api,
		collection: cfg.Collection,
		vectorSize: cfg.VectorSize,
		batchSize:  batchSize,
	}
}

// PointID derives the numeric vector-store ID for a chunk ID. FNV-1a gives
// a well-distributed 64-bit value that is stable across runs, so
// re-upserting a chunk replaces its previous point. The mapping is not
// injective; distinct chunk IDs can collide and overwrite each other.
func PointID(chunkID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(chunkID))
	return h.Sum64()
}

// EnsureCollection creates the collection if it does not exist yet.
func (s *Store) EnsureCollection(ctx context.Context) error {
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	log.Printf("created collection: %s", s.collection)
	return nil
}

// ClearCollection deletes the collection and everything in it. Deleting a
// collection that does not exist is a no-op.
func (s *Store) ClearCollection(ctx context.Context) error {
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := s.api.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", s.collection, err)
	}

	log.Printf("deleted collection: %s", s.collection)
	return nil
}

// Upsert writes points in sequential batches. Point IDs are derived from
// chunk IDs, so writing a chunk that is already stored replaces it.
func (s *Store) Upsert(ctx context.Context, points []Point) error {
	for start := 0; start < len(points); start += s.batchSize {
		end := start + s.batchSize
		if end > len(points) {
			end = len(points)
		}

		batch := make([]*qdrant.PointStruct, 0, end-start)
		for _, p := range points[start:end] {
			batch = append(batch, &qdrant.PointStruct{
				Id:      qdrant.NewIDNum(PointID(p.Chunk.ID)),
				Vectors: qdrant.NewVectors(p.Vector...),
				Payload: chunkPayload(p.Chunk),
			})
		}

		_, err := s.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         batch,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert batch %d/%d: %w",
				start/s.batchSize+1, (len(points)+s.batchSize-1)/s.batchSize, err)
		}

		log.Printf("upserted batch %d/%d (%d points)",
			start/s.batchSize+1, (len(points)+s.batchSize-1)/s.batchSize, end-start)
	}

	return nil
}

// Search returns up to limit nearest points by cosine similarity, with
// payload and score. No score threshold is applied here; filtering is the
// caller's concern.
func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	points, err := s.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search collection %s: %w", s.collection, err)
	}

	results := make([]domain.SearchResult, len(points))
	for i, p := range points {
		results[i] = resultFromPoint(p)
	}
	return results, nil
}

// Health reports whether the vector database is reachable. It never
// returns an error; a failed probe reads as unhealthy.
func (s *Store) Health(ctx context.Context) bool {
	_, err := s.api.ListCollections(ctx)
	return err == nil
}

// Close releases the underlying client connection when there is one.
func (s *Store) Close() error {
	if closer, ok := s.api.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Store) collectionExists(ctx context.Context) (bool, error) {
	_, err := s.api.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check collection %s: %w", s.collection, err)
	}
	return true, nil
}

func chunkPayload(c domain.Chunk) map[string]*qdrant.Value {
	tags := make([]*qdrant.Value, len(c.Metadata.Tags))
	for i, tag := range c.Metadata.Tags {
		tags[i] = stringValue(tag)
	}

	return map[string]*qdrant.Value{
		"content":  stringValue(c.Content),
		"title":    stringValue(c.Metadata.Title),
		"slug":     stringValue(c.Metadata.Slug),
		"category": stringValue(c.Metadata.Category),
		"section":  stringValue(c.Metadata.Section),
		"url":      stringValue(c.Metadata.URL),
		"tags":     {Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: tags}}},
	}
}

func stringValue(s string) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: s}}
}

func resultFromPoint(p *qdrant.ScoredPoint) domain.SearchResult {
	payload := p.GetPayload()
	get := func(key string) string {
		if v, ok := payload[key]; ok {
			return v.GetStringValue()
		}
		return ""
	}

	var tags []string
	if v, ok := payload["tags"]; ok {
		for _, item := range v.GetListValue().GetValues() {
			if tag := item.GetStringValue(); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	slug := get("slug")
	url := get("url")
	if url == "" {
		url = "/docs/" + slug
	}

	return domain.SearchResult{
		Content: get("content"),
		Score:   p.GetScore(),
		Metadata: domain.ChunkMetadata{
			Title:    get("title"),
			Slug:     slug,
			Category: get("category"),
			Section:  get("section"),
			URL:      url,
			Tags:     tags,
		},
	}
}
