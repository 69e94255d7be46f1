package qdrantDB

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/rag/embedding"
	"github.com/tbellam/AssistGo/internal/rag/vectorDB"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var collectionName = config.KnowledgeCollection

// ClientHolder adapts qdrant to the DataSource contract. Similarity queries
// are keyed by raw query text; the embedder turns it into a vector first.
type ClientHolder struct {
	QObj     *qdrant.Client
	embedder embedding.Embedder
}

func GetQdrantClient(ctx context.Context, embedder embedding.Embedder) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil || embedder == nil {
		return nil
	}
	return &ClientHolder{
		QObj:     qdrantInstance,
		embedder: embedder,
	}
}

func newClient() *qdrant.Client {

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, collectionName)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", collectionName, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) SimilaritySearch(ctx context.Context, queryText string, limit int) ([]vectorDB.Match, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	vector, err := db.embedder.GetEmbedding(ctx, queryText)
	if err != nil {
		loggr.Error("Error embedding query: ", "error:", err)
		return nil, err
	}

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	var matches []vectorDB.Match
	for _, hit := range result {
		matches = append(matches, vectorDB.Match{
			Text: hit.Payload["content"].GetStringValue(),
			Metadata: map[string]any{
				"source":      hit.Payload["source"].GetStringValue(),
				"ingested_at": hit.Payload["ingested_at"].GetStringValue(),
				"score":       hit.Score,
			},
		})
	}

	loggr.Debug("similarity search done", "matches", len(matches))
	return matches, nil
}

func (db *ClientHolder) AddDocuments(ctx context.Context, texts []string, metadatas []map[string]any) error {
	if len(metadatas) != 0 && len(metadatas) != len(texts) {
		return errors.New("metadata count does not match text count")
	}

	vectors, err := db.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(texts) {
		return errors.New("embedder returned wrong vector count")
	}

	points := make([]*qdrant.PointStruct, len(texts))
	for i, text := range texts {
		payload := map[string]any{"content": text}
		if len(metadatas) > 0 {
			for k, v := range metadatas[i] {
				payload[k] = v
			}
		}
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	_, err = db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	return err
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
