package vectorDB

import "context"

// Match is one similarity hit returned by the external store.
type Match struct {
	Text     string
	Metadata map[string]any
}

// DataSource is the optional external vector-similarity store. It may be
// entirely unreachable; callers treat every error as a degraded retrieval,
// never a failed request.
type DataSource interface {
	SimilaritySearch(ctx context.Context, queryText string, limit int) ([]Match, error)
	AddDocuments(ctx context.Context, texts []string, metadatas []map[string]any) error
}
