package rag_test

import (
	"context"

	"github.com/tbellam/AssistGo/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.DataSource
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSimilaritySearch func(ctx context.Context, query string, limit int) ([]vectorDB.Match, error)
	OnAddDocuments     func(ctx context.Context, texts []string, metadatas []map[string]any) error
}

func (m *MockVectorDB) SimilaritySearch(ctx context.Context, query string, limit int) ([]vectorDB.Match, error) {
	if m.OnSimilaritySearch != nil {
		return m.OnSimilaritySearch(ctx, query, limit)
	}
	return nil, nil
}

func (m *MockVectorDB) AddDocuments(ctx context.Context, texts []string, metadatas []map[string]any) error {
	if m.OnAddDocuments != nil {
		return m.OnAddDocuments(ctx, texts, metadatas)
	}
	return nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnInvoke func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	if m.OnInvoke != nil {
		return m.OnInvoke(ctx, prompt)
	}
	return "mocked llm response", nil
}

// MockAnalyzer implements sentiment.Analyzer
type MockAnalyzer struct {
	OnScore func(text string) float64
}

func (m *MockAnalyzer) Score(text string) float64 {
	if m.OnScore != nil {
		return m.OnScore(text)
	}
	return 0
}
