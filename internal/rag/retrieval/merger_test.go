package retrieval_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/knowledge"
	"github.com/tbellam/AssistGo/internal/rag/retrieval"
	"github.com/tbellam/AssistGo/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.DataSource
type MockVectorDB struct {
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

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func sessionWithFiles(files ...chatModel.FileContext) chatModel.Session {
	return chatModel.Session{Id: "s1", Files: files}
}

func countByTag(passages []chatModel.RetrievedPassage, tag chatModel.SourceTag) int {
	n := 0
	for _, p := range passages {
		if p.SourceTag == tag {
			n++
		}
	}
	return n
}

func TestMerger_LocalKnowledgeAlwaysDeclared(t *testing.T) {
	m := retrieval.NewMerger(knowledge.NewStore(), nil)

	passages, sources := m.Retrieve(testContext(), "anything at all", sessionWithFiles())
	if len(passages) != 0 {
		t.Errorf("empty corpus produced %d passages", len(passages))
	}
	if len(sources) != 1 || sources[0] != string(chatModel.SourceLocalKnowledge) {
		t.Errorf("sources got %v, want [local_knowledge]", sources)
	}
}

func TestMerger_OrderIsLocalThenVectorThenFiles(t *testing.T) {
	ks := knowledge.NewStore()
	ks.Add("local invoice fact", "test", nil)

	vec := &MockVectorDB{
		OnSimilaritySearch: func(ctx context.Context, query string, limit int) ([]vectorDB.Match, error) {
			if limit != config.VectorSearchLimit {
				t.Errorf("vector limit got %d, want %d", limit, config.VectorSearchLimit)
			}
			return []vectorDB.Match{{Text: "vector invoice fact"}}, nil
		},
	}

	m := retrieval.NewMerger(ks, vec)
	sess := sessionWithFiles(chatModel.FileContext{
		Filename:      "invoice.pdf",
		ExtractedText: "The invoice total is $500",
	})

	passages, sources := m.Retrieve(testContext(), "what is the invoice total", sess)

	wantTags := []chatModel.SourceTag{
		chatModel.SourceLocalKnowledge,
		chatModel.SourceExternalVector,
		chatModel.SourceSessionFile,
	}
	if len(passages) != 3 {
		t.Fatalf("got %d passages, want 3: %+v", len(passages), passages)
	}
	for i, tag := range wantTags {
		if passages[i].SourceTag != tag {
			t.Errorf("passage %d tag got %q, want %q", i, passages[i].SourceTag, tag)
		}
	}

	wantSources := []string{"local_knowledge", "external_vector", "session_file"}
	if len(sources) != 3 {
		t.Fatalf("sources got %v, want %v", sources, wantSources)
	}
	for i := range wantSources {
		if sources[i] != wantSources[i] {
			t.Errorf("sources[%d] got %q, want %q", i, sources[i], wantSources[i])
		}
	}
}

func TestMerger_VectorFailureIsSwallowed(t *testing.T) {
	ks := knowledge.NewStore()
	ks.Add("local invoice fact", "test", nil)

	vec := &MockVectorDB{
		OnSimilaritySearch: func(ctx context.Context, query string, limit int) ([]vectorDB.Match, error) {
			return nil, errors.New("connection refused")
		},
	}

	m := retrieval.NewMerger(ks, vec)
	passages, sources := m.Retrieve(testContext(), "invoice", sessionWithFiles())

	if countByTag(passages, chatModel.SourceLocalKnowledge) != 1 {
		t.Errorf("local passages lost on vector failure: %+v", passages)
	}
	for _, s := range sources {
		if s == string(chatModel.SourceExternalVector) {
			t.Error("external_vector declared despite search failure")
		}
	}
}

func TestMerger_EmptyVectorResultNotDeclared(t *testing.T) {
	vec := &MockVectorDB{
		OnSimilaritySearch: func(ctx context.Context, query string, limit int) ([]vectorDB.Match, error) {
			return nil, nil
		},
	}
	m := retrieval.NewMerger(knowledge.NewStore(), vec)

	_, sources := m.Retrieve(testContext(), "anything", sessionWithFiles())
	if len(sources) != 1 {
		t.Errorf("sources got %v, want only local_knowledge", sources)
	}
}

func TestMerger_LocalSearchLimit(t *testing.T) {
	ks := knowledge.NewStore()
	for i := 0; i < 5; i++ {
		ks.Add("invoice data", "test", nil)
	}
	m := retrieval.NewMerger(ks, nil)

	passages, _ := m.Retrieve(testContext(), "invoice", sessionWithFiles())
	if got := countByTag(passages, chatModel.SourceLocalKnowledge); got != config.LocalSearchLimit {
		t.Errorf("local passages got %d, want %d", got, config.LocalSearchLimit)
	}
}

func TestMerger_SessionFileScoringAndCap(t *testing.T) {
	m := retrieval.NewMerger(knowledge.NewStore(), nil)
	sess := sessionWithFiles(
		chatModel.FileContext{Id: "f1", Filename: "partial.txt", ExtractedText: "only the invoice word here"},
		chatModel.FileContext{Id: "f2", Filename: "full.txt", ExtractedText: "the invoice total is $500"},
		chatModel.FileContext{Id: "f3", Filename: "unrelated.txt", ExtractedText: "gardening tips"},
		chatModel.FileContext{Id: "f4", Filename: "alsofull.txt", ExtractedText: "another invoice total number"},
	)

	passages, _ := m.Retrieve(testContext(), "invoice total", sess)

	filePassages := make([]chatModel.RetrievedPassage, 0)
	for _, p := range passages {
		if p.SourceTag == chatModel.SourceSessionFile {
			filePassages = append(filePassages, p)
		}
	}
	if len(filePassages) != config.SessionFileLimit {
		t.Fatalf("file passages got %d, want cap %d", len(filePassages), config.SessionFileLimit)
	}
	// both words matched beats one word matched
	for _, p := range filePassages {
		if p.MatchScore != 1 {
			t.Errorf("high-score file expected, got score %v for %v", p.MatchScore, p.Metadata)
		}
		if p.Metadata["filename"] == "unrelated.txt" {
			t.Error("non-matching file survived")
		}
	}
}

func TestMerger_SessionFileTruncation(t *testing.T) {
	m := retrieval.NewMerger(knowledge.NewStore(), nil)
	long := strings.Repeat("invoice ", 400) // well past the cap
	sess := sessionWithFiles(chatModel.FileContext{Filename: "big.txt", ExtractedText: long})

	passages, _ := m.Retrieve(testContext(), "invoice", sess)

	var filePassage *chatModel.RetrievedPassage
	for i := range passages {
		if passages[i].SourceTag == chatModel.SourceSessionFile {
			filePassage = &passages[i]
		}
	}
	if filePassage == nil {
		t.Fatal("no session file passage produced")
	}
	if len(filePassage.Text) != config.FilePassageMaxChars+len("...") {
		t.Errorf("truncated length got %d, want %d", len(filePassage.Text), config.FilePassageMaxChars+3)
	}
	if !strings.HasSuffix(filePassage.Text, "...") {
		t.Error("truncated passage missing ellipsis")
	}
}

func TestMerger_FilesWithoutTextAreSkipped(t *testing.T) {
	m := retrieval.NewMerger(knowledge.NewStore(), nil)
	sess := sessionWithFiles(chatModel.FileContext{Filename: "photo.png"})

	passages, sources := m.Retrieve(testContext(), "photo", sess)
	if countByTag(passages, chatModel.SourceSessionFile) != 0 {
		t.Error("text-less file produced a passage")
	}
	if len(sources) != 1 {
		t.Errorf("sources got %v, want only local_knowledge", sources)
	}
}
