package retrieval

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/knowledge"
	"github.com/tbellam/AssistGo/internal/metrics"
	"github.com/tbellam/AssistGo/internal/rag/vectorDB"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

// Merger queries the local corpus, the optional external vector store and
// the session's file contexts, in that fixed order, and concatenates the
// results without any re-ranking across sources.
type Merger struct {
	knowledge *knowledge.Store
	vector    vectorDB.DataSource //nil when not configured
	logger    *logger_i.Logger
}

func NewMerger(knowledgeStore *knowledge.Store, vector vectorDB.DataSource) *Merger {
	return &Merger{
		knowledge: knowledgeStore,
		vector:    vector,
		logger:    logger_i.NewLogger("RetrievalMerger"),
	}
}

// Retrieve returns the merged passages and the tags of the sources that were
// consulted. local_knowledge is always declared, even when it contributed
// nothing - it signals that the local corpus was consulted. The other tags
// appear only when their source produced at least one passage.
//
// A vector store failure is swallowed: log, continue, zero passages from
// that source. Retrieval degrades, it never fails the request.
func (m *Merger) Retrieve(ctx context.Context, query string, sess chatModel.Session) ([]chatModel.RetrievedPassage, []string) {
	log := m.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sess.Id)

	var passages []chatModel.RetrievedPassage
	sources := []string{string(chatModel.SourceLocalKnowledge)}

	passages = append(passages, m.searchLocal(query)...)

	if m.vector != nil {
		vectorPassages := m.searchVector(ctx, log, query)
		if len(vectorPassages) > 0 {
			passages = append(passages, vectorPassages...)
			sources = append(sources, string(chatModel.SourceExternalVector))
		}
	}

	filePassages := m.searchSessionFiles(query, sess.Files)
	if len(filePassages) > 0 {
		passages = append(passages, filePassages...)
		sources = append(sources, string(chatModel.SourceSessionFile))
	}

	log.Debug("retrieval merged", "passages", len(passages), "sources", sources)
	return passages, sources
}

func (m *Merger) searchLocal(query string) []chatModel.RetrievedPassage {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("local_search", time.Since(start)) }()

	docs := m.knowledge.Search(query, config.LocalSearchLimit)
	passages := make([]chatModel.RetrievedPassage, 0, len(docs))
	for _, doc := range docs {
		passages = append(passages, chatModel.RetrievedPassage{
			Text:      doc.Content,
			SourceTag: chatModel.SourceLocalKnowledge,
			Metadata:  doc.Metadata,
		})
	}
	return passages
}

func (m *Merger) searchVector(ctx context.Context, log *logger_i.Logger, query string) []chatModel.RetrievedPassage {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	searchCtx, cancel := context.WithTimeout(ctx, config.VectorSearchTimeout)
	defer cancel()

	matches, err := m.vector.SimilaritySearch(searchCtx, query, config.VectorSearchLimit)
	if err != nil {
		log.Warn("vector store unavailable, continuing without it", "error", err)
		return nil
	}

	passages := make([]chatModel.RetrievedPassage, 0, len(matches))
	for _, match := range matches {
		passages = append(passages, chatModel.RetrievedPassage{
			Text:      match.Text,
			SourceTag: chatModel.SourceExternalVector,
			Metadata:  match.Metadata,
		})
	}
	return passages
}

// searchSessionFiles scores each file's extracted text by query-word overlap
// (matched words / total query words), keeps files with at least one match,
// sorts by descending score and caps the result. Passage text is the first
// FilePassageMaxChars characters of the file so one big upload cannot blow
// up the prompt.
func (m *Merger) searchSessionFiles(query string, files []chatModel.FileContext) []chatModel.RetrievedPassage {
	if len(files) == 0 {
		return nil
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("session_file_search", time.Since(start)) }()

	words := knowledge.Tokenize(query)

	var passages []chatModel.RetrievedPassage
	for _, f := range files {
		if f.ExtractedText == "" {
			continue
		}
		score := matchScore(strings.ToLower(f.ExtractedText), words)
		if score == 0 {
			continue
		}
		passages = append(passages, chatModel.RetrievedPassage{
			Text:       truncate(f.ExtractedText, config.FilePassageMaxChars),
			SourceTag:  chatModel.SourceSessionFile,
			MatchScore: score,
			Metadata: map[string]any{
				"filename":  f.Filename,
				"file_id":   f.Id,
				"mimeClass": string(f.MimeClass),
			},
		})
	}

	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].MatchScore > passages[j].MatchScore
	})
	if len(passages) > config.SessionFileLimit {
		passages = passages[:config.SessionFileLimit]
	}
	return passages
}

// matchScore with an empty word set treats the file as a full match, the
// same vacuous-relevance policy the knowledge store applies.
func matchScore(content string, words []string) float64 {
	if len(words) == 0 {
		return 1
	}
	matched := 0
	for _, w := range words {
		if strings.Contains(content, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(words))
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
