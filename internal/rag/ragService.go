package rag

import (
	"context"
	"time"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/knowledge"
	"github.com/tbellam/AssistGo/internal/metrics"
	"github.com/tbellam/AssistGo/internal/rag/intent"
	"github.com/tbellam/AssistGo/internal/rag/llm"
	"github.com/tbellam/AssistGo/internal/rag/retrieval"
	"github.com/tbellam/AssistGo/internal/rag/sentiment"
	"github.com/tbellam/AssistGo/internal/rag/vectorDB"
	"github.com/tbellam/AssistGo/internal/session"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

// Service is the public contract of the orchestration engine. The transport
// layer and the MCP surface only ever see this interface, never the stores
// or the providers behind it.
type Service interface {
	Answer(ctx context.Context, req chatModel.AskRequest) chatModel.AnswerResult
	Ingest(ctx context.Context, text string, source string, metadata map[string]any) int
	AttachFiles(ctx context.Context, sessionId string, files []chatModel.FileContext)
	SessionInfo(sessionId string) (chatModel.Session, bool)
	SessionFiles(sessionId string) ([]chatModel.FileContext, bool)
	ClearSession(ctx context.Context, sessionId string) bool
	Status(ctx context.Context) chatModel.EngineStatus
}

type service struct {
	sessions  *session.Registry
	knowledge *knowledge.Store
	merger    *retrieval.Merger
	vector    vectorDB.DataSource //nil when not configured
	llm       llm.Provider
	history   chatModel.HistoryStore
	analyzer  sentiment.Analyzer
	logger    *logger_i.Logger
}

func NewService(sessions *session.Registry, knowledgeStore *knowledge.Store, vector vectorDB.DataSource,
	llmProvider llm.Provider, history chatModel.HistoryStore, analyzer sentiment.Analyzer) Service {
	return &service{
		sessions:  sessions,
		knowledge: knowledgeStore,
		merger:    retrieval.NewMerger(knowledgeStore, vector),
		vector:    vector,
		llm:       llmProvider,
		history:   history,
		analyzer:  analyzer,
		logger:    logger_i.NewLogger("RAG Service :"),
	}
}

// Answer never returns an error: every internal failure degrades to the
// language-selected canned response. The caller reads `sources` to tell a
// degraded answer from a normal one.
//
// Uploaded file text is also inserted into the shared knowledge store
// tagged file_upload, so later queries from any session can retrieve it.
// The corpus is process-wide on purpose; per-tenant isolation means
// per-tenant processes.
func (s *service) Answer(ctx context.Context, req chatModel.AskRequest) (result chatModel.AnswerResult) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", req.SessionId)

	start := time.Now()
	status := "ok"
	defer func() { metrics.CaptureAnswerMetrics(status, time.Since(start)) }()

	languageCode := req.Language
	if languageCode == "" {
		languageCode = config.DefaultLanguage
	}
	req.Language = languageCode

	queryIntent := intent.Classify(req.Query)
	querySentiment := s.computeSentiment(req)

	defer func() {
		if r := recover(); r != nil {
			inMethodLogger.Error("recovered from panic, answering with fallback", "panic", r)
			status = "fallback"
			result = s.fallbackResult(languageCode, queryIntent, querySentiment)
		}
	}()

	s.sessions.SetLanguage(req.SessionId, languageCode)
	if len(req.NewFiles) > 0 {
		s.AttachFiles(ctx, req.SessionId, req.NewFiles)
	}
	sess := s.sessions.GetOrCreate(req.SessionId)

	var passages []chatModel.RetrievedPassage
	var sources []string
	if req.UseRetrieval {
		passages, sources = s.executeRetrievalStep(ctx, req.Query, sess)
	}

	promptText := s.executePromptStep(ctx, languageCode, passages, sess, req.Query)

	answer, err := s.executeInferenceStep(ctx, promptText)
	if err != nil {
		inMethodLogger.Error("inference failed, answering with fallback", "error", err)
		status = "fallback"
		result = s.fallbackResult(languageCode, queryIntent, querySentiment)
		s.storeTurns(ctx, req, sess, languageCode, result.Text)
		return result
	}

	result = chatModel.AnswerResult{
		Text:       answer,
		Sentiment:  querySentiment,
		Intent:     queryIntent,
		Sources:    sources,
		Confidence: config.ConfidenceNormal,
		Language:   languageCode,
	}
	s.storeTurns(ctx, req, sess, languageCode, answer)
	return result
}

// Ingest adds text to the local corpus and returns its document id.
func (s *service) Ingest(ctx context.Context, text string, source string, metadata map[string]any) int {
	id := s.knowledge.Add(text, source, metadata)
	metrics.IncrementDocumentsIngested()
	s.logger.Debug("ingested document", "id", id, "source", source)
	return id
}

// AttachFiles appends processed files to the session and feeds their
// extracted text to the knowledge store and, when configured, the external
// vector store. The vector upsert runs in the background: losing it only
// costs recall, never the request.
func (s *service) AttachFiles(ctx context.Context, sessionId string, files []chatModel.FileContext) {
	s.sessions.AppendFiles(sessionId, files)

	var texts []string
	var metadatas []map[string]any
	for _, f := range files {
		if f.ExtractedText == "" {
			continue
		}
		s.Ingest(ctx, f.ExtractedText, string(chatModel.SourceFileUpload), map[string]any{
			"filename":   f.Filename,
			"session_id": sessionId,
		})
		texts = append(texts, f.ExtractedText)
		metadatas = append(metadatas, map[string]any{"source": f.Filename})
	}

	if s.vector != nil && len(texts) > 0 {
		go func() {
			upsertCtx, cancel := context.WithTimeout(context.Background(), config.VectorSearchTimeout)
			defer cancel()
			if err := s.vector.AddDocuments(upsertCtx, texts, metadatas); err != nil {
				s.logger.Warn("vector upsert failed", "error", err)
			}
		}()
	}
}

func (s *service) SessionInfo(sessionId string) (chatModel.Session, bool) {
	return s.sessions.Snapshot(sessionId)
}

func (s *service) SessionFiles(sessionId string) ([]chatModel.FileContext, bool) {
	sess, found := s.sessions.Snapshot(sessionId)
	if !found {
		return nil, false
	}
	return sess.Files, true
}

func (s *service) ClearSession(ctx context.Context, sessionId string) bool {
	if err := s.history.ClearHistory(ctx, sessionId); err != nil {
		s.logger.Error("failed clearing history", "sessionId", sessionId, "error", err)
	}
	return s.sessions.Evict(sessionId)
}

func (s *service) Status(ctx context.Context) chatModel.EngineStatus {
	return chatModel.EngineStatus{
		Ready:           true,
		VectorAvailable: s.vector != nil,
		LLMConfigured:   s.llm != nil,
		DocumentCount:   s.knowledge.Count(),
		SessionCount:    s.sessions.Count(),
	}
}
