package chatModel

import (
	"context"
	"time"
)

type SourceTag string
type Role string
type MimeClass string

const (
	SourceLocalKnowledge SourceTag = "local_knowledge"
	SourceExternalVector SourceTag = "external_vector"
	SourceSessionFile    SourceTag = "session_file"
	SourceFileUpload     SourceTag = "file_upload"
	SourceFallback       SourceTag = "fallback"

	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	MimeImage    MimeClass = "image"
	MimeDocument MimeClass = "document"
	MimeUnknown  MimeClass = "unknown"
)

// Document is an append-only knowledge store entry. Immutable once stored.
type Document struct {
	Content  string         `json:"content"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
	AddedAt  time.Time      `json:"added_at"`
}

// FileContext is produced once by the file processor and owned by the
// session it is attached to afterwards.
type FileContext struct {
	Id            string    `json:"id"`
	Filename      string    `json:"filename"`
	MimeClass     MimeClass `json:"mime_class"`
	MimeSubtype   string    `json:"mime_subtype"`
	SizeBytes     int64     `json:"size_bytes"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Session struct {
	Id                    string        `json:"id"`
	Files                 []FileContext `json:"files"`
	AggregatedFileContext string        `json:"-"`
	Language              string        `json:"language"`
	LastUpdated           time.Time     `json:"last_updated"`
}

type ConversationTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	FileCount int       `json:"file_count"`
	Timestamp time.Time `json:"timestamp"`
}

// RetrievedPassage is ephemeral - constructed per query, never persisted.
// MatchScore is only meaningful for session_file passages.
type RetrievedPassage struct {
	Text       string         `json:"text"`
	SourceTag  SourceTag      `json:"source_tag"`
	MatchScore float64        `json:"match_score,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type AskRequest struct {
	Query         string
	Language      string
	SessionId     string
	UseRetrieval  bool
	WantSentiment bool
	NewFiles      []FileContext
}

type AnswerResult struct {
	Text       string   `json:"text"`
	Sentiment  string   `json:"sentiment"`
	Intent     string   `json:"intent"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
	Language   string   `json:"language"`
}

type EngineStatus struct {
	Ready           bool `json:"ready"`
	VectorAvailable bool `json:"vector_available"`
	LLMConfigured   bool `json:"llm_configured"`
	DocumentCount   int  `json:"document_count"`
	SessionCount    int  `json:"session_count"`
}

// HistoryStore keeps the per-session conversation log capped at
// config.HistoryMaxTurns, oldest turns evicted first.
type HistoryStore interface {
	AppendTurns(ctx context.Context, sessionId string, turns ...ConversationTurn) error
	GetHistory(ctx context.Context, sessionId string) ([]ConversationTurn, error)
	ClearHistory(ctx context.Context, sessionId string) error
}
