package api

import "time"

type AskRequest struct {
	Query         string `json:"query" validate:"required" example:"what was the invoice total"`
	Language      string `json:"language,omitempty" example:"en"`
	SessionID     string `json:"session_id,omitempty"`
	UseRetrieval  *bool  `json:"use_retrieval,omitempty"`
	WantSentiment bool   `json:"want_sentiment,omitempty"`
}

type AskResponse struct {
	SessionID  string   `json:"session_id"`
	Text       string   `json:"text"`
	Sentiment  string   `json:"sentiment"`
	Intent     string   `json:"intent"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
	Language   string   `json:"language"`
}

type IngestRequest struct {
	Text     string         `json:"text" validate:"required"`
	Source   string         `json:"source,omitempty" example:"manual"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type IngestResponse struct {
	DocumentID int `json:"document_id"`
}

type FileSummary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	MimeClass string    `json:"mime_class"`
	SizeBytes int64     `json:"size_bytes"`
	HasText   bool      `json:"has_text"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadResponse struct {
	SessionID string        `json:"session_id"`
	Files     []FileSummary `json:"files"`
}

type SessionInfoResponse struct {
	ID          string    `json:"id"`
	Language    string    `json:"language"`
	FileCount   int       `json:"file_count"`
	LastUpdated time.Time `json:"last_updated"`
}

type StatusResponse struct {
	Ready           bool `json:"ready"`
	VectorAvailable bool `json:"vector_available"`
	LLMConfigured   bool `json:"llm_configured"`
	DocumentCount   int  `json:"document_count"`
	SessionCount    int  `json:"session_count"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"query is required"`
	ID      string `json:"id,omitempty"`
}
