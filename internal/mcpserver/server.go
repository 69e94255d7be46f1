package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tbellam/AssistGo/internal/adapter/utils"
	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/rag"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

// Server exposes the answering engine over the Model Context Protocol so
// agent hosts can drive it through stdio instead of HTTP.
type Server struct {
	mcpServer *mcp.Server
	service   rag.Service
	logger    *logger_i.Logger
}

type AskInput struct {
	Query         string `json:"query" jsonschema:"description=The question to answer"`
	Language      string `json:"language,omitempty" jsonschema:"description=ISO language code and defaults to en"`
	SessionID     string `json:"session_id,omitempty" jsonschema:"description=Session to continue and a new one is created when omitted"`
	WantSentiment bool   `json:"want_sentiment,omitempty" jsonschema:"description=Include sentiment analysis for English queries"`
}

type IngestInput struct {
	Text   string `json:"text" jsonschema:"description=The text to add to the knowledge store"`
	Source string `json:"source,omitempty" jsonschema:"description=Where the text came from"`
}

type SessionInfoInput struct {
	SessionID string `json:"session_id" jsonschema:"description=The session to inspect"`
}

func NewServer(name string, version string, ragService rag.Service) (*Server, error) {
	if ragService == nil {
		return nil, fmt.Errorf("rag service is required")
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		service: ragService,
		logger:  logger_i.NewLogger("MCPServer"),
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return s, nil
}

// Run blocks serving the MCP protocol until the transport closes.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("MCP server running")
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) registerTools() error {
	askSchema, err := jsonschema.For[AskInput](nil)
	if err != nil {
		return fmt.Errorf("schema for ask tool: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "ask",
		Description: "Answer a question using the local knowledge store, session files and " +
			"conversation history. Returns the answer text with its sources and intent.",
		InputSchema: askSchema,
	}, s.Ask)

	ingestSchema, err := jsonschema.For[IngestInput](nil)
	if err != nil {
		return fmt.Errorf("schema for ingest tool: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "ingest_text",
		Description: "Add a text document to the shared knowledge store so later questions can retrieve it.",
		InputSchema: ingestSchema,
	}, s.IngestText)

	sessionSchema, err := jsonschema.For[SessionInfoInput](nil)
	if err != nil {
		return fmt.Errorf("schema for session info tool: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "session_info",
		Description: "Inspect a session: its language and how many files it carries.",
		InputSchema: sessionSchema,
	}, s.SessionInfo)

	return nil
}

// Ask handles the ask MCP tool call.
func (s *Server) Ask(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, any, error) {
	if input.Query == "" {
		return nil, nil, fmt.Errorf("query is required")
	}
	sessionId := input.SessionID
	if sessionId == "" {
		sessionId = utils.GetNewUUID()
	}

	result := s.service.Answer(withTrace(ctx), chatModel.AskRequest{
		Query:         input.Query,
		Language:      input.Language,
		SessionId:     sessionId,
		UseRetrieval:  true,
		WantSentiment: input.WantSentiment,
	})

	return resultToMCP(map[string]any{
		"session_id": sessionId,
		"text":       result.Text,
		"sentiment":  result.Sentiment,
		"intent":     result.Intent,
		"sources":    result.Sources,
		"confidence": result.Confidence,
		"language":   result.Language,
	}), nil, nil
}

// IngestText handles the ingest_text MCP tool call.
func (s *Server) IngestText(ctx context.Context, _ *mcp.CallToolRequest, input IngestInput) (*mcp.CallToolResult, any, error) {
	if input.Text == "" {
		return nil, nil, fmt.Errorf("text is required")
	}
	source := input.Source
	if source == "" {
		source = "mcp"
	}

	id := s.service.Ingest(withTrace(ctx), input.Text, source, nil)
	return resultToMCP(map[string]any{"document_id": id}), nil, nil
}

// SessionInfo handles the session_info MCP tool call.
func (s *Server) SessionInfo(_ context.Context, _ *mcp.CallToolRequest, input SessionInfoInput) (*mcp.CallToolResult, any, error) {
	sess, found := s.service.SessionInfo(input.SessionID)
	if !found {
		return nil, nil, fmt.Errorf("session %q not found", input.SessionID)
	}
	return resultToMCP(map[string]any{
		"id":           sess.Id,
		"language":     sess.Language,
		"file_count":   len(sess.Files),
		"last_updated": sess.LastUpdated,
	}), nil, nil
}

func withTrace(ctx context.Context) context.Context {
	return context.WithValue(ctx, config.TRACE_ID_KEY, utils.GetNewUUID())
}

func resultToMCP(payload any) *mcp.CallToolResult {
	encoded, err := json.Marshal(payload)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", payload))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(encoded)}},
	}
}
