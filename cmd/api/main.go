// @title           Assist RAG API
// @version         1.0
// @description     Retrieval augmented answering engine for a multilingual assistant
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/data/store"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/handlers"
	"github.com/tbellam/AssistGo/internal/knowledge"
	"github.com/tbellam/AssistGo/internal/mcpserver"
	"github.com/tbellam/AssistGo/internal/rag"
	"github.com/tbellam/AssistGo/internal/rag/embedding/googleEmbedding"
	"github.com/tbellam/AssistGo/internal/rag/llm"
	"github.com/tbellam/AssistGo/internal/rag/llm/gemini"
	"github.com/tbellam/AssistGo/internal/rag/llm/openai"
	"github.com/tbellam/AssistGo/internal/rag/sentiment"
	"github.com/tbellam/AssistGo/internal/rag/vectorDB"
	"github.com/tbellam/AssistGo/internal/rag/vectorDB/qdrantDB"
	"github.com/tbellam/AssistGo/internal/server"
	"github.com/tbellam/AssistGo/internal/session"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

var (
	listenAddr string
	mcpMode    bool
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve the MCP protocol on stdio instead of HTTP")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//volatile core stores
	knowledgeStore := knowledge.NewStore()
	seedKnowledge(knowledgeStore)
	sessions := session.NewRegistry()

	//conversation log - redis when it is up, in-memory otherwise
	var history chatModel.HistoryStore
	if redisHistory := store.GetRedisHistoryStore(serviceContext); redisHistory != nil {
		history = redisHistory
	} else {
		logger.Error("Redis history store is offline, falling back to in-memory")
		history = store.InitInMemoryHistoryStore()
	}

	//optional external services - the engine degrades without them
	geminiKey := os.Getenv("GEMINI_API_KEY")
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, geminiKey)

	var vector vectorDB.DataSource
	if qc := qdrantDB.GetQdrantClient(serviceContext, embeddingService); qc != nil {
		vector = qc
	} else {
		logger.Warn("Vector store unavailable, retrieval runs on local knowledge only")
	}

	var llmProvider llm.Provider
	switch config.LLMProvider {
	case "openai":
		llmProvider = openai.GetOpenAIClient(os.Getenv("OPENAI_API_KEY"), config.OpenAIModelName)
	default:
		llmProvider = gemini.GetGeminiClient(serviceContext, geminiKey, config.GeminiModelName)
	}
	if llmProvider == nil {
		logger.Warn("LLM provider unavailable, every answer will be the canned fallback")
	}

	ragService := rag.NewService(sessions, knowledgeStore, vector, llmProvider, history, sentiment.LexiconAnalyzer{})

	if mcpMode {
		runMCP(serviceContext, ragService, logger)
		return
	}

	handlers.InitHandlers(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func runMCP(ctx context.Context, ragService rag.Service, logger *logger_i.Logger) {
	mcpServer, err := mcpserver.NewServer("assistgo", "1.0.0", ragService)
	if err != nil {
		logger.Error("Could not create MCP server", "error", err)
		return
	}
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server stopped", "error", err)
	}
}

// a tiny starter corpus so a fresh instance can answer something useful
// before anyone calls /ingest
func seedKnowledge(knowledgeStore *knowledge.Store) {
	seeds := []string{
		"This assistant answers questions using local knowledge, uploaded files and conversation history.",
		"Upload PDF, DOCX or text files to give the assistant context about your documents.",
		"The assistant can respond in English, Spanish, French, German, Portuguese and Hindi.",
	}
	for _, text := range seeds {
		knowledgeStore.Add(text, "seed", nil)
	}
}
