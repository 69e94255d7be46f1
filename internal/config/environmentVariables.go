package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	NoAuthBypass = true //set false and set AuthToken to require bearer auth
	AuthToken    = ""

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//retrieval
	LocalSearchLimit    = 3
	VectorSearchLimit   = 2
	SessionFileLimit    = 2
	FilePassageMaxChars = 1000

	//conversation log
	HistoryMaxTurns    = 50
	HistoryPromptTurns = 6

	//answer
	DefaultLanguage    = "en"
	ConfidenceNormal   = 0.9
	ConfidenceFallback = 0.6
	SentimentThreshold = 0.2

	//timeouts for the only two calls that can stall
	VectorSearchTimeout = 10 * time.Second
	InferenceTimeout    = 30 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	MaxUploadSize = 32 << 20 //32mb

	//vectorDB
	EmbeddingOutputDimensionality int32 = 1536
	KnowledgeCollection                 = "assist-knowledge"
	QdrantHost                          = ""
	QdrantGrpcPort                      = 6334
	QdrantUseTLS                        = false
	QdrantPoolSize                      = 1

	//llm
	LLMProvider     = "gemini" //or "openai"
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName = "gpt-4o-mini"

	GoogleEmbeddingModel = "gemini-embedding-001"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DBs we can use
	RedisHistoryStore = 0

	RedisHistoryTTL = 24 * time.Hour
)
