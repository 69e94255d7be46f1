package rag

import (
	"context"
	"errors"
	"time"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/metrics"
	"github.com/tbellam/AssistGo/internal/rag/prompt"
	"github.com/tbellam/AssistGo/internal/rag/sentiment"
)

func (s *service) executeRetrievalStep(ctx context.Context, query string, sess chatModel.Session) ([]chatModel.RetrievedPassage, []string) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	return s.merger.Retrieve(ctx, query, sess)
}

func (s *service) executePromptStep(ctx context.Context, languageCode string, passages []chatModel.RetrievedPassage,
	sess chatModel.Session, query string) string {

	turns, err := s.history.GetHistory(ctx, sess.Id)
	if err != nil {
		s.logger.Error("failed reading history, prompting without it", "sessionId", sess.Id, "error", err)
	}
	historyText := prompt.FormatHistory(turns, config.HistoryPromptTurns)

	return prompt.Build(languageCode, passages, sess.AggregatedFileContext, historyText, query, len(sess.Files))
}

func (s *service) executeInferenceStep(ctx context.Context, promptText string) (string, error) {
	if s.llm == nil {
		return "", errors.New("no inference backend configured")
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	inferCtx, cancel := context.WithTimeout(ctx, config.InferenceTimeout)
	defer cancel()

	return s.llm.Invoke(inferCtx, promptText)
}

// computeSentiment only runs the analyzer for English queries that asked for
// it; everything else is the literal "neutral", not "unknown".
func (s *service) computeSentiment(req chatModel.AskRequest) string {
	if !req.WantSentiment || req.Language != "en" || s.analyzer == nil {
		return sentiment.Neutral
	}
	return sentiment.Threshold(s.analyzer.Score(req.Query))
}

func (s *service) fallbackResult(languageCode string, queryIntent string, querySentiment string) chatModel.AnswerResult {
	metrics.IncrementFallbackAnswers()
	return chatModel.AnswerResult{
		Text:       prompt.FallbackText(languageCode),
		Sentiment:  querySentiment,
		Intent:     queryIntent,
		Sources:    []string{string(chatModel.SourceFallback)},
		Confidence: config.ConfidenceFallback,
		Language:   languageCode,
	}
}

// storeTurns appends the user turn and, when inference succeeded, the
// assistant turn to the capped conversation log.
func (s *service) storeTurns(ctx context.Context, req chatModel.AskRequest, sess chatModel.Session, languageCode string, answer string) {
	now := time.Now()
	turns := []chatModel.ConversationTurn{{
		Role:      chatModel.RoleUser,
		Content:   req.Query,
		Language:  languageCode,
		FileCount: len(sess.Files),
		Timestamp: now,
	}}
	if answer != "" {
		turns = append(turns, chatModel.ConversationTurn{
			Role:      chatModel.RoleAssistant,
			Content:   answer,
			Language:  languageCode,
			FileCount: len(sess.Files),
			Timestamp: now,
		})
	}
	if err := s.history.AppendTurns(ctx, sess.Id, turns...); err != nil {
		s.logger.Error("failed saving conversation turns", "sessionId", sess.Id, "error", err)
	}
}
