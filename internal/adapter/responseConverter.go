package adapter

import (
	"github.com/tbellam/AssistGo/internal/api"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
)

func ToAskResponse(sessionId string, result chatModel.AnswerResult) api.AskResponse {
	return api.AskResponse{
		SessionID:  sessionId,
		Text:       result.Text,
		Sentiment:  result.Sentiment,
		Intent:     result.Intent,
		Sources:    result.Sources,
		Confidence: result.Confidence,
		Language:   result.Language,
	}
}

func ToFileSummaries(files []chatModel.FileContext) []api.FileSummary {
	summaries := make([]api.FileSummary, 0, len(files))
	for _, f := range files {
		summaries = append(summaries, api.FileSummary{
			ID:        f.Id,
			Filename:  f.Filename,
			MimeClass: string(f.MimeClass),
			SizeBytes: f.SizeBytes,
			HasText:   f.ExtractedText != "",
			CreatedAt: f.CreatedAt,
		})
	}
	return summaries
}

func ToSessionInfoResponse(sess chatModel.Session) api.SessionInfoResponse {
	return api.SessionInfoResponse{
		ID:          sess.Id,
		Language:    sess.Language,
		FileCount:   len(sess.Files),
		LastUpdated: sess.LastUpdated,
	}
}

func ToStatusResponse(status chatModel.EngineStatus) api.StatusResponse {
	return api.StatusResponse{
		Ready:           status.Ready,
		VectorAvailable: status.VectorAvailable,
		LLMConfigured:   status.LLMConfigured,
		DocumentCount:   status.DocumentCount,
		SessionCount:    status.SessionCount,
	}
}

func BadRequest(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
		ID:      id,
	}
}
