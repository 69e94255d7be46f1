package store

import (
	"context"
	"sync"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem HistoryStore")

type InMemoryHistoryStore struct {
	mu    *sync.RWMutex
	turns map[string][]chatModel.ConversationTurn
}

func InitInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		mu:    new(sync.RWMutex),
		turns: make(map[string][]chatModel.ConversationTurn),
	}
}

func (s *InMemoryHistoryStore) AppendTurns(ctx context.Context, sessionId string, turns ...chatModel.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	log := append(s.turns[sessionId], turns...)
	if excess := len(log) - config.HistoryMaxTurns; excess > 0 {
		log = log[excess:] //oldest first out
	}
	s.turns[sessionId] = log
	inMemLogger.Debug("saved turns", "sessionId", sessionId, "logLength", len(log))
	return nil
}

func (s *InMemoryHistoryStore) GetHistory(ctx context.Context, sessionId string) ([]chatModel.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]chatModel.ConversationTurn(nil), s.turns[sessionId]...), nil
}

func (s *InMemoryHistoryStore) ClearHistory(ctx context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, sessionId)
	return nil
}
