package store

import (
	"context"
	"encoding/json"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/data/redisStore"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

// RedisHistoryStore mirrors the conversation log into Redis, capped with
// LTRIM so the FIFO invariant holds even across process restarts.
type RedisHistoryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisHistoryStore(ctx context.Context) *RedisHistoryStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisHistoryStore)
	if inner == nil {
		return nil
	}
	return &RedisHistoryStore{
		store:  inner,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func (s *RedisHistoryStore) AppendTurns(ctx context.Context, sessionId string, turns ...chatModel.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			log.Error("error marshalling turn", "error", err)
			return err
		}
		values = append(values, data)
	}
	if err := s.store.ListAppendCapped(ctx, sessionId, config.HistoryMaxTurns, values...); err != nil {
		log.Error("error saving turns", "error", err)
		return err
	}
	if err := s.store.Expire(ctx, sessionId, config.RedisHistoryTTL); err != nil {
		log.Error("error refreshing history TTL", "error", err)
	}
	log.Debug("saved turns", "count", len(turns))
	return nil
}

func (s *RedisHistoryStore) GetHistory(ctx context.Context, sessionId string) ([]chatModel.ConversationTurn, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	raw, err := s.store.ListGetAll(ctx, sessionId)
	if err != nil {
		log.Error("error getting history", "error", err)
		return nil, err
	}
	turns := make([]chatModel.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var turn chatModel.ConversationTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			log.Error("error unmarshalling turn", "error", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisHistoryStore) ClearHistory(ctx context.Context, sessionId string) error {
	return s.store.Del(ctx, sessionId)
}

func TestHistoryStore(store *redisStore.Store) *RedisHistoryStore {
	return &RedisHistoryStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
