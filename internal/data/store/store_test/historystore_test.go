package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/data/redisStore"
	"github.com/tbellam/AssistGo/internal/data/store"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
)

func newTurn(role chatModel.Role, content string) chatModel.ConversationTurn {
	return chatModel.ConversationTurn{Role: role, Content: content, Language: "en"}
}

func TestRedisHistoryStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	historyStore := store.TestHistoryStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	sessionID := "session_abc_123"

	t.Run("Append and Get Roundtrip", func(t *testing.T) {
		err := historyStore.AppendTurns(ctx, sessionID,
			newTurn(chatModel.RoleUser, "what is an invoice?"),
			newTurn(chatModel.RoleAssistant, "a bill for goods or services"),
		)
		if err != nil {
			t.Fatalf("AppendTurns failed: %v", err)
		}

		turns, err := historyStore.GetHistory(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if len(turns) != 2 {
			t.Fatalf("got %d turns, want 2", len(turns))
		}
		if turns[0].Role != chatModel.RoleUser || turns[1].Role != chatModel.RoleAssistant {
			t.Errorf("turn order wrong: %v then %v", turns[0].Role, turns[1].Role)
		}
		if turns[1].Content != "a bill for goods or services" {
			t.Errorf("Data mismatch! Got %s", turns[1].Content)
		}
	})

	t.Run("Append Nothing Is NoOp", func(t *testing.T) {
		if err := historyStore.AppendTurns(ctx, sessionID); err != nil {
			t.Fatalf("empty AppendTurns failed: %v", err)
		}
	})

	t.Run("Clear History", func(t *testing.T) {
		if err := historyStore.ClearHistory(ctx, sessionID); err != nil {
			t.Fatalf("ClearHistory failed: %v", err)
		}
		if mr.Exists(sessionID) {
			t.Error("history key still exists in Redis after ClearHistory")
		}
		turns, err := historyStore.GetHistory(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetHistory after clear failed: %v", err)
		}
		if len(turns) != 0 {
			t.Errorf("got %d turns after clear, want 0", len(turns))
		}
	})
}

func TestRedisHistoryStore_CapsOldestFirst(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	historyStore := store.TestHistoryStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "cap-trace")
	sessionID := "session_capped"

	total := config.HistoryMaxTurns + 10
	for i := 0; i < total; i++ {
		err := historyStore.AppendTurns(ctx, sessionID, newTurn(chatModel.RoleUser, fmt.Sprintf("turn %d", i)))
		if err != nil {
			t.Fatalf("AppendTurns %d failed: %v", i, err)
		}
	}

	turns, err := historyStore.GetHistory(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(turns) != config.HistoryMaxTurns {
		t.Fatalf("got %d turns, want cap %d", len(turns), config.HistoryMaxTurns)
	}
	// the 10 oldest must have been evicted
	if turns[0].Content != "turn 10" {
		t.Errorf("oldest surviving turn got %q, want %q", turns[0].Content, "turn 10")
	}
	if turns[len(turns)-1].Content != fmt.Sprintf("turn %d", total-1) {
		t.Errorf("newest turn got %q, want %q", turns[len(turns)-1].Content, fmt.Sprintf("turn %d", total-1))
	}
}

func TestInMemoryHistoryStore(t *testing.T) {
	historyStore := store.InitInMemoryHistoryStore()
	ctx := context.Background()
	sessionID := "mem_session"

	t.Run("Roundtrip", func(t *testing.T) {
		err := historyStore.AppendTurns(ctx, sessionID,
			newTurn(chatModel.RoleUser, "hello"),
			newTurn(chatModel.RoleAssistant, "hi there"),
		)
		if err != nil {
			t.Fatalf("AppendTurns failed: %v", err)
		}
		turns, _ := historyStore.GetHistory(ctx, sessionID)
		if len(turns) != 2 {
			t.Fatalf("got %d turns, want 2", len(turns))
		}
	})

	t.Run("Caps Oldest First", func(t *testing.T) {
		historyStore.ClearHistory(ctx, sessionID)
		for i := 0; i < config.HistoryMaxTurns+5; i++ {
			historyStore.AppendTurns(ctx, sessionID, newTurn(chatModel.RoleUser, fmt.Sprintf("turn %d", i)))
		}
		turns, _ := historyStore.GetHistory(ctx, sessionID)
		if len(turns) != config.HistoryMaxTurns {
			t.Fatalf("got %d turns, want cap %d", len(turns), config.HistoryMaxTurns)
		}
		if turns[0].Content != "turn 5" {
			t.Errorf("oldest surviving turn got %q, want %q", turns[0].Content, "turn 5")
		}
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		historyStore.AppendTurns(ctx, "other_session", newTurn(chatModel.RoleUser, "separate"))
		turns, _ := historyStore.GetHistory(ctx, "other_session")
		if len(turns) != 1 {
			t.Errorf("got %d turns for other session, want 1", len(turns))
		}
	})

	t.Run("Returned Slice Is A Copy", func(t *testing.T) {
		historyStore.ClearHistory(ctx, sessionID)
		historyStore.AppendTurns(ctx, sessionID, newTurn(chatModel.RoleUser, "original"))
		turns, _ := historyStore.GetHistory(ctx, sessionID)
		turns[0].Content = "mutated"
		fresh, _ := historyStore.GetHistory(ctx, sessionID)
		if fresh[0].Content != "original" {
			t.Error("mutating the returned history leaked into the store")
		}
	})
}
