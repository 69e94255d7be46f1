package knowledge

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

// Store is the process-wide local corpus. Append-only: no update or delete,
// insertion order is the only ordering. Appends are atomic with respect to
// concurrent readers.
type Store struct {
	mu     *sync.RWMutex
	docs   []chatModel.Document
	logger *logger_i.Logger
}

func NewStore() *Store {
	return &Store{
		mu:     new(sync.RWMutex),
		logger: logger_i.NewLogger("KnowledgeStore"),
	}
}

// Add appends a document and returns its logical id (store size minus one).
func (s *Store) Add(text string, source string, metadata map[string]any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, chatModel.Document{
		Content:  text,
		Source:   source,
		Metadata: metadata,
		AddedAt:  time.Now(),
	})
	id := len(s.docs) - 1
	s.logger.Debug("document added", "id", id, "source", source)
	return id
}

// Search returns documents whose lowercased content contains at least one
// query word, in insertion order, truncated to limit. A query that yields no
// tokens matches every document - the first limit docs are returned as-is.
func (s *Store) Search(query string, limit int) []chatModel.Document {
	if limit <= 0 {
		limit = config.LocalSearchLimit
	}
	words := Tokenize(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []chatModel.Document
	for _, doc := range s.docs {
		if len(results) == limit {
			break
		}
		if len(words) == 0 || containsAny(strings.ToLower(doc.Content), words) {
			results = append(results, doc)
		}
	}
	return results
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Tokenize lowercases the query and keeps words longer than 2 characters.
// Shared by the store, the retrieval merger and the session file matcher so
// all lexical paths agree on what a "word" is.
func Tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	var words []string
	for _, f := range fields {
		if len(f) > 2 {
			words = append(words, f)
		}
	}
	return words
}

func containsAny(content string, words []string) bool {
	for _, w := range words {
		if strings.Contains(content, w) {
			return true
		}
	}
	return false
}
