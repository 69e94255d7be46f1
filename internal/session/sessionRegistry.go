package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/metrics"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

// Registry owns session lifecycle. The registry map and each session entry
// are locked separately: two requests for the same session id serialize
// their read-modify-write, requests for different ids never contend.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	logger   *logger_i.Logger
}

type entry struct {
	mu      sync.Mutex
	session chatModel.Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		logger:   logger_i.NewLogger("SessionRegistry"),
	}
}

// GetOrCreate returns a snapshot of the session, creating it with empty
// files and the default language if the id is unknown.
func (r *Registry) GetOrCreate(sessionId string) chatModel.Session {
	e := r.getOrCreateEntry(sessionId)
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.session)
}

// AppendFiles extends the session's file sequence and appends, for each new
// file that has extracted text, a filename/type/size/content header block to
// the aggregated context. Blocks are never reordered or deduplicated.
// An empty file list is a no-op and must not touch LastUpdated.
func (r *Registry) AppendFiles(sessionId string, files []chatModel.FileContext) {
	if len(files) == 0 {
		return
	}
	e := r.getOrCreateEntry(sessionId)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Files = append(e.session.Files, files...)
	var sb strings.Builder
	sb.WriteString(e.session.AggregatedFileContext)
	for _, f := range files {
		if f.ExtractedText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("File: %s\nType: %s/%s\nSize: %d bytes\n%s",
			f.Filename, f.MimeClass, f.MimeSubtype, f.SizeBytes, f.ExtractedText))
	}
	e.session.AggregatedFileContext = sb.String()
	e.session.LastUpdated = time.Now()
	r.logger.Debug("files appended", "sessionId", sessionId, "count", len(files))
}

func (r *Registry) SetLanguage(sessionId string, lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	e := r.getOrCreateEntry(sessionId)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Language != lang {
		e.session.Language = lang
		e.session.LastUpdated = time.Now()
	}
}

// Snapshot returns a copy of the session without creating it.
func (r *Registry) Snapshot(sessionId string) (chatModel.Session, bool) {
	r.mu.RLock()
	e, ok := r.sessions[sessionId]
	r.mu.RUnlock()
	if !ok {
		return chatModel.Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.session), true
}

// Evict irreversibly removes the session. The caller is responsible for
// clearing the conversation log, which lives in the history store.
func (r *Registry) Evict(sessionId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionId]; !ok {
		return false
	}
	delete(r.sessions, sessionId)
	metrics.DecrementActiveSessions()
	r.logger.Info("session evicted", "sessionId", sessionId)
	return true
}

// EvictIdle removes sessions whose LastUpdated is older than maxAge and
// returns their ids. The core contract has no TTL; callers that want one
// run this on a ticker.
func (r *Registry) EvictIdle(maxAge time.Duration) []string {
	cutoff := time.Now().Add(-maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []string
	for id, e := range r.sessions {
		e.mu.Lock()
		stale := e.session.LastUpdated.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(r.sessions, id)
			metrics.DecrementActiveSessions()
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) getOrCreateEntry(sessionId string) *entry {
	r.mu.RLock()
	e, ok := r.sessions[sessionId]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.sessions[sessionId]; ok {
		return e
	}
	e = &entry{session: chatModel.Session{
		Id:          sessionId,
		Language:    config.DefaultLanguage,
		LastUpdated: time.Now(),
	}}
	r.sessions[sessionId] = e
	metrics.IncrementActiveSessions()
	r.logger.Debug("session created", "sessionId", sessionId)
	return e
}

func snapshot(s chatModel.Session) chatModel.Session {
	copied := s
	copied.Files = append([]chatModel.FileContext(nil), s.Files...)
	return copied
}
