package http

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	authmw "github.com/trashquiz/trashquiz/internal/auth/middleware"
	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/quiz"
	"github.com/trashquiz/trashquiz/internal/sorting"
)

// Stores routes persistence by identity: signed-in users hit the SQL store,
// guests the local bounded store.
type Stores struct {
	User  quiz.Store
	Guest quiz.Store
}

func (s Stores) For(sub string) quiz.Store {
	if authmw.IsGuest(sub) {
		return s.Guest
	}
	return s.User
}

// SessionManager owns one quiz session per identity. Sessions are created
// lazily and torn down on delete.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*quiz.Session

	items        []catalog.Item
	stores       Stores
	advanceDelay time.Duration
	tickEvery    time.Duration
}

func NewSessionManager(items []catalog.Item, stores Stores, advanceDelay, tickEvery time.Duration) *SessionManager {
	return &SessionManager{
		sessions:     map[string]*quiz.Session{},
		items:        items,
		stores:       stores,
		advanceDelay: advanceDelay,
		tickEvery:    tickEvery,
	}
}

func (m *SessionManager) session(sub string) *quiz.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sub]; ok {
		return s
	}
	s := quiz.NewSession(sub, m.items,
		sorting.NewSampler(rand.NewSource(time.Now().UnixNano())),
		m.stores.For(sub),
		quiz.Options{AdvanceDelay: m.advanceDelay, TickEvery: m.tickEvery})
	m.sessions[sub] = s
	return s
}

// Drop closes and removes the session for an identity.
func (m *SessionManager) Drop(sub string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sub]; ok {
		s.Close()
		delete(m.sessions, sub)
	}
}

// StartQuizHandler begins (or restarts) the caller's quiz with a fresh
// random question.
func StartQuizHandler(m *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := m.session(authmw.SubjectFromContext(r.Context()))
		if err := s.Start(); err != nil {
			if errors.Is(err, quiz.ErrEmptyCatalog) {
				http.Error(w, "no items available", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(s.Snapshot())
	}
}

// AnswerQuizHandler submits a bin choice. Answers while the session is
// locked are benign no-ops returning the current snapshot unchanged.
func AnswerQuizHandler(m *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Bin string `json:"bin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Bin == "" {
			http.Error(w, "bin required", 400)
			return
		}
		s := m.session(authmw.SubjectFromContext(r.Context()))
		res, err := s.SubmitAnswer(req.Bin)
		if err != nil {
			if errors.Is(err, quiz.ErrLocked) {
				_ = json.NewEncoder(w).Encode(s.Snapshot())
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// QuizStateHandler reports the live snapshot (question, preview points,
// countdown) for polling clients.
func QuizStateHandler(m *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := m.session(authmw.SubjectFromContext(r.Context()))
		_ = json.NewEncoder(w).Encode(s.Snapshot())
	}
}

// StopQuizHandler tears the caller's session down.
func StopQuizHandler(m *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.Drop(authmw.SubjectFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}
