package quiz

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is one answered question, append-only.
type HistoryRecord struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	ItemID       int    `json:"item_id"`
	ItemName     string `json:"item_name"`
	Cleanliness  string `json:"cleanliness,omitempty"`
	Shape        string `json:"shape,omitempty"`
	ChosenBin    string `json:"chosen_bin"`
	CorrectBin   string `json:"correct_bin"`
	Correct      bool   `json:"correct"`
	PointsGained int    `json:"points_gained"`
	CreatedAt    int64  `json:"created_at"`
}

// LeaderboardRow is one entry of the top-scores listing.
type LeaderboardRow struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	LifetimeScore int    `json:"lifetime_score"`
}

// History filters.
const (
	FilterAll       = "all"
	FilterCorrect   = "correct"
	FilterIncorrect = "incorrect"
)

var ErrUserNotFound = errors.New("user not found")

// Store persists lifetime scores and answer history. Calls from the quiz
// session are best-effort telemetry: failures are logged by the caller and
// never gate quiz progression.
type Store interface {
	// LifetimeScore reads the accumulated score, creating the user row on
	// first touch with score zero.
	LifetimeScore(ctx context.Context, userID string) (int, error)
	// AddScore adds delta to the lifetime score. Implementations prefer an
	// atomic increment and may fall back to read-then-write.
	AddScore(ctx context.Context, userID string, delta int) error
	AppendHistory(ctx context.Context, rec HistoryRecord) error
	// History lists records newest first, filtered by FilterAll/Correct/Incorrect.
	History(ctx context.Context, userID, filter string) ([]HistoryRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
}

// guestHistoryCap bounds per-user history in the local store, most recent
// first, matching the guest-mode cap of the web client.
const guestHistoryCap = 500

// MemoryStore is the local-only store used for guest identities and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	scores  map[string]int
	names   map[string]string
	history map[string][]HistoryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scores:  map[string]int{},
		names:   map[string]string{},
		history: map[string][]HistoryRecord{},
	}
}

func (m *MemoryStore) LifetimeScore(ctx context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[userID], nil
}

func (m *MemoryStore) AddScore(ctx context.Context, userID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[userID] += delta
	return nil
}

func (m *MemoryStore) AppendHistory(ctx context.Context, rec HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h := append([]HistoryRecord{rec}, m.history[rec.UserID]...)
	if len(h) > guestHistoryCap {
		h = h[:guestHistoryCap]
	}
	m.history[rec.UserID] = h
	return nil
}

func (m *MemoryStore) History(ctx context.Context, userID, filter string) ([]HistoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []HistoryRecord
	for _, rec := range m.history[userID] {
		if keepRecord(rec, filter) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MemoryStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make([]LeaderboardRow, 0, len(m.scores))
	for id, sc := range m.scores {
		name := m.names[id]
		if name == "" {
			name = id
		}
		rows = append(rows, LeaderboardRow{UserID: id, DisplayName: name, LifetimeScore: sc})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].LifetimeScore > rows[j].LifetimeScore })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func keepRecord(rec HistoryRecord, filter string) bool {
	switch filter {
	case FilterCorrect:
		return rec.Correct
	case FilterIncorrect:
		return !rec.Correct
	default:
		return true
	}
}
