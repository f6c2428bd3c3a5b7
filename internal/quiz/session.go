// Package quiz implements the timed quiz session and its score/history
// persistence.
package quiz

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/scoring"
	"github.com/trashquiz/trashquiz/internal/sorting"
)

// State of the quiz cycle. Idle before the first question, Presenting while
// a question is answerable, Locked between an answer and the next question.
type State string

const (
	StateIdle       State = "idle"
	StatePresenting State = "presenting"
	StateLocked     State = "locked"
)

var (
	ErrEmptyCatalog = errors.New("no items available")
	// ErrLocked is returned for answers that arrive while the session is
	// not presenting. Callers treat it as a benign no-op.
	ErrLocked = errors.New("answer already submitted")
)

// Question is one quiz round: an item plus the randomized conditions it was
// presented under and the bin those exact conditions resolve to. Ephemeral,
// regenerated per round, never persisted.
type Question struct {
	Item        catalog.Item `json:"item"`
	Cleanliness string       `json:"cleanliness,omitempty"`
	Shape       string       `json:"shape,omitempty"`
	CorrectBin  sorting.Bin  `json:"correct_bin"`
}

// AnswerResult is what SubmitAnswer reports back for rendering.
type AnswerResult struct {
	Correct      bool          `json:"correct"`
	Points       int           `json:"points"`
	CorrectBin   sorting.Bin   `json:"correct_bin"`
	SessionScore int           `json:"session_score"`
	Elapsed      time.Duration `json:"-"`
}

// Snapshot is a read-only view of the session for display.
type Snapshot struct {
	State         State     `json:"state"`
	Question      *Question `json:"question,omitempty"`
	SessionScore  int       `json:"session_score"`
	PreviewPoints int       `json:"preview_points"`
	TimeLeftMS    int64     `json:"time_left_ms"`
}

// Scheduler runs fn once after d and returns a cancel func. Injectable so
// tests can fire advances synchronously.
type Scheduler func(d time.Duration, fn func()) (cancel func())

func afterFuncScheduler(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Options tune a session. Zero values get defaults.
type Options struct {
	Clock        func() time.Time
	Schedule     Scheduler
	AdvanceDelay time.Duration // result banner dwell before the next question
	TickEvery    time.Duration // preview tick interval
	OnTick       func(previewPoints int, timeLeft time.Duration)
}

// Session drives ask -> answer -> score -> advance cycles for one identity.
// All state is owned by the session instance; concurrent sessions are fully
// independent.
type Session struct {
	mu sync.Mutex

	userID  string
	items   []catalog.Item
	sampler *sorting.Sampler
	store   Store

	clock        func() time.Time
	schedule     Scheduler
	advanceDelay time.Duration
	tickEvery    time.Duration
	onTick       func(previewPoints int, timeLeft time.Duration)

	state         State
	current       *Question
	questionStart time.Time
	score         int

	cancelAdvance func()
	tickStop      chan struct{}
	closed        bool
}

// NewSession builds an Idle session over the flattened catalog items.
// store may be nil for a purely local session (no persistence events).
func NewSession(userID string, items []catalog.Item, sampler *sorting.Sampler, store Store, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Schedule == nil {
		opts.Schedule = afterFuncScheduler
	}
	if opts.AdvanceDelay == 0 {
		opts.AdvanceDelay = 1200 * time.Millisecond
	}
	if opts.TickEvery == 0 {
		opts.TickEvery = 100 * time.Millisecond
	}
	return &Session{
		userID:       userID,
		items:        items,
		sampler:      sampler,
		store:        store,
		clock:        opts.Clock,
		schedule:     opts.Schedule,
		advanceDelay: opts.AdvanceDelay,
		tickEvery:    opts.TickEvery,
		onTick:       opts.OnTick,
		state:        StateIdle,
	}
}

// Start picks a random item, derives the next question, resets the clock,
// and transitions to Presenting. Any pending auto-advance or preview tick
// from a previous question is cancelled first.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *Session) startLocked() error {
	if s.closed {
		return nil
	}
	item, ok := s.sampler.PickItem(s.items)
	if !ok {
		s.state = StateIdle
		s.current = nil
		return ErrEmptyCatalog
	}
	if s.cancelAdvance != nil {
		s.cancelAdvance()
		s.cancelAdvance = nil
	}
	// One condition snapshot feeds both the presented question and its
	// answer key; they must never diverge.
	cleanliness, shape := s.sampler.Sample(item)
	s.current = &Question{
		Item:        item,
		Cleanliness: cleanliness,
		Shape:       shape,
		CorrectBin:  sorting.Classify(item, cleanliness, shape),
	}
	s.questionStart = s.clock()
	s.state = StatePresenting
	s.restartTickLocked()
	return nil
}

// SubmitAnswer scores choice against the current question. Valid only while
// Presenting: repeated submissions hit the Locked state and return ErrLocked
// without touching the score. The lifetime-score increment and history
// append run detached; their failure is logged and never blocks the session.
func (s *Session) SubmitAnswer(choice string) (AnswerResult, error) {
	s.mu.Lock()
	if s.state != StatePresenting || s.current == nil {
		s.mu.Unlock()
		return AnswerResult{}, ErrLocked
	}
	s.state = StateLocked
	q := *s.current
	elapsed := s.clock().Sub(s.questionStart)
	s.stopTickLocked()

	correct := sorting.NormalizeBin(choice) == sorting.NormalizeBin(string(q.CorrectBin))
	points := scoring.Points(elapsed, correct)
	s.score += points
	res := AnswerResult{
		Correct:      correct,
		Points:       points,
		CorrectBin:   q.CorrectBin,
		SessionScore: s.score,
		Elapsed:      elapsed,
	}

	rec := HistoryRecord{
		UserID:       s.userID,
		ItemID:       q.Item.ID,
		ItemName:     q.Item.Name,
		Cleanliness:  q.Cleanliness,
		Shape:        q.Shape,
		ChosenBin:    string(sorting.NormalizeBin(choice)),
		CorrectBin:   string(q.CorrectBin),
		Correct:      correct,
		PointsGained: points,
		CreatedAt:    s.clock().Unix(),
	}

	// Fires exactly once per answered question.
	s.cancelAdvance = s.schedule(s.advanceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == StateLocked {
			_ = s.startLocked()
		}
	})
	s.mu.Unlock()

	if s.store != nil {
		go s.persist(rec)
	}
	return res, nil
}

func (s *Session) persist(rec HistoryRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.AddScore(ctx, s.userID, rec.PointsGained); err != nil {
		log.Printf("quiz: lifetime score update failed for %s: %v", s.userID, err)
	}
	if err := s.store.AppendHistory(ctx, rec); err != nil {
		log.Printf("quiz: history append failed for %s: %v", s.userID, err)
	}
}

// Snapshot reports the current state for display. The preview points and
// countdown are computed from the live clock with the same tier table used
// for final scoring.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state, SessionScore: s.score}
	if s.current != nil {
		q := *s.current
		snap.Question = &q
		elapsed := s.clock().Sub(s.questionStart)
		snap.PreviewPoints = scoring.Preview(elapsed)
		snap.TimeLeftMS = scoring.TimeLeft(elapsed).Milliseconds()
	}
	return snap
}

// Score returns the session-local accumulated score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Close tears the session down, cancelling any pending advance and the
// preview tick. Further operations are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.state = StateIdle
	s.current = nil
	if s.cancelAdvance != nil {
		s.cancelAdvance()
		s.cancelAdvance = nil
	}
	s.stopTickLocked()
}

func (s *Session) restartTickLocked() {
	s.stopTickLocked()
	if s.onTick == nil {
		return
	}
	stop := make(chan struct{})
	s.tickStop = stop
	start := s.questionStart
	go func() {
		t := time.NewTicker(s.tickEvery)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-t.C:
				elapsed := now.Sub(start)
				s.onTick(scoring.Preview(elapsed), scoring.TimeLeft(elapsed))
			}
		}
	}()
}

func (s *Session) stopTickLocked() {
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}
