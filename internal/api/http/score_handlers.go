package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	authmw "github.com/trashquiz/trashquiz/internal/auth/middleware"
	"github.com/trashquiz/trashquiz/internal/quiz"
)

// MyScoreHandler reads the caller's lifetime score.
func MyScoreHandler(stores Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		score, err := stores.For(sub).LifetimeScore(r.Context(), sub)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":        sub,
			"display_name":   authmw.DisplayNameFromContext(r.Context()),
			"lifetime_score": score,
		})
	}
}

// MyHistoryHandler lists the caller's answer history, newest first:
// GET /me/history?filter=all|correct|incorrect
func MyHistoryHandler(stores Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		filter := r.URL.Query().Get("filter")
		switch filter {
		case "", quiz.FilterAll, quiz.FilterCorrect, quiz.FilterIncorrect:
		default:
			http.Error(w, "bad filter", 400)
			return
		}
		recs, err := stores.For(sub).History(r.Context(), sub, filter)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if recs == nil {
			recs = []quiz.HistoryRecord{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"history": recs})
	}
}

// LeaderboardHandler serves the top lifetime scores. Guests never appear:
// only the durable store is consulted.
func LeaderboardHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		rows, err := store.Leaderboard(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []quiz.LeaderboardRow{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"leaderboard": rows})
	}
}
