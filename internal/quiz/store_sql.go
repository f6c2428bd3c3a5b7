package quiz

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// SQLStore persists scores and history in the shared relational schema
// (sqlite or postgres, see internal/db).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) LifetimeScore(ctx context.Context, userID string) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT lifetime_score FROM users WHERE id=$1`, userID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.ensureUser(ctx, userID); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return score, err
}

// AddScore increments atomically in SQL. If the single-statement path fails
// it falls back to read-then-write; the race window is acceptable for
// best-effort telemetry.
func (s *SQLStore) AddScore(ctx context.Context, userID string, delta int) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET lifetime_score = lifetime_score + $1 WHERE id=$2`, delta, userID)
	if err == nil {
		return nil
	}
	log.Printf("quiz: atomic score increment failed, falling back: %v", err)
	var prev int
	if err := s.db.QueryRowContext(ctx, `SELECT lifetime_score FROM users WHERE id=$1`, userID).Scan(&prev); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET lifetime_score=$1 WHERE id=$2`, prev+delta, userID)
	return err
}

func (s *SQLStore) AppendHistory(ctx context.Context, rec HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (id,user_id,item_id,item_name,cleanliness,shape,chosen_bin,correct_bin,correct,points_gained,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID, rec.UserID, rec.ItemID, rec.ItemName, rec.Cleanliness, rec.Shape,
		rec.ChosenBin, rec.CorrectBin, rec.Correct, rec.PointsGained, rec.CreatedAt)
	return err
}

func (s *SQLStore) History(ctx context.Context, userID, filter string) ([]HistoryRecord, error) {
	q := `SELECT id,user_id,item_id,item_name,cleanliness,shape,chosen_bin,correct_bin,correct,points_gained,created_at
	      FROM history WHERE user_id=$1`
	switch filter {
	case FilterCorrect:
		q += ` AND correct`
	case FilterIncorrect:
		q += ` AND NOT correct`
	}
	q += ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ItemID, &rec.ItemName, &rec.Cleanliness,
			&rec.Shape, &rec.ChosenBin, &rec.CorrectBin, &rec.Correct, &rec.PointsGained, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(NULLIF(display_name,''), username), lifetime_score
		 FROM users ORDER BY lifetime_score DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.UserID, &r.DisplayName, &r.LifetimeScore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) ensureUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, display_name, lifetime_score, created_at)
		 VALUES ($1,$2,'',0,$3) ON CONFLICT (id) DO NOTHING`,
		userID, userID, time.Now().Unix())
	return err
}
