package quiz

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryStoreScores(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	score, err := m.LifetimeScore(ctx, "g1")
	if err != nil || score != 0 {
		t.Fatalf("fresh user score=%d err=%v", score, err)
	}
	if err := m.AddScore(ctx, "g1", 75); err != nil {
		t.Fatal(err)
	}
	if err := m.AddScore(ctx, "g1", -10); err != nil {
		t.Fatal(err)
	}
	score, _ = m.LifetimeScore(ctx, "g1")
	if score != 65 {
		t.Fatalf("score=%d want 65", score)
	}
}

func TestMemoryStoreHistoryFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for i := 0; i < 3; i++ {
		rec := HistoryRecord{
			UserID:    "g1",
			ItemName:  fmt.Sprintf("item-%d", i),
			Correct:   i%2 == 0,
			CreatedAt: int64(i + 1),
		}
		if err := m.AppendHistory(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := m.History(ctx, "g1", FilterAll)
	if len(all) != 3 {
		t.Fatalf("all=%d want 3", len(all))
	}
	// newest first
	if all[0].ItemName != "item-2" {
		t.Fatalf("order: first=%q want item-2", all[0].ItemName)
	}
	correct, _ := m.History(ctx, "g1", FilterCorrect)
	if len(correct) != 2 {
		t.Fatalf("correct=%d want 2", len(correct))
	}
	incorrect, _ := m.History(ctx, "g1", FilterIncorrect)
	if len(incorrect) != 1 {
		t.Fatalf("incorrect=%d want 1", len(incorrect))
	}
	if ids := all[0].ID; ids == "" {
		t.Fatal("missing generated record id")
	}
}

func TestMemoryStoreHistoryBounded(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for i := 0; i < guestHistoryCap+50; i++ {
		_ = m.AppendHistory(ctx, HistoryRecord{UserID: "g1", ItemName: fmt.Sprintf("item-%d", i)})
	}
	all, _ := m.History(ctx, "g1", FilterAll)
	if len(all) != guestHistoryCap {
		t.Fatalf("history len=%d want cap %d", len(all), guestHistoryCap)
	}
	// most recent survive
	if all[0].ItemName != fmt.Sprintf("item-%d", guestHistoryCap+49) {
		t.Fatalf("newest record evicted: %q", all[0].ItemName)
	}
}

func TestMemoryStoreLeaderboard(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_ = m.AddScore(ctx, "a", 10)
	_ = m.AddScore(ctx, "b", 30)
	_ = m.AddScore(ctx, "c", 20)

	rows, err := m.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].UserID != "b" || rows[1].UserID != "c" {
		t.Fatalf("leaderboard: %+v", rows)
	}
}
