package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("tanks", 700, 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tanks")
	if err != nil || high != 700 {
		t.Errorf("HighScore() = %d, %v; expected 700", high, err)
	}
}

func TestStoreSaveScoreAssignsRunID(t *testing.T) {
	store := openTestStore(t)

	a, err := store.SaveScore("tanks", 100, 1)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	b, err := store.SaveScore("tanks", 100, 1)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", a.RunID, err)
	}
	if a.RunID == b.RunID {
		t.Error("runs should get distinct IDs")
	}
	if a.ID == 0 || b.ID == a.ID {
		t.Errorf("unexpected row IDs %d, %d", a.ID, b.ID)
	}

	got, err := store.ScoreByRunID(b.RunID)
	if err != nil {
		t.Fatalf("ScoreByRunID() failed: %v", err)
	}
	if got == nil || got.ID != b.ID || got.Score != 100 || got.Level != 1 {
		t.Errorf("ScoreByRunID() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestStoreScoreByRunIDUnknown(t *testing.T) {
	store := openTestStore(t)

	got, err := store.ScoreByRunID(uuid.NewString())
	if err != nil {
		t.Fatalf("ScoreByRunID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown run, got %+v", got)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		game         string
		score, level int
	}{
		{"tanks", 100, 1},
		{"tanks", 50, 1},
		{"tanks", 200, 2},
		{"tanks", 200, 3},
		{"other", 500, 5},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.game, r.score, r.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("tanks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	want := []struct{ score, level int }{{200, 3}, {200, 2}, {100, 1}, {50, 1}}
	for i, w := range want {
		if scores[i].Score != w.score || scores[i].Level != w.level {
			t.Errorf("scores[%d] = %d/L%d, expected %d/L%d",
				i, scores[i].Score, scores[i].Level, w.score, w.level)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("tanks", (i+1)*100, 1)
	}

	scores, err := store.TopScores("tanks", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	for range 10 {
		store.SaveScore("tanks", 1, 1)
	}
	scores, _ = store.TopScores("tanks", 0)
	if len(scores) != 10 {
		t.Errorf("default limit returned %d scores", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("tanks", 100, 1)
	store.SaveScore("tanks", 300, 2)
	store.SaveScore("tanks", 200, 2)

	high, err = store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tanks", 100, 1)
	store.SaveScore("tanks", 200, 1)
	store.SaveScore("other", 300, 1)

	if err := store.ClearScores("tanks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.AllScores("tanks"); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.AllScores("other"); len(scores) != 1 {
		t.Error("Other games should not be affected by clearing")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		store.SaveScore("tanks", i*10, 1)
	}

	scores, err := store.AllScores("tanks")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tanks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("tanks", 100, 2)
	store.SaveScore("tanks", 300, 4)

	stats, err := store.GetGameStats("tanks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestLevel != 4 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("avg/total = %v/%v", stats.AvgScore, stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestParseTime(t *testing.T) {
	if parseTime("2026-01-02 03:04:05").IsZero() {
		t.Error("SQLite timestamp should parse")
	}
	if !parseTime("garbage").IsZero() || !parseTime(nil).IsZero() {
		t.Error("unparseable values should give the zero time")
	}
}
