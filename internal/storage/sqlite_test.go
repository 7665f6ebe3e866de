package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func mustSave(t *testing.T, store *Store, r Result) int64 {
	t.Helper()
	id, err := store.SaveScore(r)
	if err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", r, err)
	}
	return id
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
		t.Fatal(err)
	}
	mustSave(t, store, Result{GameID: "snake", Score: 4})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if high, _ := store.HighScore("snake"); high != 4 {
		t.Errorf("HighScore after reopen = %d, expected 4", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mustSave(t, store, Result{GameID: "snake", SessionID: "s1", Score: 10, Steps: 300, Cause: "wall", At: at})
	mustSave(t, store, Result{GameID: "snake", SessionID: "s1", Score: 5, Steps: 90, Cause: "self", At: at})
	mustSave(t, store, Result{GameID: "snake", SessionID: "s2", Score: 20, Steps: 900, Cause: "wall", At: at})
	mustSave(t, store, Result{GameID: "snake_mini", SessionID: "s2", Score: 50, Steps: 1200, Cause: "cleared", At: at})

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{20, 10, 5}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}

	top := scores[0]
	if top.SessionID != "s2" || top.Steps != 900 || top.Cause != "wall" {
		t.Errorf("top entry = %+v", top)
	}
	if !top.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, expected %v", top.CreatedAt, at)
	}
}

func TestStoreSaveRejectsEmptyGame(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(Result{Score: 3}); err == nil {
		t.Error("SaveScore without game id should fail")
	}
}

func TestStoreSaveDefaultsTimestamp(t *testing.T) {
	store := openTestStore(t)
	before := time.Now().Add(-time.Second)
	mustSave(t, store, Result{GameID: "snake", Score: 2})

	scores, _ := store.TopScores("snake", 1)
	if len(scores) != 1 || scores[0].CreatedAt.Before(before.Truncate(time.Second)) {
		t.Errorf("expected a current timestamp, got %+v", scores)
	}
}

func TestStoreTopScoresOrdering(t *testing.T) {
	store := openTestStore(t)

	// Equal lengths rank by fewer steps, then by insertion order
	first := mustSave(t, store, Result{GameID: "snake", Score: 7, Steps: 500})
	second := mustSave(t, store, Result{GameID: "snake", Score: 7, Steps: 500})
	quick := mustSave(t, store, Result{GameID: "snake", Score: 7, Steps: 100})

	scores, _ := store.TopScores("snake", 10)
	got := []int64{scores[0].ID, scores[1].ID, scores[2].ID}
	want := []int64{quick, first, second}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, expected %v", got, want)
			break
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		mustSave(t, store, Result{GameID: "snake", Score: i + 1})
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10}, // default
		{-1, 10},
		{50, 20},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("snake", tt.limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(limit=%d) returned %d, expected %d", tt.limit, len(scores), tt.want)
		}
	}

	scores, _ := store.TopScores("snake", 5)
	if scores[0].Score != 20 || scores[4].Score != 16 {
		t.Errorf("top five = %d..%d, expected 20..16", scores[0].Score, scores[4].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Empty game should have high score 0, got %d", high)
	}

	mustSave(t, store, Result{GameID: "snake", Score: 3})
	mustSave(t, store, Result{GameID: "snake", Score: 9})
	mustSave(t, store, Result{GameID: "snake", Score: 4})

	if high, _ := store.HighScore("snake"); high != 9 {
		t.Errorf("HighScore() = %d, expected 9", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Result{GameID: "snake", Score: 3})
	mustSave(t, store, Result{GameID: "snake_mini", Score: 5})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("snake_mini", 10); len(scores) != 1 {
		t.Error("other games should not be affected by clearing")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		mustSave(t, store, Result{GameID: "snake", Score: i})
	}

	scores, err := store.AllScores("snake")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreSessionScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Result{GameID: "snake", SessionID: "abc", Score: 8})
	mustSave(t, store, Result{GameID: "snake", SessionID: "other", Score: 9})
	mustSave(t, store, Result{GameID: "snake_mini", SessionID: "abc", Score: 2})

	scores, err := store.SessionScores("abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 || scores[0].Score != 8 || scores[1].GameID != "snake_mini" {
		t.Errorf("session scores = %+v", scores)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	last := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)

	empty, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, Result{GameID: "snake", Score: 4, Steps: 100, Cause: "wall", At: last.Add(-time.Hour)})
	mustSave(t, store, Result{GameID: "snake", Score: 8, Steps: 300, Cause: "cleared", At: last})
	mustSave(t, store, Result{GameID: "snake_mini", Score: 1, Steps: 10, Cause: "self", At: last})

	st, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatal(err)
	}
	if st.GameID != "snake" || st.GamesCount != 2 || st.HighScore != 8 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgScore != 6 || st.TotalSteps != 400 || st.Wins != 1 {
		t.Errorf("stats aggregates = %+v", st)
	}
	if !st.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", st.LastPlayed, last)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all["snake_mini"].GamesCount != 1 || all["snake"].Wins != 1 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/deep/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "scores.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}
