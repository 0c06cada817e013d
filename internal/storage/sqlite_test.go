package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestTopScoresOrdering(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200, 100} {
		if _, err := store.SaveScore("flappy", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("flappy_varied", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{200, 100, 100, 50}
	if len(scores) != len(want) {
		t.Fatalf("Expected %d scores, got %d", len(want), len(scores))
	}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[1].ID > scores[2].ID {
		t.Error("ties should list the earlier run first")
	}
	if scores[0].Player != LocalPlayer {
		t.Errorf("player = %q, expected %q", scores[0].Player, LocalPlayer)
	}

	top2, err := store.TopScores("flappy", 2)
	if err != nil || len(top2) != 2 {
		t.Errorf("TopScores(limit 2) = %d entries, err %v", len(top2), err)
	}
}

func TestSaveRunAndPlayerBest(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "flappy", Player: "alice", Score: 12, Ticks: 1800, Seed: 1},
		{GameID: "flappy", Player: "alice", Score: 7, Ticks: 900, Seed: 2},
		{GameID: "flappy", Player: "bob", Score: 30, Ticks: 4000, Seed: 3},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.PlayerBest("flappy", "alice")
	if err != nil || best != 12 {
		t.Errorf("PlayerBest(alice) = %d, %v", best, err)
	}
	best, err = store.PlayerBest("flappy", "carol")
	if err != nil || best != 0 {
		t.Errorf("PlayerBest(carol) = %d, %v", best, err)
	}

	top, _ := store.TopScores("flappy", 1)
	if top[0].Player != "bob" || top[0].Ticks != 4000 || top[0].Seed != 3 {
		t.Errorf("top run = %+v", top[0])
	}
}

func TestHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil || high != 0 {
		t.Fatalf("HighScore() on empty = %d, %v", high, err)
	}

	store.SaveScore("flappy", 100)
	store.SaveScore("flappy", 300)
	store.SaveScore("flappy_varied", 900)

	if high, _ := store.HighScore("flappy"); high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("flappy", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("flappy_varied"); high != 900 {
		t.Error("clearing one game must not touch another")
	}
}

func TestGetGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{GameID: "flappy", Score: 4, Ticks: 600})
	store.SaveRun(Run{GameID: "flappy", Score: 8, Ticks: 1200})

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 8 || stats.AvgScore != 6 || stats.TotalScore != 12 || stats.TotalTicks != 1800 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}
