package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("bubblepop", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveLevelScore("bubblepop_endless", "", 500); err != nil {
		t.Fatalf("SaveLevelScore() failed: %v", err)
	}

	scores, err := store.TopScores("bubblepop", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	endless, err := store.TopScores("bubblepop_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreLevelScore(t *testing.T) {
	store := openTest(t)

	if _, err := store.SaveLevelScore("bubblepop", "lvl03", 420); err != nil {
		t.Fatalf("SaveLevelScore() failed: %v", err)
	}
	scores, err := store.AllScores("bubblepop")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Level != "lvl03" {
		t.Errorf("AllScores() = %+v, expected one lvl03 entry", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTest(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTest(t)

	high, err := store.HighScore("bubblepop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("bubblepop", 100)
	store.SaveScore("bubblepop", 300)
	store.SaveScore("bubblepop", 200)

	high, err = store.HighScore("bubblepop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	store.SaveLevelScore("bubblepop", "lvl02", 50)
	high, err = store.LevelHighScore("bubblepop", "lvl02")
	if err != nil {
		t.Fatalf("LevelHighScore() failed: %v", err)
	}
	if high != 50 {
		t.Errorf("LevelHighScore() = %d, expected 50", high)
	}
	if high, _ = store.LevelHighScore("bubblepop", "lvl09"); high != 0 {
		t.Errorf("LevelHighScore() = %d for unplayed level, expected 0", high)
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTest(t)

	session := NewSessionID()
	other := NewSessionID()
	if session == other || len(session) != 36 {
		t.Fatalf("NewSessionID() = %q, %q, expected distinct uuids", session, other)
	}

	rounds := []Round{
		{SessionID: session, GameID: "bubblepop", Level: "lvl01", Round: 1, Outcome: "attached", Booster: "standard", Popped: 3, Score: 30},
		{SessionID: session, GameID: "bubblepop", Level: "lvl01", Round: 2, Outcome: "discarded", Booster: "standard", Score: 30},
		{SessionID: session, GameID: "bubblepop", Level: "lvl01", Round: 3, Outcome: "attached", Booster: "color_match", Popped: 4, Dropped: 2, Score: 130},
		{SessionID: other, GameID: "bubblepop", Level: "lvl01", Round: 1, Outcome: "attached", Booster: "standard", Score: 0},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	got, err := store.SessionRounds(session)
	if err != nil {
		t.Fatalf("SessionRounds() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("SessionRounds() = %d rounds, expected 3", len(got))
	}
	for i, r := range got {
		if r.Round != i+1 {
			t.Errorf("round %d has number %d", i, r.Round)
		}
	}
	if got[2].Booster != "color_match" || got[2].Dropped != 2 {
		t.Errorf("got[2] = %+v", got[2])
	}

	sessions, err := store.RecentSessions("bubblepop", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("RecentSessions() = %d, expected 2", len(sessions))
	}
	// The other session saved last.
	if sessions[0].SessionID != other {
		t.Errorf("sessions[0] = %s, expected the latest session", sessions[0].SessionID)
	}
	s := sessions[1]
	if s.Rounds != 3 || s.Popped != 7 || s.Dropped != 2 || s.Score != 130 {
		t.Errorf("summary = %+v, expected 3 rounds, 7 popped, 2 dropped, score 130", s)
	}
}

func TestStoreRoundWithoutSession(t *testing.T) {
	store := openTest(t)

	if _, err := store.SaveRound(Round{GameID: "bubblepop", Round: 1, Outcome: "attached"}); err == nil {
		t.Error("SaveRound() without session should fail")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTest(t)

	store.SaveScore("bubblepop", 100)
	store.SaveScore("bubblepop", 200)
	store.SaveScore("bubblepop_endless", 300)
	store.SaveRound(Round{SessionID: NewSessionID(), GameID: "bubblepop", Round: 1, Outcome: "attached"})

	if err := store.ClearScores("bubblepop"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("bubblepop", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if sessions, _ := store.RecentSessions("bubblepop", 10); len(sessions) != 0 {
		t.Errorf("Expected no sessions after clear, got %d", len(sessions))
	}
	if scores, _ := store.TopScores("bubblepop_endless", 10); len(scores) != 1 {
		t.Error("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTest(t)

	store.SaveScore("bubblepop", 100)
	store.SaveScore("bubblepop", 300)

	stats, err := store.GetGameStats("bubblepop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
}
