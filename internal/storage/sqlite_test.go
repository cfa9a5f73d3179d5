package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	sessions := []Session{
		{Strategy: "fixed", Duration: 10, Frames: 600, FixedUpdates: 600, AvgFPS: 60, MinFPS: 58, MaxFPS: 61},
		{Strategy: "fixed", Duration: 5, Frames: 290, FixedUpdates: 300, AvgFPS: 58, MinFPS: 40, MaxFPS: 60, DroppedTime: 0.2},
		{Strategy: "variable", Duration: 10, Frames: 610, AvgFPS: 61, MinFPS: 59, MaxFPS: 62},
	}
	for _, sess := range sessions {
		if _, err := store.SaveSession(sess); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	recent, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("RecentSessions() returned %d sessions, want 3", len(recent))
	}
	// Newest first
	if recent[0].Strategy != "variable" {
		t.Errorf("newest session strategy = %q, want variable", recent[0].Strategy)
	}

	fixed, err := store.SessionsByStrategy("fixed", 10)
	if err != nil {
		t.Fatalf("SessionsByStrategy() failed: %v", err)
	}
	if len(fixed) != 2 {
		t.Errorf("SessionsByStrategy(fixed) returned %d, want 2", len(fixed))
	}
	for _, sess := range fixed {
		if sess.Strategy != "fixed" {
			t.Errorf("got strategy %q, want fixed", sess.Strategy)
		}
	}
}

func TestBestAvgFPS(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No sessions yet
	fps, err := store.BestAvgFPS("fixed")
	if err != nil {
		t.Fatalf("BestAvgFPS() failed: %v", err)
	}
	if fps != 0 {
		t.Errorf("BestAvgFPS() with no sessions = %v, want 0", fps)
	}

	store.SaveSession(Session{Strategy: "fixed", AvgFPS: 59.5})
	store.SaveSession(Session{Strategy: "fixed", AvgFPS: 60.2})
	store.SaveSession(Session{Strategy: "variable", AvgFPS: 120})

	fps, err = store.BestAvgFPS("fixed")
	if err != nil {
		t.Fatalf("BestAvgFPS() failed: %v", err)
	}
	if fps != 60.2 {
		t.Errorf("BestAvgFPS(fixed) = %v, want 60.2", fps)
	}
}

func TestClearSessions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveSession(Session{Strategy: "fixed", AvgFPS: 60})
	store.SaveSession(Session{Strategy: "variable", AvgFPS: 61})

	if err := store.ClearSessions("fixed"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	fixed, err := store.SessionsByStrategy("fixed", 10)
	if err != nil {
		t.Fatalf("SessionsByStrategy() failed: %v", err)
	}
	if len(fixed) != 0 {
		t.Errorf("expected no fixed sessions after clear, got %d", len(fixed))
	}

	variable, err := store.SessionsByStrategy("variable", 10)
	if err != nil {
		t.Fatalf("SessionsByStrategy() failed: %v", err)
	}
	if len(variable) != 1 {
		t.Errorf("variable sessions should be untouched, got %d", len(variable))
	}
}
