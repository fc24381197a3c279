package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/typetris/internal/keys"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	session, err := store.BeginSession("fast", 42)
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	if session == "" {
		t.Fatal("empty session ID")
	}

	events := []TraceEvent{
		{Seq: 0, Key: "ctrl", Press: true},
		{Seq: 1, Key: "a", Press: true},
		{Seq: 2, Key: "a", Press: false},
		{Seq: 3, Key: "ctrl", Press: false},
	}
	if err := store.SaveEvents(session, events); err != nil {
		t.Fatalf("SaveEvents() failed: %v", err)
	}

	sessions, err := store.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	if sessions[0].ID != session || sessions[0].Preset != "fast" || sessions[0].Seed != 42 {
		t.Errorf("Unexpected session entry: %+v", sessions[0])
	}
	if sessions[0].Events != 4 {
		t.Errorf("Expected 4 events counted, got %d", sessions[0].Events)
	}

	got, err := store.SessionEvents(session)
	if err != nil {
		t.Fatalf("SessionEvents() failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(got))
	}
	if got[0].Key != "ctrl" || !got[0].Press {
		t.Errorf("Unexpected first event: %+v", got[0])
	}
	if got[3].Key != "ctrl" || got[3].Press {
		t.Errorf("Unexpected last event: %+v", got[3])
	}
}

func TestSaveEventsEmptyBatch(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if err := store.SaveEvents("nope", nil); err != nil {
		t.Errorf("Empty batch must be a no-op, got %v", err)
	}
}

// sink implements keys.Emitter and counts forwarded events.
type sink struct {
	count int
}

func (s *sink) Emit(keys.Event) { s.count++ }

func TestTraceEmitterRecordsAndForwards(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	next := &sink{}
	tr, err := NewTraceEmitter(next, store, "normal", 7)
	if err != nil {
		t.Fatalf("NewTraceEmitter() failed: %v", err)
	}

	tr.Emit(keys.Event{Key: keys.KeyX, Press: true})
	tr.Emit(keys.Event{Key: keys.KeyX, Press: false})
	tr.Emit(keys.Event{Key: keys.KeyEnter, Press: true})

	if next.count != 3 {
		t.Fatalf("Expected 3 forwarded events, got %d", next.count)
	}
	if err := tr.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	events, err := store.SessionEvents(tr.Session())
	if err != nil {
		t.Fatalf("SessionEvents() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 recorded events, got %d", len(events))
	}
	if events[0].Key != "x" || !events[0].Press {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[2].Key != "enter" {
		t.Errorf("Unexpected third event: %+v", events[2])
	}
	for i, ev := range events {
		if ev.Seq != i {
			t.Errorf("Event %d has seq %d", i, ev.Seq)
		}
	}
}

func TestTraceEmitterFlushesInBatches(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	tr, err := NewTraceEmitter(&sink{}, store, "normal", 7)
	if err != nil {
		t.Fatalf("NewTraceEmitter() failed: %v", err)
	}

	for i := 0; i < traceFlushBatch+5; i++ {
		tr.Emit(keys.Event{Key: keys.KeyDot, Press: i%2 == 0})
	}

	// the first batch must already be on disk without an explicit Flush
	events, err := store.SessionEvents(tr.Session())
	if err != nil {
		t.Fatalf("SessionEvents() failed: %v", err)
	}
	if len(events) != traceFlushBatch {
		t.Fatalf("Expected %d auto-flushed events, got %d", traceFlushBatch, len(events))
	}

	if err := tr.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	events, err = store.SessionEvents(tr.Session())
	if err != nil {
		t.Fatalf("SessionEvents() failed: %v", err)
	}
	if len(events) != traceFlushBatch+5 {
		t.Fatalf("Expected %d events after Flush, got %d", traceFlushBatch+5, len(events))
	}
}
