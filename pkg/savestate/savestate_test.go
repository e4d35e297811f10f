package savestate

import "testing"

func TestGetMissingReturnsNotOK(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, _, ok := s.Get("some level text")
	if ok {
		t.Fatalf("expected no entry for an unsaved level")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	level := "Hexcells level v1\nT\nA\nI\n"
	if err := s.Put(level, "saved state text", 3); err != nil {
		t.Fatalf("Put: %v", err)
	}
	state, mistakes, ok := s.Get(level)
	if !ok {
		t.Fatalf("expected an entry after Put")
	}
	if state != "saved state text" || mistakes != 3 {
		t.Fatalf("got (%q, %d), want (%q, 3)", state, mistakes, "saved state text")
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	level := "level text"
	if err := s.Put(level, "first", 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(level, "second", 2); err != nil {
		t.Fatalf("Put: %v", err)
	}
	state, mistakes, ok := s.Get(level)
	if !ok || state != "second" || mistakes != 2 {
		t.Fatalf("got (%q, %d, %v), want (%q, 2, true)", state, mistakes, ok, "second")
	}
}

func TestDifferentLevelsGetDifferentKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Put("level A", "state A", 0); err != nil {
		t.Fatalf("Put A: %v", err)
	}
	if err := s.Put("level B", "state B", 0); err != nil {
		t.Fatalf("Put B: %v", err)
	}
	stateA, _, okA := s.Get("level A")
	stateB, _, okB := s.Get("level B")
	if !okA || !okB {
		t.Fatalf("expected both entries to be found")
	}
	if stateA == stateB {
		t.Fatalf("expected distinct levels to store distinct state")
	}
}
