package checkpoint

import (
	"context"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "hansard")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no checkpoint before save")
	}

	want := Checkpoint{
		Cursor:    "https://api.openparliament.ca/debates/?offset=240",
		UpdatedAt: time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
	}
	if err := s.Save(ctx, "hansard", want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Load(ctx, "hansard")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected checkpoint after save")
	}
	if got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := Checkpoint{Cursor: "page-1", UpdatedAt: time.Unix(1700000000, 0).UTC()}
	second := Checkpoint{Cursor: "page-2", UpdatedAt: time.Unix(1700000600, 0).UTC()}

	if err := s.Save(ctx, "votes", first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "votes", second); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.Load(ctx, "votes")
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Errorf("loaded %+v, want %+v", got, second)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	s.Save(ctx, "committees", Checkpoint{Cursor: "page-4", UpdatedAt: time.Unix(1700000000, 0).UTC()})
	if err := s.Clear(ctx, "committees"); err != nil {
		t.Fatal(err)
	}

	_, ok, _ := s.Load(ctx, "committees")
	if ok {
		t.Error("expected no checkpoint after clear")
	}
}
