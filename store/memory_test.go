package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/warp/roi-engine/store"
)

func TestMemory_SaveGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	err := m.SaveScenario(ctx, store.ScenarioRecord{ID: "a", Name: "A", ConfigJSON: "{}"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err := m.GetScenario(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil || rec.Name != "A" {
		t.Fatalf("got %+v", rec)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}
}

func TestMemory_Get_Missing_ReturnsNilNil(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	rec, err := m.GetScenario(ctx, "nope")
	if err != nil || rec != nil {
		t.Fatalf("want nil,nil; got %+v, %v", rec, err)
	}
	entry, err := m.GetEntry(ctx, "nope")
	if err != nil || entry != nil {
		t.Fatalf("want nil,nil; got %+v, %v", entry, err)
	}
}

func TestMemory_Update_PreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	if err := m.SaveScenario(ctx, store.ScenarioRecord{ID: "a", Name: "v1"}); err != nil {
		t.Fatal(err)
	}
	first, _ := m.GetScenario(ctx, "a")

	time.Sleep(2 * time.Millisecond)
	if err := m.SaveScenario(ctx, store.ScenarioRecord{ID: "a", Name: "v2"}); err != nil {
		t.Fatal(err)
	}
	second, _ := m.GetScenario(ctx, "a")

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("update rewrote CreatedAt")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatal("update did not bump UpdatedAt")
	}
	if second.Name != "v2" {
		t.Fatalf("name: got %q", second.Name)
	}
}

func TestMemory_List_OrderedByCreation(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	for _, id := range []string{"c", "a", "b"} {
		if err := m.SaveEntry(ctx, store.EntryRecord{ID: id, ScenarioID: "s"}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	recs, err := m.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3, got %d", len(recs))
	}
	want := []string{"c", "a", "b"}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Fatalf("index %d: want %q, got %q", i, want[i], rec.ID)
		}
	}
}

func TestMemory_SettingsAndReset(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	if err := m.SaveSettings(ctx, store.Settings{DepartmentAnnualSalary: 420000}); err != nil {
		t.Fatal(err)
	}
	s, err := m.GetSettings(ctx)
	if err != nil || s.DepartmentAnnualSalary != 420000 {
		t.Fatalf("settings: %+v, %v", s, err)
	}

	if err := m.SaveScenario(ctx, store.ScenarioRecord{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	recs, _ := m.ListScenarios(ctx)
	if len(recs) != 0 {
		t.Fatal("reset left scenarios behind")
	}
	s, _ = m.GetSettings(ctx)
	if s.DepartmentAnnualSalary != 0 {
		t.Fatal("reset left settings behind")
	}
}
