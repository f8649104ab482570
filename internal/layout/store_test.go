package layout

import (
	"path/filepath"
	"testing"

	"github.com/1broseidon/icontile/internal/surface"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "layouts.json"))
}

func TestStore_SaveRoundTrip(t *testing.T) {
	store := testStore(t)
	icons := []surface.Icon{
		{Name: "a.pdf", X: 20, Y: 2},
		{Name: "Projects", X: 130, Y: 2},
	}

	if _, err := store.Save("L1", icons); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok, err := store.Get("L1")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if len(got.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(got.Positions))
	}
	for _, ic := range icons {
		p := got.Positions[ic.Name]
		if p.X != ic.X || p.Y != ic.Y {
			t.Fatalf("%s: expected (%d, %d), got (%d, %d)", ic.Name, ic.X, ic.Y, p.X, p.Y)
		}
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestStore_SaveReplacesInPlace(t *testing.T) {
	store := testStore(t)
	if _, err := store.Save("first", []surface.Icon{{Name: "a", X: 1, Y: 1}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Save("second", []surface.Icon{{Name: "a", X: 2, Y: 2}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Save("first", []surface.Icon{{Name: "a", X: 9, Y: 9}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	layouts, err := store.UserLayouts()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(layouts))
	}
	// Replace keeps position in the ordered list.
	if layouts[0].Name != "first" || layouts[1].Name != "second" {
		t.Fatalf("unexpected order: %q, %q", layouts[0].Name, layouts[1].Name)
	}
	if p := layouts[0].Positions["a"]; p.X != 9 {
		t.Fatalf("expected replacement to win, got x=%d", p.X)
	}
}

func TestStore_DeleteReportsRemoval(t *testing.T) {
	store := testStore(t)
	if _, err := store.Save("gone", []surface.Icon{{Name: "a"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	removed, err := store.Delete("gone")
	if err != nil || !removed {
		t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
	}
	removed, err = store.Delete("gone")
	if err != nil || removed {
		t.Fatalf("expected no-op on second delete, got removed=%v err=%v", removed, err)
	}
}

func TestStore_ReservedNamesHiddenAndUnrenamable(t *testing.T) {
	store := testStore(t)
	if _, err := store.Save(LastLayoutName, []surface.Icon{{Name: "a"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Save("visible", []surface.Icon{{Name: "a"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	layouts, err := store.UserLayouts()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(layouts) != 1 || layouts[0].Name != "visible" {
		t.Fatalf("expected only the visible layout, got %+v", layouts)
	}

	if err := store.Rename(LastLayoutName, "renamed"); err == nil {
		t.Fatalf("expected rename of reserved layout to fail")
	}
	if err := store.Rename("visible", "_sneaky"); err == nil {
		t.Fatalf("expected rename to reserved name to fail")
	}
	if err := store.Rename("visible", "kept"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if _, ok, _ := store.Get("kept"); !ok {
		t.Fatalf("renamed layout missing")
	}
}

func TestStore_MissingFileIsEmptyList(t *testing.T) {
	store := testStore(t)
	layouts, err := store.UserLayouts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(layouts) != 0 {
		t.Fatalf("expected empty list, got %d", len(layouts))
	}
}
