package organize

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/config"
	"github.com/1broseidon/icontile/internal/layout"
	"github.com/1broseidon/icontile/internal/preset"
	"github.com/1broseidon/icontile/internal/surface"
)

func testOrganizer(t *testing.T, icons []surface.Icon) (*Organizer, *surface.Fake) {
	t.Helper()
	fake := surface.NewFake(icons)
	dir := t.TempDir()
	o := New(Options{
		Surface:    fake,
		Classifier: classify.New(),
		Engine:     layout.NewEngine(layout.DefaultSettings()),
		Layouts:    layout.NewStore(filepath.Join(dir, "layouts.json")),
		Presets:    preset.NewCatalog(filepath.Join(dir, "presets.json")),
		Monitor:    config.MonitorPrimary,
		Logger:     log.New(io.Discard),
	})
	return o, fake
}

func desktopIcons() []surface.Icon {
	return []surface.Icon{
		{Name: "report.pdf", Path: "/d/report.pdf", Extension: ".pdf", X: 500, Y: 300},
		{Name: "photo.png", Path: "/d/photo.png", Extension: ".png", X: 700, Y: 100},
		{Name: "Projects", Path: "/d/Projects", IsFolder: true, X: 20, Y: 2},
		{Name: "Trash", IsSystem: true, X: 900, Y: 500},
		{Name: "odd.xyzzy", Path: "/d/odd.xyzzy", Extension: ".xyzzy", X: 40, Y: 400},
	}
}

func TestOrganize_FullPass(t *testing.T) {
	o, fake := testOrganizer(t, desktopIcons())

	sum, err := o.Organize()
	if err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	if sum.Empty {
		t.Fatalf("unexpected empty summary")
	}
	if sum.Icons != 5 || sum.Placed != 5 || sum.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	// Shortcuts has no members; Folders, Images, Documents, System, Other do.
	if sum.Groups != 5 {
		t.Fatalf("expected 5 populated groups, got %d", sum.Groups)
	}
	if sum.Mismatched != 0 {
		t.Fatalf("expected clean verification, got %d mismatches", sum.Mismatched)
	}
	if fake.RefreshCount() == 0 {
		t.Fatalf("expected a desktop refresh")
	}
}

func TestOrganize_EmptyDesktopIsNoOp(t *testing.T) {
	o, _ := testOrganizer(t, nil)
	sum, err := o.Organize()
	if err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	if !sum.Empty || sum.Placed != 0 {
		t.Fatalf("expected empty no-op, got %+v", sum)
	}
}

func TestOrganize_SurfaceUnavailable(t *testing.T) {
	o, fake := testOrganizer(t, desktopIcons())
	fake.Unavailable = true
	if _, err := o.Organize(); err == nil {
		t.Fatalf("expected error from unavailable surface")
	}
}

func TestOrganize_FailedWritesReportMismatches(t *testing.T) {
	o, fake := testOrganizer(t, desktopIcons())
	fake.FailWrites = true

	sum, err := o.Organize()
	if err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	if sum.Mismatched == 0 {
		t.Fatalf("expected mismatches when the desktop drops writes")
	}
}

func TestOrganize_SavesUndoSnapshot(t *testing.T) {
	icons := desktopIcons()
	o, fake := testOrganizer(t, icons)

	if _, err := o.Organize(); err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	saved, ok, err := o.Layouts().Get(layout.LastLayoutName)
	if err != nil || !ok {
		t.Fatalf("expected undo snapshot: ok=%v err=%v", ok, err)
	}
	// Snapshot holds pre-organize positions.
	if p := saved.Positions["report.pdf"]; p.X != 500 || p.Y != 300 {
		t.Fatalf("snapshot has post-organize position: %+v", p)
	}

	n, err := o.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if n != len(icons) {
		t.Fatalf("expected %d icons restored, got %d", len(icons), n)
	}
	after, _ := fake.ListIcons()
	for _, ic := range after {
		if ic.Name == "report.pdf" && (ic.X != 500 || ic.Y != 300) {
			t.Fatalf("undo did not restore position: %+v", ic)
		}
	}
}

func TestUndo_WithoutSnapshot(t *testing.T) {
	o, _ := testOrganizer(t, desktopIcons())
	if _, err := o.Undo(); err == nil {
		t.Fatalf("expected undo to fail without a snapshot")
	}
}

func TestSaveLayout_RejectsReservedNames(t *testing.T) {
	o, _ := testOrganizer(t, desktopIcons())
	if _, err := o.SaveLayout("_mine"); err == nil {
		t.Fatalf("expected reserved name to be rejected")
	}
}

func TestSaveAndRestoreLayout(t *testing.T) {
	o, fake := testOrganizer(t, desktopIcons())
	if _, err := o.SaveLayout("work"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := o.Organize(); err != nil {
		t.Fatalf("organize failed: %v", err)
	}

	n, err := o.RestoreLayout("work")
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 restored, got %d", n)
	}
	after, _ := fake.ListIcons()
	for _, ic := range after {
		if ic.Name == "Trash" && (ic.X != 900 || ic.Y != 500) {
			t.Fatalf("restore did not reapply saved position: %+v", ic)
		}
	}
}

func TestRestoreLayout_Missing(t *testing.T) {
	o, _ := testOrganizer(t, desktopIcons())
	if _, err := o.RestoreLayout("nope"); err == nil {
		t.Fatalf("expected missing layout error")
	}
}

func TestApplyPreset_DynamicGroupsFromDesktop(t *testing.T) {
	o, _ := testOrganizer(t, desktopIcons())
	if err := o.ApplyPreset(preset.PresetByExtension); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if o.ActivePreset() != preset.PresetByExtension {
		t.Fatalf("expected active preset to stick")
	}

	// pdf, png and xyzzy each get their own group now.
	for _, name := range []string{"pdf", "png", "xyzzy"} {
		if _, ok := o.Classifier().Group(name); !ok {
			t.Fatalf("expected generated %s group", name)
		}
	}

	sum, err := o.Organize()
	if err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	if sum.Placed != 5 {
		t.Fatalf("expected all icons placed, got %+v", sum)
	}
	if _, ok := o.Classifier().Group("pdf"); !ok {
		t.Fatalf("expected pdf group to survive reorganize")
	}
}

func TestApplyPreset_Unknown(t *testing.T) {
	o, _ := testOrganizer(t, desktopIcons())
	if err := o.ApplyPreset("bogus"); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestStatus(t *testing.T) {
	o, _ := testOrganizer(t, desktopIcons())
	st, err := o.Status()
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if st.Icons != 5 || st.Monitor != "fake-0" {
		t.Fatalf("unexpected status: %+v", st)
	}
	if len(st.Groups) == 0 {
		t.Fatalf("expected group names in status")
	}
}
