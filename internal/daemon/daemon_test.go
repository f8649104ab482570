package daemon

import (
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/config"
	"github.com/1broseidon/icontile/internal/layout"
	"github.com/1broseidon/icontile/internal/organize"
	"github.com/1broseidon/icontile/internal/preset"
	"github.com/1broseidon/icontile/internal/surface"
)

func testDaemon(t *testing.T) *Daemon {
	t.Helper()
	icons := []surface.Icon{
		{Name: "a.pdf", Path: "/d/a.pdf", Extension: ".pdf", X: 400, Y: 300},
		{Name: "Projects", Path: "/d/Projects", IsFolder: true, X: 20, Y: 2},
	}
	dir := t.TempDir()
	org := organize.New(organize.Options{
		Surface:    surface.NewFake(icons),
		Classifier: classify.New(),
		Engine:     layout.NewEngine(layout.DefaultSettings()),
		Layouts:    layout.NewStore(filepath.Join(dir, "layouts.json")),
		Presets:    preset.NewCatalog(filepath.Join(dir, "presets.json")),
		Logger:     log.New(io.Discard),
	})
	d := New(config.DefaultConfig(), org, nil, log.New(io.Discard))
	go d.worker()
	t.Cleanup(func() { close(d.done) })
	return d
}

func TestDaemon_OrganizeThroughQueue(t *testing.T) {
	d := testDaemon(t)
	sum, err := d.Organize()
	if err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	if sum.Placed != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestDaemon_ConcurrentOperationsSerialize(t *testing.T) {
	d := testDaemon(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Organize(); err != nil {
				errs <- err
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Undo may legitimately race organize for the first snapshot.
			_, _ = d.Undo()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("organize failed under contention: %v", err)
	}
}

func TestDaemon_LayoutLifecycle(t *testing.T) {
	d := testDaemon(t)

	if _, err := d.SaveLayout("desk"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	layouts, err := d.ListLayouts()
	if err != nil || len(layouts) != 1 {
		t.Fatalf("expected 1 layout, got %d (err=%v)", len(layouts), err)
	}

	if err := d.RenameLayout("desk", "home"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if n, err := d.RestoreLayout("home"); err != nil || n != 2 {
		t.Fatalf("restore failed: n=%d err=%v", n, err)
	}
	removed, err := d.DeleteLayout("home")
	if err != nil || !removed {
		t.Fatalf("delete failed: removed=%v err=%v", removed, err)
	}
}

func TestDaemon_ApplyPresetAndStatus(t *testing.T) {
	d := testDaemon(t)

	if err := d.ApplyPreset(preset.PresetCompact); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if d.ActivePreset() != preset.PresetCompact {
		t.Fatalf("expected active preset, got %q", d.ActivePreset())
	}

	st, err := d.Status()
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if st.Icons != 2 || st.ActivePreset != preset.PresetCompact {
		t.Fatalf("unexpected status: %+v", st)
	}

	presets, err := d.ListPresets()
	if err != nil || len(presets) < 4 {
		t.Fatalf("expected built-in presets, got %d (err=%v)", len(presets), err)
	}
}
