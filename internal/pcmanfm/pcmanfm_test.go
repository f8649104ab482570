package pcmanfm

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/ini.v1"

	"github.com/1broseidon/icontile/internal/surface"
)

func testSurface(t *testing.T, conf string) *Surface {
	t.Helper()
	dir := t.TempDir()
	desktop := filepath.Join(dir, "Desktop")
	if err := os.MkdirAll(filepath.Join(desktop, "Projects"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	for _, name := range []string{"report.pdf", "photo.PNG"} {
		if err := os.WriteFile(filepath.Join(desktop, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	confPath := filepath.Join(dir, "desktop-items-0.conf")
	if conf != "" {
		if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return &Surface{
		desktopDir: desktop,
		confPath:   confPath,
		refresh:    func() error { return nil },
	}
}

const sampleConf = `[*]
wallpaper_mode=crop

[trash:///]
x=20
y=2

[report.pdf]
x=130
y=2

[Projects]
x=240
y=2
`

func TestListIcons(t *testing.T) {
	s := testSurface(t, sampleConf)
	icons, err := s.ListIcons()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	byName := make(map[string]surface.Icon)
	for _, ic := range icons {
		byName[ic.Name] = ic
	}

	if len(icons) != 4 {
		t.Fatalf("expected 4 icons, got %d: %v", len(icons), icons)
	}
	if _, ok := byName["*"]; ok {
		t.Fatalf("wallpaper section leaked into icon list")
	}

	trash := byName["Trash"]
	if !trash.IsSystem || trash.X != 20 || trash.Y != 2 {
		t.Fatalf("unexpected trash icon: %+v", trash)
	}
	pdf := byName["report.pdf"]
	if pdf.Extension != ".pdf" || pdf.IsFolder || pdf.X != 130 {
		t.Fatalf("unexpected pdf icon: %+v", pdf)
	}
	if png := byName["photo.PNG"]; png.Extension != ".png" {
		t.Fatalf("extension not lowercased: %+v", png)
	}
	if proj := byName["Projects"]; !proj.IsFolder || proj.X != 240 {
		t.Fatalf("unexpected folder icon: %+v", proj)
	}
}

func TestListIcons_MissingConfDefaultsToOrigin(t *testing.T) {
	s := testSurface(t, "")
	icons, err := s.ListIcons()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// No virtual entries without a conf, only the three files.
	if len(icons) != 3 {
		t.Fatalf("expected 3 icons, got %d", len(icons))
	}
	for _, ic := range icons {
		if ic.X != 0 || ic.Y != 0 {
			t.Fatalf("expected unplaced icon at (0, 0), got %+v", ic)
		}
	}
}

func TestSetPositions_RoundTrip(t *testing.T) {
	s := testSurface(t, sampleConf)
	err := s.SetPositions(map[string]surface.Point{
		"report.pdf": {X: 350, Y: 102},
		"Trash":      {X: 20, Y: 102},
	})
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	icons, err := s.ListIcons()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, ic := range icons {
		switch ic.Name {
		case "report.pdf":
			if ic.X != 350 || ic.Y != 102 {
				t.Fatalf("pdf not moved: %+v", ic)
			}
		case "Trash":
			if ic.X != 20 || ic.Y != 102 {
				t.Fatalf("trash not moved: %+v", ic)
			}
		}
	}

	// The write must land in the trash's URI section, not a display-name one.
	cfg, err := ini.Load(s.confPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := cfg.Section("trash:///").Key("y").MustInt(-1); got != 102 {
		t.Fatalf("expected trash:/// section update, got y=%d", got)
	}
	if cfg.Section("*").Key("wallpaper_mode").String() != "crop" {
		t.Fatalf("wallpaper settings were clobbered")
	}
}

func TestGridMetrics(t *testing.T) {
	conf := `[a]
x=20
y=2

[b]
x=130
y=2

[c]
x=20
y=102
`
	dir := t.TempDir()
	desktop := filepath.Join(dir, "Desktop")
	if err := os.MkdirAll(desktop, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(desktop, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	confPath := filepath.Join(dir, "desktop-items-0.conf")
	if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	s := &Surface{desktopDir: desktop, confPath: confPath, refresh: func() error { return nil }}

	origin, err := s.GridOrigin()
	if err != nil {
		t.Fatalf("origin failed: %v", err)
	}
	if origin.X != 20 || origin.Y != 2 {
		t.Fatalf("unexpected origin: %+v", origin)
	}

	sp, err := s.IconSpacing()
	if err != nil {
		t.Fatalf("spacing failed: %v", err)
	}
	if sp.H != 110 || sp.V != 100 {
		t.Fatalf("unexpected spacing: %+v", sp)
	}
}
