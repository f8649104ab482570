package preset

import (
	"path/filepath"
	"testing"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/surface"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	return NewCatalog(filepath.Join(t.TempDir(), "presets.json"))
}

func TestCatalog_BuiltinsAlwaysPresent(t *testing.T) {
	c := testCatalog(t)
	for _, id := range []string{PresetDefault, PresetCompact, PresetMinimal, PresetByExtension} {
		p, ok, err := c.Get(id)
		if err != nil || !ok {
			t.Fatalf("%s: ok=%v err=%v", id, ok, err)
		}
		if p.ID != id {
			t.Fatalf("expected id %q, got %q", id, p.ID)
		}
	}
}

func TestCatalog_BuiltinGroupsValidate(t *testing.T) {
	all, err := testCatalog(t).All()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, p := range all {
		if p.Dynamic {
			continue
		}
		for _, g := range p.Groups {
			if err := g.Validate(); err != nil {
				t.Fatalf("%s/%s: %v", p.ID, g.Name, err)
			}
		}
		last := p.Groups[len(p.Groups)-1]
		if last.Name != classify.FallbackGroup || last.Priority != 999 {
			t.Fatalf("%s: expected trailing catch-all, got %+v", p.ID, last)
		}
	}
}

func TestCatalog_SaveCustomRoundTrip(t *testing.T) {
	c := testCatalog(t)
	groups := []classify.Group{
		{Name: "Stuff", Kind: classify.KindExtensions, Extensions: []string{".pdf"}, Enabled: true, Priority: 0},
		{Name: classify.FallbackGroup, Kind: classify.KindExtensions, Enabled: true, Priority: 999},
	}

	p, err := c.SaveCustom("My Desk Setup", "", groups)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if p.ID != "custom_my_desk_setup" {
		t.Fatalf("unexpected id %q", p.ID)
	}

	got, ok, err := c.Get(p.ID)
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if len(got.Groups) != 2 || got.Groups[0].Name != "Stuff" {
		t.Fatalf("unexpected groups: %+v", got.Groups)
	}
}

func TestCatalog_BuiltinsRejectMutation(t *testing.T) {
	c := testCatalog(t)
	if err := c.UpdateCustom(PresetDefault, nil); err == nil {
		t.Fatalf("expected update of built-in preset to fail")
	}
	if err := c.DeleteCustom(PresetDefault); err == nil {
		t.Fatalf("expected delete of built-in preset to fail")
	}
}

func TestCatalog_DeleteCustom(t *testing.T) {
	c := testCatalog(t)
	groups := []classify.Group{{Name: "G", Kind: classify.KindExtensions, Extensions: []string{".a"}, Enabled: true}}
	p, err := c.SaveCustom("temp", "", groups)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := c.DeleteCustom(p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := c.Get(p.ID); ok {
		t.Fatalf("preset still present after delete")
	}
	if err := c.DeleteCustom(p.ID); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}

func TestResolve_DynamicGeneratesFromIcons(t *testing.T) {
	c := testCatalog(t)
	icons := []surface.Icon{
		{Name: "Trash", IsSystem: true},
		{Name: "app.lnk", Extension: ".lnk"},
		{Name: "Projects", IsFolder: true},
		{Name: "b.txt", Extension: ".txt"},
		{Name: "a.pdf", Extension: ".PDF"},
		{Name: "c.pdf", Extension: ".pdf"},
	}

	groups, err := c.Resolve(PresetByExtension, icons)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// system + shortcuts (merged), folders, pdf, txt, catch-all
	if len(groups) != 6 {
		t.Fatalf("expected 6 groups, got %d: %+v", len(groups), groups)
	}
	if groups[0].MergeGroup != groups[1].MergeGroup || groups[0].MergeGroup == "" {
		t.Fatalf("expected system and shortcut groups to merge")
	}
	// Extension groups sort by extension string, ahead of the catch-all.
	if groups[3].Name != "pdf" || groups[4].Name != "txt" {
		t.Fatalf("unexpected extension groups: %q, %q", groups[3].Name, groups[4].Name)
	}
	if groups[3].Priority >= groups[4].Priority {
		t.Fatalf("expected ascending priorities, got %d, %d", groups[3].Priority, groups[4].Priority)
	}
	if groups[5].Name != classify.FallbackGroup {
		t.Fatalf("expected trailing catch-all, got %q", groups[5].Name)
	}
}

func TestResolve_UnknownPreset(t *testing.T) {
	if _, err := testCatalog(t).Resolve("nope", nil); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}
