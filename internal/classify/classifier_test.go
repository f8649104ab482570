package classify

import (
	"testing"

	"github.com/1broseidon/icontile/internal/surface"
)

func TestClassify_MatchOrder(t *testing.T) {
	c := New()

	cases := []struct {
		ext      string
		isFolder bool
		isSystem bool
		want     string
	}{
		{".lnk", false, false, "Shortcuts"},
		{"", true, false, "Folders"},
		{".pdf", false, false, "Documents"},
		{".PNG", false, false, "Images"},
		{".pdf", false, true, "System"}, // system flag overrides extension
		{"", true, true, "System"},      // and the folder flag
		{".xyzzy", false, false, FallbackGroup},
		{"", false, false, FallbackGroup},
	}
	for _, tc := range cases {
		got := c.Classify(tc.ext, tc.isFolder, tc.isSystem)
		if got != tc.want {
			t.Fatalf("Classify(%q, folder=%v, system=%v) = %q, want %q",
				tc.ext, tc.isFolder, tc.isSystem, got, tc.want)
		}
	}
}

func TestClassify_DisabledGroupNeverMatches(t *testing.T) {
	c := New()
	if !c.SetEnabled("Documents", false) {
		t.Fatalf("failed to disable group")
	}
	if got := c.Classify(".pdf", false, false); got != FallbackGroup {
		t.Fatalf("expected fallback for disabled group, got %q", got)
	}
}

func TestClassifyIcons_PartitionWithoutEmptyGroups(t *testing.T) {
	c := New()
	icons := []surface.Icon{
		{Name: "report.pdf", Extension: ".pdf"},
		{Name: "notes.txt", Extension: ".txt"},
		{Name: "Projects", IsFolder: true},
		{Name: "Trash", IsSystem: true},
		{Name: "strange.xyzzy", Extension: ".xyzzy"},
	}

	classified := c.ClassifyIcons(icons)

	total := 0
	for name, bucket := range classified {
		if len(bucket) == 0 {
			t.Fatalf("group %q has an empty icon list", name)
		}
		total += len(bucket)
	}
	if total != len(icons) {
		t.Fatalf("expected %d icons across groups, got %d", len(icons), total)
	}
	if len(classified["Documents"]) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(classified["Documents"]))
	}
	if len(classified[FallbackGroup]) != 1 {
		t.Fatalf("expected 1 icon in catch-all, got %d", len(classified[FallbackGroup]))
	}
	if _, ok := classified["Videos"]; ok {
		t.Fatalf("empty Videos group must be dropped")
	}
}

func TestSetPriority_StableTies(t *testing.T) {
	c := &Classifier{}
	c.ReplaceGroups([]Group{
		{Name: "a", Kind: KindExtensions, Enabled: true, Priority: 5},
		{Name: "b", Kind: KindExtensions, Enabled: true, Priority: 5},
		{Name: "c", Kind: KindExtensions, Enabled: true, Priority: 1},
	})

	// Re-sorting with a new tie must keep a before b.
	if !c.SetPriority("c", 5) {
		t.Fatalf("failed to set priority")
	}
	got := c.Groups()
	want := []string{"a", "b", "c"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("expected order %v, got %q at index %d", want, got[i].Name, i)
		}
	}
}

func TestUpdate_SingleEntryPoint(t *testing.T) {
	c := New()
	enabled := false
	pri := 42
	merge := "media"
	if err := c.Update(GroupUpdate{
		Name:       "Images",
		Enabled:    &enabled,
		Priority:   &pri,
		Extensions: []string{"JPG", ".png", ".png"},
		MergeGroup: &merge,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, ok := c.Group("Images")
	if !ok {
		t.Fatalf("group disappeared")
	}
	if g.Enabled || g.Priority != 42 || g.MergeGroup != "media" {
		t.Fatalf("update not applied: %+v", g)
	}
	if len(g.Extensions) != 2 || g.Extensions[0] != ".jpg" || g.Extensions[1] != ".png" {
		t.Fatalf("extensions not normalized/deduped: %v", g.Extensions)
	}

	if err := c.Update(GroupUpdate{Name: "missing"}); err == nil {
		t.Fatalf("expected error for unknown group")
	}
}

func TestAddRemoveGroup(t *testing.T) {
	c := New()
	if _, err := c.AddGroup("Code", []string{"go", ".rs"}, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.AddGroup("Code", nil, 11); err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
	if got := c.Classify(".go", false, false); got != "Code" {
		t.Fatalf("expected .go to classify as Code, got %q", got)
	}
	if !c.RemoveGroup("Code") {
		t.Fatalf("expected removal")
	}
	if c.RemoveGroup("Code") {
		t.Fatalf("expected second removal to report false")
	}
}
