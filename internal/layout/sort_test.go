package layout

import (
	"testing"

	"github.com/1broseidon/icontile/internal/surface"
)

func names(icons []surface.Icon) []string {
	out := make([]string, len(icons))
	for i, ic := range icons {
		out[i] = ic.Name
	}
	return out
}

func assertOrder(t *testing.T, got []surface.Icon, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d icons, got %v", len(want), names(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("expected order %v, got %v", want, names(got))
		}
	}
}

func TestSortUnit_NameCaseFolded(t *testing.T) {
	icons := []prioritizedIcon{
		{priority: 0, icon: surface.Icon{Name: "banana"}},
		{priority: 0, icon: surface.Icon{Name: "Apple"}},
		{priority: 0, icon: surface.Icon{Name: "cherry"}},
	}
	got := sortUnit(icons, SortNameAsc, statPath)
	assertOrder(t, got, "Apple", "banana", "cherry")
}

func TestSortUnit_PriorityBeatsName(t *testing.T) {
	icons := []prioritizedIcon{
		{priority: 5, icon: surface.Icon{Name: "aaa"}},
		{priority: 2, icon: surface.Icon{Name: "zzz"}},
	}
	got := sortUnit(icons, SortNameAsc, statPath)
	assertOrder(t, got, "zzz", "aaa")
}

func TestSortUnit_DescendingReversesWithinPriorityBucketsOnly(t *testing.T) {
	icons := []prioritizedIcon{
		{priority: 2, icon: surface.Icon{Name: "a2"}},
		{priority: 2, icon: surface.Icon{Name: "b2"}},
		{priority: 5, icon: surface.Icon{Name: "a5"}},
		{priority: 5, icon: surface.Icon{Name: "b5"}},
	}
	got := sortUnit(icons, SortNameDesc, statPath)
	// Buckets stay in ascending priority order; names reverse inside each.
	assertOrder(t, got, "b2", "a2", "b5", "a5")
}

func TestSortUnit_SizeDescMissingFileSortsLast(t *testing.T) {
	sizes := map[string]int64{
		"/d/big.bin":   4096,
		"/d/small.bin": 16,
	}
	stat := func(path string) (fileStat, bool) {
		size, ok := sizes[path]
		if !ok {
			return fileStat{}, false
		}
		return fileStat{size: size}, true
	}

	icons := []prioritizedIcon{
		{icon: surface.Icon{Name: "small.bin", Path: "/d/small.bin"}},
		{icon: surface.Icon{Name: "gone.bin", Path: "/d/gone.bin"}},
		{icon: surface.Icon{Name: "big.bin", Path: "/d/big.bin"}},
	}
	got := sortUnit(icons, SortSizeDesc, stat)
	// Missing file takes the lowest key, so it lands last under descending.
	assertOrder(t, got, "big.bin", "small.bin", "gone.bin")
}

func TestSortUnit_FolderSizeIsZero(t *testing.T) {
	stat := func(path string) (fileStat, bool) {
		return fileStat{size: 1000}, true
	}
	icons := []prioritizedIcon{
		{icon: surface.Icon{Name: "dir", Path: "/d/dir", IsFolder: true}},
		{icon: surface.Icon{Name: "file", Path: "/d/file"}},
	}
	got := sortUnit(icons, SortSizeAsc, stat)
	assertOrder(t, got, "dir", "file")
}

func TestSortUnit_ModifiedAsc(t *testing.T) {
	times := map[string]int64{"/d/old": 100, "/d/new": 900}
	stat := func(path string) (fileStat, bool) {
		ts, ok := times[path]
		return fileStat{modified: ts}, ok
	}
	icons := []prioritizedIcon{
		{icon: surface.Icon{Name: "new", Path: "/d/new"}},
		{icon: surface.Icon{Name: "old", Path: "/d/old"}},
	}
	got := sortUnit(icons, SortModifiedAsc, stat)
	assertOrder(t, got, "old", "new")
}
