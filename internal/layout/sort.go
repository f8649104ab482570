package layout

import (
	"os"
	"sort"
	"strings"

	"github.com/1broseidon/icontile/internal/surface"
)

// prioritizedIcon tags an icon with the priority of its original group, so
// merged units interleave by source-group priority rather than by the unit's
// leading priority.
type prioritizedIcon struct {
	priority int
	icon     surface.Icon
}

// fileStat carries the secondary sort keys read from disk.
type fileStat struct {
	size     int64
	created  int64
	modified int64
}

// statFunc resolves a path to its sort keys. Tests substitute this to avoid
// touching the filesystem.
type statFunc func(path string) (fileStat, bool)

func statPath(path string) (fileStat, bool) {
	if path == "" {
		return fileStat{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return fileStat{}, false
	}
	return fileStat{
		size:     info.Size(),
		created:  createdTime(info),
		modified: info.ModTime().Unix(),
	}, true
}

// numericKey computes the time/size key for one icon. Icons whose backing
// file is missing take the lowest possible key; folders have size zero.
func numericKey(order SortOrder, ic surface.Icon, stat statFunc) int64 {
	st, ok := stat(ic.Path)
	if !ok {
		return 0
	}
	switch order {
	case SortCreatedAsc, SortCreatedDesc:
		return st.created
	case SortModifiedAsc, SortModifiedDesc:
		return st.modified
	default: // size
		if ic.IsFolder {
			return 0
		}
		return st.size
	}
}

// sortUnit orders a placement unit: priority ascending always, secondary key
// per the configured order. A descending order reverses the secondary key
// inside each priority bucket only, never across buckets.
func sortUnit(icons []prioritizedIcon, order SortOrder, stat statFunc) []surface.Icon {
	type keyed struct {
		prioritizedIcon
		name string
		num  int64
	}

	byName := order == SortNameAsc || order == SortNameDesc
	items := make([]keyed, len(icons))
	for i, pi := range icons {
		items[i] = keyed{prioritizedIcon: pi}
		if byName {
			items[i].name = strings.ToLower(pi.icon.Name)
		} else {
			items[i].num = numericKey(order, pi.icon, stat)
		}
	}

	desc := order.Descending()
	less := func(a, b keyed) bool {
		if byName {
			return a.name < b.name
		}
		return a.num < b.num
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].priority != items[j].priority {
			return items[i].priority < items[j].priority
		}
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})

	out := make([]surface.Icon, len(items))
	for i, it := range items {
		out[i] = it.icon
	}
	return out
}
