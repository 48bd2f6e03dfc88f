// Package manifest enumerates dataset directories and computes pair
// membership. A manifest is the sorted list of regular-file names in a
// directory; filenames are the only identity the pipeline has.
package manifest

import (
	"fmt"
	"os"
	"sort"
)

// List returns the names of regular files in dir, sorted. Subdirectories and
// other non-regular entries are ignored.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Pairing partitions two manifests into the names common to both and the
// leftovers on each side.
type Pairing struct {
	Matched []string
	OnlyA   []string
	OnlyB   []string
}

// Pair computes pair membership between manifests a and b. All three result
// slices are sorted.
func Pair(a, b []string) Pairing {
	inB := make(map[string]struct{}, len(b))
	for _, name := range b {
		inB[name] = struct{}{}
	}

	var p Pairing
	for _, name := range a {
		if _, ok := inB[name]; ok {
			p.Matched = append(p.Matched, name)
			delete(inB, name)
		} else {
			p.OnlyA = append(p.OnlyA, name)
		}
	}
	for name := range inB {
		p.OnlyB = append(p.OnlyB, name)
	}
	sort.Strings(p.OnlyB)
	return p
}

// Total returns the number of manifest entries the pairing walked, matched or
// not. Progress reporting counts every entry.
func (p Pairing) Total() int {
	return len(p.Matched) + len(p.OnlyA) + len(p.OnlyB)
}
