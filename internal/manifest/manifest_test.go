package manifest_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"abprep/internal/manifest"
)

func TestListReturnsSortedRegularFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2.png", "1.png", "10.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	names, err := manifest.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"1.png", "10.png", "2.png"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
}

func TestListMissingDirectoryFails(t *testing.T) {
	if _, err := manifest.List(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestPairSplitsMembership(t *testing.T) {
	a := []string{"1.png", "2.png", "4.png"}
	b := []string{"1.png", "3.png", "4.png", "5.png"}

	p := manifest.Pair(a, b)

	if !reflect.DeepEqual(p.Matched, []string{"1.png", "4.png"}) {
		t.Fatalf("Matched = %v", p.Matched)
	}
	if !reflect.DeepEqual(p.OnlyA, []string{"2.png"}) {
		t.Fatalf("OnlyA = %v", p.OnlyA)
	}
	if !reflect.DeepEqual(p.OnlyB, []string{"3.png", "5.png"}) {
		t.Fatalf("OnlyB = %v", p.OnlyB)
	}
	if p.Total() != 5 {
		t.Fatalf("Total = %d, want 5", p.Total())
	}
}

func TestPairEmptyInputs(t *testing.T) {
	p := manifest.Pair(nil, nil)
	if p.Total() != 0 || len(p.Matched) != 0 {
		t.Fatalf("expected empty pairing, got %+v", p)
	}
}
