package parse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTreeFile(t *testing.T, dir string, name string, sentence int, word string) {
	t.Helper()
	xml := fmt.Sprintf(`<alpino_ds>
  <!-- sentence %d -->
  <node cat="top" begin="0" end="1">
    <node pos="noun" begin="0" end="1" word="%s"/>
  </node>
</alpino_ds>`, sentence, word)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(xml), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTreeFile(t, dir, "0.xml", 0, "hond")
	writeTreeFile(t, dir, "1.xml", 1, "kat")

	trees, err := NewLoader(time.Minute, false).LoadDir(dir, 2)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if len(trees) != 2 {
		t.Fatalf("Expected 2 trees, got %d", len(trees))
	}
	words := trees[1].Root.Words()
	if len(words) != 1 || words[0] != "kat" {
		t.Errorf("Sentence 1 words = %v, want [kat]", words)
	}
}

func TestLoader_MissingDir(t *testing.T) {
	_, err := NewLoader(time.Minute, false).LoadDir(filepath.Join(t.TempDir(), "absent"), 1)
	if !errors.Is(err, ErrMissingParseDir) {
		t.Errorf("Expected ErrMissingParseDir, got %v", err)
	}
}

func TestLoader_MissingSentence(t *testing.T) {
	dir := t.TempDir()
	writeTreeFile(t, dir, "0.xml", 0, "hond")

	// Sentence 1 has no tree: fatal, never silently skipped.
	_, err := NewLoader(time.Minute, false).LoadDir(dir, 2)
	if !errors.Is(err, ErrMissingParseFile) {
		t.Errorf("Expected ErrMissingParseFile, got %v", err)
	}
}

func TestLoader_FilenameFallback(t *testing.T) {
	dir := t.TempDir()
	// No sentence comment: the numeric file name prefix keys the tree.
	xml := `<alpino_ds><node cat="top" begin="0" end="1"><node pos="noun" begin="0" end="1" word="x"/></node></alpino_ds>`
	if err := os.WriteFile(filepath.Join(dir, "3.xml"), []byte(xml), 0644); err != nil {
		t.Fatal(err)
	}

	trees, err := NewLoader(time.Minute, false).LoadDir(dir, 0)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if _, ok := trees[3]; !ok {
		t.Errorf("Expected tree keyed by file name prefix 3, got %v", trees)
	}
}

func TestLoader_CacheServesRepeatLoads(t *testing.T) {
	dir := t.TempDir()
	writeTreeFile(t, dir, "0.xml", 0, "hond")

	loader := NewLoader(time.Minute, true)
	if _, err := loader.LoadDir(dir, 1); err != nil {
		t.Fatalf("first LoadDir failed: %v", err)
	}

	// Rewrite the file; the cached tree must still be served within TTL.
	writeTreeFile(t, dir, "0.xml", 0, "kat")

	trees, err := loader.LoadDir(dir, 1)
	if err != nil {
		t.Fatalf("second LoadDir failed: %v", err)
	}
	words := trees[0].Root.Words()
	if len(words) != 1 || words[0] != "hond" {
		t.Errorf("Expected cached tree (hond), got %v", words)
	}
}

func TestLoader_NoCacheRereadsDisk(t *testing.T) {
	dir := t.TempDir()
	writeTreeFile(t, dir, "0.xml", 0, "hond")

	loader := NewLoader(time.Minute, false)
	if _, err := loader.LoadDir(dir, 1); err != nil {
		t.Fatal(err)
	}

	writeTreeFile(t, dir, "0.xml", 0, "kat")

	trees, err := loader.LoadDir(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	words := trees[0].Root.Words()
	if len(words) != 1 || words[0] != "kat" {
		t.Errorf("Expected fresh tree (kat), got %v", words)
	}
}

func TestSentenceFromName(t *testing.T) {
	cases := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"12.xml", 12, false},
		{"0.xml", 0, false},
		{"7-extra.xml", 7, false},
		{"tree.xml", 0, true},
	}
	for _, tc := range cases {
		got, err := sentenceFromName(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}
