package parse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var (
	// ErrMissingParseDir means the parse-tree directory cannot be read.
	ErrMissingParseDir = errors.New("parse directory not found")
	// ErrMissingParseFile means a sentence has no corresponding parse tree.
	// This is fatal: skipping it would desynchronize sentence numbering.
	ErrMissingParseFile = errors.New("no parse tree for sentence")
)

// Loader reads per-sentence Alpino XML files. Parsed trees are cached by
// absolute path so batch runs over documents sharing a parse directory
// parse each file once. Cached trees are read-only.
type Loader struct {
	cache *gocache.Cache // nil when caching is disabled
	ttl   time.Duration
}

// NewLoader creates a loader. With caching disabled every LoadDir call
// re-parses from disk.
func NewLoader(ttl time.Duration, cacheEnabled bool) *Loader {
	l := &Loader{ttl: ttl}
	if cacheEnabled {
		l.cache = gocache.New(ttl, 2*ttl)
	}
	return l
}

// LoadDir loads the parse trees for sentences 0..numSentences-1 from dir.
// Every sentence must have a tree; a gap is a data-integrity error.
func (l *Loader) LoadDir(dir string, numSentences int) (map[int]*Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingParseDir, dir)
	}

	trees := make(map[int]*Tree)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		tree, err := l.loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		sentence := tree.Sentence
		if sentence < 0 {
			sentence, err = sentenceFromName(entry.Name())
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
		trees[sentence] = &Tree{Sentence: sentence, Root: tree.Root}
	}

	for s := 0; s < numSentences; s++ {
		if _, ok := trees[s]; !ok {
			return nil, fmt.Errorf("%w: sentence %d in %s", ErrMissingParseFile, s, dir)
		}
	}
	return trees, nil
}

// loadFile parses one XML file, going through the cache when enabled.
func (l *Loader) loadFile(path string) (*Tree, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	if l.cache != nil {
		if cached, ok := l.cache.Get(key); ok {
			return cached.(*Tree), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree, err := ParseTree(f)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(key, tree, gocache.DefaultExpiration)
	}
	return tree, nil
}

// sentenceFromName extracts the sentence number from a file name such as
// "12.xml" or "12-extra.xml" when the file carries no sentence comment.
func sentenceFromName(name string) (int, error) {
	base := strings.TrimSuffix(name, ".xml")
	digits := base
	for i, r := range base {
		if r < '0' || r > '9' {
			digits = base[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("cannot determine sentence number from %q", name)
	}
	return n, nil
}
