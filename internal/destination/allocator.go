package destination

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrCollisionExhausted classifies a relative path whose destination
// namespace is so crowded that the bounded disambiguation search gave up.
var ErrCollisionExhausted = errors.New("collision attempts exhausted")

// DefaultMaxAttempts bounds the disambiguation search per file.
const DefaultMaxAttempts = 1000

// Allocator issues collision-free paths under a destination root, mirroring
// each file's source-relative directory. Its lifetime is one run: issued
// paths stay reserved in memory until the run ends, so two source files
// that flatten to the same name can never race for one destination even
// though the actual copies happen later.
//
// The issued set is mutex-guarded; Allocate is safe for concurrent use.
type Allocator struct {
	root        string
	maxAttempts int

	mu     sync.Mutex
	issued map[string]struct{}
}

// NewAllocator builds an allocator rooted at root. maxAttempts <= 0 selects
// DefaultMaxAttempts.
func NewAllocator(root string, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{
		root:        root,
		maxAttempts: maxAttempts,
		issued:      make(map[string]struct{}),
	}
}

// Allocate reserves and returns an absolute destination path for relPath.
// The preferred name is the source name; on collision a numeric
// disambiguator is inserted before the extension ("name (1).ext", …).
// Collisions are checked against both paths issued earlier in this run and
// files already on disk.
func (a *Allocator) Allocate(relPath string) (string, error) {
	dir := filepath.Join(a.root, filepath.Dir(relPath))
	name := filepath.Base(relPath)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	a.mu.Lock()
	defer a.mu.Unlock()

	for attempt := 0; attempt <= a.maxAttempts; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, attempt, ext)
		}
		path := filepath.Join(dir, candidate)
		if a.taken(path) {
			continue
		}
		a.issued[path] = struct{}{}
		return path, nil
	}
	return "", fmt.Errorf("%w: %s after %d attempts", ErrCollisionExhausted, relPath, a.maxAttempts)
}

// Release returns a reserved path to the pool. Used when the copy for an
// issued path failed before creating anything on disk.
func (a *Allocator) Release(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.issued, path)
}

func (a *Allocator) taken(path string) bool {
	if _, ok := a.issued[path]; ok {
		return true
	}
	_, err := os.Lstat(path)
	return err == nil
}
