package watcher

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Fingerprints tracks an xxhash digest per file so that events which do not
// change content (touch, editor save of identical bytes) can be ignored.
type Fingerprints struct {
	mu      sync.Mutex
	digests map[string]uint64
}

// NewFingerprints creates an empty fingerprint set.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{digests: make(map[string]uint64)}
}

// Prime records the digest of every regular file under root.
func (f *Fingerprints) Prime(root string, skip func(name string) bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are not fingerprinted
		}
		if d.IsDir() {
			if path != root && skip(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if sum, err := digest(path); err == nil {
			f.mu.Lock()
			f.digests[path] = sum
			f.mu.Unlock()
		}
		return nil
	})
}

// Changed re-fingerprints paths and returns those whose content differs from
// the last recorded digest. New files and removed known files count as changed.
func (f *Fingerprints) Changed(paths []string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var changed []string
	for _, path := range paths {
		old, known := f.digests[path]

		sum, err := digest(path)
		switch {
		case errors.Is(err, errNotRegular):
			continue
		case err != nil:
			if known {
				delete(f.digests, path)
				changed = append(changed, path)
			}
		case !known || sum != old:
			f.digests[path] = sum
			changed = append(changed, path)
		}
	}
	return changed
}

// Len returns the number of fingerprinted files.
func (f *Fingerprints) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.digests)
}

var errNotRegular = errors.New("not a regular file")

func digest(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, errNotRegular
	}

	file, err := os.Open(path) //nolint:gosec // path comes from the watched tree
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
