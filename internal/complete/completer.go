// Package complete suggests subdirectory names for a partially typed path,
// the way the path bar completes while the user types. Directory listings are
// cached so per-keystroke completion does not re-read the same directory.
package complete

import (
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirgrip/internal/fsx"
)

const cacheSize = 128

// Completer suggests directory completions for typed prefixes.
type Completer struct {
	fs    fsx.Filesystem
	cache *lru.Cache[string, []string]
}

// New creates a completer over the given filesystem.
func New(fs fsx.Filesystem) *Completer {
	cache, _ := lru.New[string, []string](cacheSize)
	return &Completer{fs: fs, cache: cache}
}

// Complete returns full paths of subdirectories matching the typed prefix.
// "/home/us" completes to the directories under /home whose name starts with
// "us"; a prefix ending in a separator lists everything in that directory.
func (c *Completer) Complete(prefix string) []string {
	if prefix == "" {
		return nil
	}

	dir := filepath.Dir(prefix)
	base := filepath.Base(prefix)
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		dir = filepath.Clean(prefix)
		base = ""
	}

	names, err := c.listDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, name := range names {
		if base == "" || strings.HasPrefix(name, base) {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

// Invalidate drops the cached listing for dir, e.g. after it changed on disk.
func (c *Completer) Invalidate(dir string) {
	c.cache.Remove(filepath.Clean(dir))
}

func (c *Completer) listDir(dir string) ([]string, error) {
	if names, ok := c.cache.Get(dir); ok {
		return names, nil
	}
	names, err := c.fs.ReadDirNames(dir)
	if err != nil {
		return nil, err
	}
	c.cache.Add(dir, names)
	return names, nil
}
