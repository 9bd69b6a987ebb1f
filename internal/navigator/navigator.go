// Package navigator maintains a linear, index-addressed history of visited
// directories and mediates every change to the process working directory.
package navigator

import (
	"fmt"
	"log"

	"dirgrip/internal/eventbus"
	"dirgrip/internal/fsx"
)

// StartupConfig controls where navigation starts when history is empty
type StartupConfig struct {
	UseFixedDirectory bool
	FixedDirectory    string

	// OnFixedDirectoryLost is called when the fixed directory no longer
	// exists, so the owner can restore the default startup settings
	OnFixedDirectoryLost func()
}

// Options configures a Navigator
type Options struct {
	MaxHistory int
	Startup    StartupConfig
}

// Navigator owns the directory history and the cursor into it. All methods
// are meant to be called from a single goroutine (the UI event loop); the
// navigator is the only intended mutator of the process working directory
// within the application. Other mutators are last-write-wins.
type Navigator struct {
	fs  fsx.Filesystem
	bus eventbus.EventBus

	entries []string
	cursor  int // -1 when history is empty
	maxLen  int
	remote  string // server id of the active remote binding, "" for local

	startup StartupConfig
}

// New creates a navigator with empty history
func New(fs fsx.Filesystem, bus eventbus.EventBus, opts Options) *Navigator {
	return &Navigator{
		fs:      fs,
		bus:     bus,
		cursor:  -1,
		maxLen:  opts.MaxHistory,
		startup: opts.Startup,
	}
}

// Commit resolves path and makes it the current working directory, recording
// it in history. A trailing ":<digits>" suffix is treated as a line number;
// a path that names an existing file is redirected to its containing
// directory and additionally announced with a GoToFileEvent. New entries
// truncate any forward history; committing a path already present in history
// only moves the cursor (revisit). When the filesystem rejects the change the
// in-memory mutation is rolled back before the error is returned.
func (n *Navigator) Commit(raw string) error {
	path, line := SplitLineSuffix(raw)

	abs, err := n.fs.Abs(path)
	if err != nil {
		return fmt.Errorf("%q: %w", raw, ErrInvalidDirectory)
	}

	// A file target opens its containing directory
	var file string
	if n.fs.IsFile(abs) {
		file = abs
		abs = n.fs.Parent(abs)
	}

	// A malformed name falls back to its parent, once
	if !n.fs.IsDir(abs) {
		abs = n.fs.Parent(abs)
	}
	if !n.fs.IsDir(abs) {
		return fmt.Errorf("%q: %w", raw, ErrInvalidDirectory)
	}

	prevEntries := append([]string(nil), n.entries...)
	prevCursor := n.cursor

	if i := n.indexOf(abs); i >= 0 {
		// Revisit: move the cursor, leave entries untouched
		n.cursor = i
	} else {
		// Truncate forward history, then append
		if n.cursor >= 0 {
			n.entries = n.entries[:n.cursor+1]
		} else {
			n.entries = nil
		}
		n.entries = append(n.entries, abs)
		n.cursor = len(n.entries) - 1
		n.trim()
	}

	log.Printf("Navigator: setting cwd to %s", abs)
	if err := n.fs.Chdir(abs); err != nil {
		// Roll back so cursor and entries match their pre-call values
		n.entries = prevEntries
		n.cursor = prevCursor
		return fmt.Errorf("%s: %w: %v", abs, ErrDirectoryChangeFailed, err)
	}

	n.remote = ""
	n.bus.Publish(eventbus.DirectoryChangedEvent{Path: abs})
	if file != "" {
		n.bus.Publish(eventbus.GoToFileEvent{Path: file, Line: line})
	}
	n.publishHistory()
	return nil
}

// CommitRemote binds the current directory to a remote server context.
// Remote paths are not validated, not recorded in history and do not change
// the process working directory; only the notification is emitted.
func (n *Navigator) CommitRemote(serverID, path string) {
	n.remote = serverID
	n.bus.Publish(eventbus.DirectoryChangedEvent{Path: path, ServerID: serverID})
}

// Back moves one step back in history and re-applies that directory.
// History itself is not mutated; the cursor only moves when the filesystem
// change succeeds.
func (n *Navigator) Back() error {
	if n.cursor <= 0 {
		return ErrNoHistory
	}
	target := n.entries[n.cursor-1]
	if err := n.fs.Chdir(target); err != nil {
		return fmt.Errorf("%s: %w: %v", target, ErrDirectoryChangeFailed, err)
	}
	n.cursor--
	n.bus.Publish(eventbus.DirectoryChangedEvent{Path: target})
	n.publishHistory()
	return nil
}

// Forward is the mirror of Back
func (n *Navigator) Forward() error {
	if n.cursor < 0 || n.cursor >= len(n.entries)-1 {
		return ErrNoHistory
	}
	target := n.entries[n.cursor+1]
	if err := n.fs.Chdir(target); err != nil {
		return fmt.Errorf("%s: %w: %v", target, ErrDirectoryChangeFailed, err)
	}
	n.cursor++
	n.bus.Publish(eventbus.DirectoryChangedEvent{Path: target})
	n.publishHistory()
	return nil
}

// Parent commits the parent of the current directory
func (n *Navigator) Parent() error {
	cur := n.CurrentDirectory()
	parent := n.fs.Parent(cur)
	if parent == cur {
		// Already at the filesystem root
		return fmt.Errorf("%s: %w", cur, ErrInvalidDirectory)
	}
	return n.Commit(parent)
}

// CurrentDirectory returns the entry under the cursor, or the startup
// directory when history is empty
func (n *Navigator) CurrentDirectory() string {
	if n.cursor >= 0 && n.cursor < len(n.entries) {
		return n.entries[n.cursor]
	}
	return n.StartupDirectory()
}

// StartupDirectory returns the configured fixed directory if it is enabled
// and still exists, otherwise the home directory. A fixed directory that
// disappeared triggers the OnFixedDirectoryLost hook.
func (n *Navigator) StartupDirectory() string {
	if n.startup.UseFixedDirectory && n.startup.FixedDirectory != "" {
		if n.fs.IsDir(n.startup.FixedDirectory) {
			return n.startup.FixedDirectory
		}
		if n.startup.OnFixedDirectoryLost != nil {
			n.startup.OnFixedDirectoryLost()
		}
		n.startup.UseFixedDirectory = false
	}
	return n.fs.Home()
}

// SeedHistory bulk-loads persisted history. No filesystem change happens per
// entry and the cursor stays unset. When initial is non-empty it is committed
// afterwards, falling back to the startup directory when it is invalid.
func (n *Navigator) SeedHistory(paths []string, initial string) error {
	n.entries = nil
	n.cursor = -1
	for _, p := range paths {
		if len(n.entries) > 0 && n.entries[len(n.entries)-1] == p {
			continue
		}
		n.entries = append(n.entries, p)
	}

	if initial == "" {
		return nil
	}
	if err := n.Commit(initial); err != nil {
		log.Printf("Navigator: initial directory %q invalid, using startup directory: %v", initial, err)
		return n.Commit(n.StartupDirectory())
	}
	return nil
}

// ApplyHistory replaces the history list after an external change (e.g. the
// config file was edited). Adjacent duplicates are collapsed, as on seeding.
// The cursor is repositioned at the current directory, which is kept in the
// list so navigation never loses its place.
func (n *Navigator) ApplyHistory(paths []string) {
	var cur string
	if n.cursor >= 0 && n.cursor < len(n.entries) {
		cur = n.entries[n.cursor]
	}

	n.entries = nil
	for _, p := range paths {
		if len(n.entries) > 0 && n.entries[len(n.entries)-1] == p {
			continue
		}
		n.entries = append(n.entries, p)
	}
	switch {
	case cur == "":
		n.cursor = -1
	default:
		if i := n.indexOf(cur); i >= 0 {
			n.cursor = i
		} else {
			n.entries = append(n.entries, cur)
			n.cursor = len(n.entries) - 1
		}
	}
	n.publishHistory()
}

// Entries returns a copy of the history list
func (n *Navigator) Entries() []string {
	out := make([]string, len(n.entries))
	copy(out, n.entries)
	return out
}

// Cursor returns the index of the current entry, or -1 when history is empty
func (n *Navigator) Cursor() int { return n.cursor }

// Len returns the number of history entries
func (n *Navigator) Len() int { return len(n.entries) }

// CanGoBack reports whether Back would succeed
func (n *Navigator) CanGoBack() bool { return n.cursor > 0 }

// CanGoForward reports whether Forward would succeed
func (n *Navigator) CanGoForward() bool {
	return n.cursor >= 0 && n.cursor < len(n.entries)-1
}

// RemoteServerID returns the server id of the active remote binding, or ""
func (n *Navigator) RemoteServerID() string { return n.remote }

func (n *Navigator) indexOf(path string) int {
	for i, e := range n.entries {
		if e == path {
			return i
		}
	}
	return -1
}

// trim drops the oldest entries when the list exceeds the configured maximum
func (n *Navigator) trim() {
	if n.maxLen <= 0 || len(n.entries) <= n.maxLen {
		return
	}
	drop := len(n.entries) - n.maxLen
	n.entries = append([]string(nil), n.entries[drop:]...)
	n.cursor -= drop
	if n.cursor < 0 {
		n.cursor = 0
	}
}

func (n *Navigator) publishHistory() {
	n.bus.Publish(eventbus.HistoryChangedEvent{
		Entries: n.Entries(),
		Cursor:  n.cursor,
	})
}
