package navigator

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirgrip/internal/eventbus"
)

// fakeFS is an in-memory Filesystem for driving the navigator in tests
type fakeFS struct {
	dirs      map[string]bool
	files     map[string]bool
	home      string
	cwd       string
	failChdir map[string]bool
}

func newFakeFS(dirs ...string) *fakeFS {
	fs := &fakeFS{
		dirs:      make(map[string]bool),
		files:     make(map[string]bool),
		home:      "/home/user",
		failChdir: make(map[string]bool),
	}
	fs.dirs[fs.home] = true
	fs.dirs["/"] = true
	for _, d := range dirs {
		fs.dirs[d] = true
	}
	return fs
}

func (f *fakeFS) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(f.cwd, path), nil
}

func (f *fakeFS) IsDir(path string) bool  { return f.dirs[path] }
func (f *fakeFS) IsFile(path string) bool { return f.files[path] }
func (f *fakeFS) Parent(path string) string {
	return filepath.Dir(path)
}

func (f *fakeFS) Chdir(path string) error {
	if f.failChdir[path] || !f.dirs[path] {
		return errors.New("chdir rejected")
	}
	f.cwd = path
	return nil
}

func (f *fakeFS) Getwd() (string, error) { return f.cwd, nil }
func (f *fakeFS) Home() string           { return f.home }

func (f *fakeFS) ReadDirNames(path string) ([]string, error) {
	var names []string
	for d := range f.dirs {
		if filepath.Dir(d) == path && d != path {
			names = append(names, filepath.Base(d))
		}
	}
	return names, nil
}

// recordingBus collects published events synchronously
type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) goToFiles() []eventbus.GoToFileEvent {
	var out []eventbus.GoToFileEvent
	for _, e := range b.events {
		if g, ok := e.(eventbus.GoToFileEvent); ok {
			out = append(out, g)
		}
	}
	return out
}

func newTestNavigator(fs *fakeFS) (*Navigator, *recordingBus) {
	bus := &recordingBus{}
	return New(fs, bus, Options{}), bus
}

func TestCommitDistinctPaths(t *testing.T) {
	fs := newFakeFS("/a", "/b", "/c")
	nav, _ := newTestNavigator(fs)

	paths := []string{"/a", "/b", "/c"}
	for i, p := range paths {
		require.NoError(t, nav.Commit(p))
		assert.Equal(t, i+1, nav.Len())
		assert.Equal(t, i, nav.Cursor())
	}
	assert.Equal(t, paths, nav.Entries())
	assert.Equal(t, "/c", nav.CurrentDirectory())
	assert.Equal(t, "/c", fs.cwd)
}

func TestCommitRevisitMovesCursorOnly(t *testing.T) {
	fs := newFakeFS("/a", "/b", "/c")
	nav, _ := newTestNavigator(fs)
	for _, p := range []string{"/a", "/b", "/c"} {
		require.NoError(t, nav.Commit(p))
	}

	require.NoError(t, nav.Commit("/a"))
	assert.Equal(t, 0, nav.Cursor())
	assert.Equal(t, 3, nav.Len())
	assert.Equal(t, "/a", fs.cwd)
}

func TestCommitCurrentDirectoryIsNoOp(t *testing.T) {
	fs := newFakeFS("/a")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))
	require.NoError(t, nav.Commit("/a"))

	assert.Equal(t, 1, nav.Len())
	assert.Equal(t, 0, nav.Cursor())
}

func TestBackForwardRestores(t *testing.T) {
	fs := newFakeFS("/a", "/b", "/c")
	nav, _ := newTestNavigator(fs)
	for _, p := range []string{"/a", "/b", "/c"} {
		require.NoError(t, nav.Commit(p))
	}

	require.NoError(t, nav.Back())
	assert.Equal(t, "/b", nav.CurrentDirectory())
	assert.Equal(t, "/b", fs.cwd)

	require.NoError(t, nav.Forward())
	assert.Equal(t, 2, nav.Cursor())
	assert.Equal(t, "/c", nav.CurrentDirectory())
	assert.Equal(t, []string{"/a", "/b", "/c"}, nav.Entries())
}

func TestCommitAfterBackTruncatesForwardHistory(t *testing.T) {
	fs := newFakeFS("/a", "/b", "/c", "/d")
	nav, _ := newTestNavigator(fs)
	for _, p := range []string{"/a", "/b", "/c"} {
		require.NoError(t, nav.Commit(p))
	}

	require.NoError(t, nav.Back()) // now at /b
	require.NoError(t, nav.Commit("/d"))

	assert.Equal(t, []string{"/a", "/b", "/d"}, nav.Entries())
	assert.Equal(t, 2, nav.Cursor())
}

func TestCommitRollsBackWhenChdirFails(t *testing.T) {
	fs := newFakeFS("/a", "/tmp/new")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))

	fs.failChdir["/tmp/new"] = true
	err := nav.Commit("/tmp/new")
	require.ErrorIs(t, err, ErrDirectoryChangeFailed)

	assert.Equal(t, []string{"/a"}, nav.Entries())
	assert.Equal(t, 0, nav.Cursor())
	assert.Equal(t, "/a", fs.cwd)
}

func TestRevisitRollsBackWhenChdirFails(t *testing.T) {
	fs := newFakeFS("/a", "/b")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))
	require.NoError(t, nav.Commit("/b"))

	fs.failChdir["/a"] = true
	err := nav.Commit("/a")
	require.ErrorIs(t, err, ErrDirectoryChangeFailed)
	assert.Equal(t, 1, nav.Cursor())
}

func TestBackAtStartReturnsNoHistory(t *testing.T) {
	fs := newFakeFS("/a")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))

	err := nav.Back()
	require.ErrorIs(t, err, ErrNoHistory)
	assert.Equal(t, 0, nav.Cursor())
	assert.Equal(t, 1, nav.Len())
}

func TestBackAndForwardOnEmptyHistory(t *testing.T) {
	fs := newFakeFS()
	nav, _ := newTestNavigator(fs)

	require.ErrorIs(t, nav.Back(), ErrNoHistory)
	require.ErrorIs(t, nav.Forward(), ErrNoHistory)
	assert.Equal(t, -1, nav.Cursor())
}

func TestForwardAtEndReturnsNoHistory(t *testing.T) {
	fs := newFakeFS("/a", "/b")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))
	require.NoError(t, nav.Commit("/b"))

	require.ErrorIs(t, nav.Forward(), ErrNoHistory)
	assert.Equal(t, 1, nav.Cursor())
}

func TestBackKeepsCursorWhenChdirFails(t *testing.T) {
	fs := newFakeFS("/a", "/b")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))
	require.NoError(t, nav.Commit("/b"))

	fs.failChdir["/a"] = true
	err := nav.Back()
	require.ErrorIs(t, err, ErrDirectoryChangeFailed)
	assert.Equal(t, 1, nav.Cursor())
	assert.Equal(t, "/b", nav.CurrentDirectory())
}

func TestCommitFileWithLineSuffix(t *testing.T) {
	fs := newFakeFS("/proj")
	fs.files["/proj/file.py"] = true
	nav, bus := newTestNavigator(fs)

	require.NoError(t, nav.Commit("/proj/file.py:42"))

	assert.Equal(t, "/proj", nav.CurrentDirectory())
	assert.Equal(t, []string{"/proj"}, nav.Entries())

	gotos := bus.goToFiles()
	require.Len(t, gotos, 1)
	assert.Equal(t, "/proj/file.py", gotos[0].Path)
	assert.Equal(t, 42, gotos[0].Line)
	assert.Equal(t, "", gotos[0].Word)
}

func TestCommitFileWithoutLineSuffix(t *testing.T) {
	fs := newFakeFS("/proj")
	fs.files["/proj/notes.txt"] = true
	nav, bus := newTestNavigator(fs)

	require.NoError(t, nav.Commit("/proj/notes.txt"))
	require.Len(t, bus.goToFiles(), 1)
	assert.Equal(t, 0, bus.goToFiles()[0].Line)
}

func TestCommitMalformedFallsBackToParent(t *testing.T) {
	fs := newFakeFS("/proj")
	nav, _ := newTestNavigator(fs)

	require.NoError(t, nav.Commit("/proj/typo"))
	assert.Equal(t, "/proj", nav.CurrentDirectory())
}

func TestCommitInvalidDirectory(t *testing.T) {
	fs := newFakeFS()
	nav, _ := newTestNavigator(fs)

	err := nav.Commit("/nope/also-nope")
	require.ErrorIs(t, err, ErrInvalidDirectory)
	assert.Equal(t, 0, nav.Len())
	assert.Equal(t, -1, nav.Cursor())
}

func TestCommitRemoteSkipsHistoryAndChdir(t *testing.T) {
	fs := newFakeFS()
	nav, bus := newTestNavigator(fs)

	nav.CommitRemote("srv-1", "/remote/data")

	assert.Equal(t, 0, nav.Len())
	assert.Equal(t, "srv-1", nav.RemoteServerID())
	assert.Empty(t, fs.cwd)

	require.Len(t, bus.events, 1)
	ev, ok := bus.events[0].(eventbus.DirectoryChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "/remote/data", ev.Path)
	assert.Equal(t, "srv-1", ev.ServerID)
}

func TestLocalCommitClearsRemoteBinding(t *testing.T) {
	fs := newFakeFS("/a")
	nav, _ := newTestNavigator(fs)

	nav.CommitRemote("srv-1", "/remote/data")
	require.NoError(t, nav.Commit("/a"))
	assert.Equal(t, "", nav.RemoteServerID())
}

func TestCurrentDirectoryFallsBackToHome(t *testing.T) {
	fs := newFakeFS()
	nav, _ := newTestNavigator(fs)
	assert.Equal(t, "/home/user", nav.CurrentDirectory())
}

func TestCurrentDirectoryUsesFixedDirectory(t *testing.T) {
	fs := newFakeFS("/fixed")
	bus := &recordingBus{}
	nav := New(fs, bus, Options{Startup: StartupConfig{
		UseFixedDirectory: true,
		FixedDirectory:    "/fixed",
	}})
	assert.Equal(t, "/fixed", nav.CurrentDirectory())
}

func TestLostFixedDirectoryRestoresDefaults(t *testing.T) {
	fs := newFakeFS()
	bus := &recordingBus{}
	restored := false
	nav := New(fs, bus, Options{Startup: StartupConfig{
		UseFixedDirectory:    true,
		FixedDirectory:       "/gone",
		OnFixedDirectoryLost: func() { restored = true },
	}})

	assert.Equal(t, "/home/user", nav.CurrentDirectory())
	assert.True(t, restored)
}

func TestSeedHistoryLeavesCursorUnset(t *testing.T) {
	fs := newFakeFS("/a", "/b")
	nav, _ := newTestNavigator(fs)

	require.NoError(t, nav.SeedHistory([]string{"/a", "/b"}, ""))
	assert.Equal(t, -1, nav.Cursor())
	assert.Equal(t, []string{"/a", "/b"}, nav.Entries())
	assert.Empty(t, fs.cwd)
}

func TestSeedHistoryCommitsInitial(t *testing.T) {
	fs := newFakeFS("/a", "/b")
	nav, _ := newTestNavigator(fs)

	require.NoError(t, nav.SeedHistory([]string{"/a", "/b"}, "/b"))
	assert.Equal(t, 1, nav.Cursor())
	assert.Equal(t, []string{"/a", "/b"}, nav.Entries())
	assert.Equal(t, "/b", fs.cwd)
}

func TestSeedHistoryInvalidInitialFallsBack(t *testing.T) {
	fs := newFakeFS("/a")
	nav, _ := newTestNavigator(fs)

	require.NoError(t, nav.SeedHistory([]string{"/a"}, "/nope/nothing"))
	assert.Equal(t, "/home/user", nav.CurrentDirectory())
	assert.Equal(t, "/home/user", fs.cwd)
}

func TestSeedHistorySkipsAdjacentDuplicates(t *testing.T) {
	fs := newFakeFS()
	nav, _ := newTestNavigator(fs)

	require.NoError(t, nav.SeedHistory([]string{"/a", "/a", "/b"}, ""))
	assert.Equal(t, []string{"/a", "/b"}, nav.Entries())
}

func TestApplyHistoryRepositionsCursor(t *testing.T) {
	fs := newFakeFS("/a", "/b")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))
	require.NoError(t, nav.Commit("/b"))

	nav.ApplyHistory([]string{"/x", "/b", "/y"})
	assert.Equal(t, 1, nav.Cursor())
	assert.Equal(t, "/b", nav.CurrentDirectory())
}

func TestApplyHistoryKeepsCurrentWhenMissing(t *testing.T) {
	fs := newFakeFS("/a")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))

	nav.ApplyHistory([]string{"/x", "/y"})
	assert.Equal(t, []string{"/x", "/y", "/a"}, nav.Entries())
	assert.Equal(t, 2, nav.Cursor())
	assert.Equal(t, "/a", nav.CurrentDirectory())
}

func TestApplyHistorySkipsAdjacentDuplicates(t *testing.T) {
	fs := newFakeFS("/a")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/a"))

	nav.ApplyHistory([]string{"/x", "/x", "/a", "/y", "/y"})
	assert.Equal(t, []string{"/x", "/a", "/y"}, nav.Entries())
	assert.Equal(t, 1, nav.Cursor())
	assert.Equal(t, "/a", nav.CurrentDirectory())
}

func TestMaxHistoryTrimsOldestEntries(t *testing.T) {
	fs := newFakeFS("/a", "/b", "/c", "/d")
	bus := &recordingBus{}
	nav := New(fs, bus, Options{MaxHistory: 3})

	for _, p := range []string{"/a", "/b", "/c", "/d"} {
		require.NoError(t, nav.Commit(p))
	}
	assert.Equal(t, []string{"/b", "/c", "/d"}, nav.Entries())
	assert.Equal(t, 2, nav.Cursor())
}

func TestParentCommitsParentDirectory(t *testing.T) {
	fs := newFakeFS("/proj", "/proj/sub")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/proj/sub"))

	require.NoError(t, nav.Parent())
	assert.Equal(t, "/proj", nav.CurrentDirectory())
	assert.Equal(t, []string{"/proj/sub", "/proj"}, nav.Entries())
}

func TestParentAtRootFails(t *testing.T) {
	fs := newFakeFS("/")
	nav, _ := newTestNavigator(fs)
	require.NoError(t, nav.Commit("/"))

	require.ErrorIs(t, nav.Parent(), ErrInvalidDirectory)
	assert.Equal(t, "/", nav.CurrentDirectory())
}
