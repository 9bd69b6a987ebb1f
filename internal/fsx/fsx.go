// Package fsx abstracts the filesystem operations the navigator needs, so the
// process working directory is only ever touched through an injected
// capability instead of ambient os calls.
package fsx

import (
	"os"
	"path/filepath"
	"sort"
)

// Filesystem is the capability surface used by the navigator and the
// completion service. Implementations must resolve paths the same way the
// operating system would.
type Filesystem interface {
	// Abs returns the absolute form of path
	Abs(path string) (string, error)
	// IsDir reports whether path names an existing directory
	IsDir(path string) bool
	// IsFile reports whether path names an existing regular file
	IsFile(path string) bool
	// Parent returns the parent directory of path
	Parent(path string) string
	// Chdir changes the process working directory
	Chdir(path string) error
	// Getwd returns the process working directory
	Getwd() (string, error)
	// Home returns the user's home directory
	Home() string
	// ReadDirNames returns the names of the subdirectories of path, sorted
	ReadDirNames(path string) ([]string, error)
}

// OS is the real-filesystem implementation
type OS struct{}

// NewOS returns a Filesystem backed by the operating system
func NewOS() OS { return OS{} }

func (OS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OS) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (OS) Parent(path string) string {
	return filepath.Dir(path)
}

func (OS) Chdir(path string) error {
	return os.Chdir(path)
}

func (OS) Getwd() (string, error) {
	return os.Getwd()
}

// Home returns the user home directory, falling back to "/" when it cannot
// be determined
func (OS) Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return string(filepath.Separator)
	}
	return home
}

func (OS) ReadDirNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
