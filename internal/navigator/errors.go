package navigator

import "errors"

// Navigation errors. All of them are recoverable: history and cursor are
// guaranteed consistent after every call regardless of outcome.
var (
	// ErrInvalidDirectory means the resolved path is not a usable directory
	// and no valid parent exists
	ErrInvalidDirectory = errors.New("not a valid directory")

	// ErrDirectoryChangeFailed means the filesystem rejected the working
	// directory change after validation passed
	ErrDirectoryChangeFailed = errors.New("could not change working directory")

	// ErrNoHistory means back/forward was requested with no further entries
	// in that direction
	ErrNoHistory = errors.New("no more history in that direction")
)
