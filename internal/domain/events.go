package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDirectoryChanged     EventType = "DirectoryChanged"
	EventGoToFile             EventType = "GoToFile"
	EventHistoryChanged       EventType = "HistoryChanged"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
	EventHistoryConfigChanged EventType = "HistoryConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DirectoryChangedEvent is emitted after the working directory has changed.
// ServerID is set when the directory lives in a remote context; remote
// directories bypass local history and the process chdir.
type DirectoryChangedEvent struct {
	Path     string
	ServerID string
}

func (e DirectoryChangedEvent) Type() EventType { return EventDirectoryChanged }

// GoToFileEvent is emitted when a committed path turned out to be a file
// rather than a directory. Line is 0 when no line suffix was given.
type GoToFileEvent struct {
	Path string
	Line int
	Word string
}

func (e GoToFileEvent) Type() EventType { return EventGoToFile }

// HistoryChangedEvent is emitted whenever the navigable history list or the
// cursor position changes
type HistoryChangedEvent struct {
	Entries []string
	Cursor  int
}

func (e HistoryChangedEvent) Type() EventType { return EventHistoryChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	History    []string
	MaxHistory int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// HistoryConfigChangedEvent is emitted when the persisted history list was
// changed from outside the navigator (e.g. the config file was edited)
type HistoryConfigChangedEvent struct {
	History []string
}

func (e HistoryConfigChangedEvent) Type() EventType { return EventHistoryConfigChanged }
