package config

import "sync"

// Saver serializes mutation and persistence of the shared runtime Config.
// The history write-back runs on the bus dispatcher goroutine while startup
// settings change from the UI goroutine; funneling both through Update keeps
// them from racing on the same struct.
type Saver struct {
	mu  sync.Mutex
	svc ConfigService
	cfg *Config
}

// NewSaver wraps cfg so it is only mutated and saved under one lock
func NewSaver(svc ConfigService, cfg *Config) *Saver {
	return &Saver{svc: svc, cfg: cfg}
}

// Update applies mutate to the config and saves the result atomically with
// respect to other Update calls
func (s *Saver) Update(mutate func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(s.cfg)
	return s.svc.Save(s.cfg)
}
