package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// PagerOps handles pager operations
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowTextInPager shows arbitrary text (e.g. help) using the ov pager
func (p *PagerOps) ShowTextInPager(content string) error {
	return p.run(func() (*oviewer.Root, error) {
		return oviewer.NewRoot(strings.NewReader(content))
	})
}

// ShowFileInPager opens a file in the ov pager. This is how go-to-file
// requests surface in a terminal tool that has no editor to hand off to.
func (p *PagerOps) ShowFileInPager(path string) error {
	return p.run(func() (*oviewer.Root, error) {
		return oviewer.Open(path)
	})
}

func (p *PagerOps) run(open func() (*oviewer.Root, error)) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := open()
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
