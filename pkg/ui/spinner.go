// Package ui provides terminal progress feedback for long-running
// operations, chiefly the ILP solver's MILP proof search.
package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"

	"github.com/hexsolve/hexsolve/pkg/hexlog"
)

// Spinner wraps github.com/briandowns/spinner to provide UX consistent
// across the CLI's long-running commands.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a new spinner with a default configuration.
func NewSpinner(msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	_ = s.Color("cyan", "bold")
	return &Spinner{s: s}
}

// Start starts the spinner if verbose mode is disabled.
func (s *Spinner) Start() {
	if !hexlog.VerboseEnabled {
		s.s.Start()
	}
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	s.s.Stop()
}

// UpdateMessage updates the spinner's suffix message.
func (s *Spinner) UpdateMessage(format string, args ...interface{}) {
	s.s.Suffix = " " + fmt.Sprintf(format, args...)
}

// LogInfo stops the spinner, prints an info message, and restarts the
// spinner, so a logged line never tears mid-frame.
func (s *Spinner) LogInfo(format string, args ...interface{}) {
	wasRunning := s.s.Active()
	if wasRunning {
		s.s.Stop()
	}
	hexlog.Info(format, args...)
	if wasRunning && !hexlog.VerboseEnabled {
		s.s.Start()
	}
}

// LogWarning stops the spinner, prints a warning message, and restarts
// the spinner.
func (s *Spinner) LogWarning(format string, args ...interface{}) {
	wasRunning := s.s.Active()
	if wasRunning {
		s.s.Stop()
	}
	hexlog.Warning(format, args...)
	if wasRunning && !hexlog.VerboseEnabled {
		s.s.Start()
	}
}
