package transaction

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// UndoFunc reverses one step of a partially applied operation
type UndoFunc func() error

type step struct {
	name string
	undo UndoFunc
}

// Manager records undo steps for a multi-step filesystem change so a failed
// attempt can be cleaned up before the next one starts
type Manager struct {
	steps  []step
	logger *zerolog.Logger
}

// NewManager creates a new transaction manager
func NewManager(logger *zerolog.Logger) *Manager {
	return &Manager{
		steps:  make([]step, 0),
		logger: logger,
	}
}

// Add registers an undo step
func (m *Manager) Add(name string, fn UndoFunc) {
	m.steps = append(m.steps, step{name: name, undo: fn})
}

// Rollback runs every registered undo step in reverse order (LIFO). All
// steps run even when some fail; the failures are joined.
func (m *Manager) Rollback() error {
	if len(m.steps) == 0 {
		return nil
	}

	if m.logger != nil {
		m.logger.Debug().Int("steps", len(m.steps)).Msg("rolling back")
	}

	var errs []error
	for i := len(m.steps) - 1; i >= 0; i-- {
		s := m.steps[i]
		if err := s.undo(); err != nil {
			errs = append(errs, fmt.Errorf("undo %q: %w", s.name, err))
			if m.logger != nil {
				m.logger.Warn().Err(err).Str("step", s.name).Msg("rollback step failed")
			}
		}
	}

	m.steps = nil

	if len(errs) > 0 {
		return fmt.Errorf("rollback completed with errors: %w", errors.Join(errs...))
	}
	return nil
}

// Commit drops the undo steps, keeping the changes
func (m *Manager) Commit() {
	m.steps = nil
}
