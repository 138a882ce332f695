package formstate

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-unitform/pkg/unit"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger attaches a zap logger. Edits are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStrict surfaces out-of-range targets, deletes of the last element, and
// malformed identifiers as errors instead of treating them as no-ops.
func WithStrict(strict bool) Option {
	return func(m *Manager) {
		m.strict = strict
	}
}

// WithInitialState replaces the default initial unit.
func WithInitialState(state unit.StorageUnit) Option {
	return func(m *Manager) {
		m.state = state.Clone()
	}
}
