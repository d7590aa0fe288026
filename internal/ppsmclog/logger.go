// Package ppsmclog provides the package-level structured logger used to
// report per-phase statistics and engine progress (spec.md section 4.6,
// "Statistics"). It mirrors the global-swappable-logger pattern from
// eventloop/logging.go: a mutex-guarded package variable with a no-op
// fallback, rather than threading a logger through every constructor.
package ppsmclog

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

var global struct {
	sync.RWMutex
	logger *logiface.Logger[*stumpy.Event]
}

// SetLogger sets the package-level logger. Passing nil restores the no-op
// default.
func SetLogger(logger *logiface.Logger[*stumpy.Event]) {
	global.Lock()
	defer global.Unlock()
	global.logger = logger
}

// Logger returns the current package-level logger, falling back to a
// disabled no-op logger (logging nothing, at no cost beyond the call
// itself) if none has been configured.
func Logger() *logiface.Logger[*stumpy.Event] {
	global.RLock()
	defer global.RUnlock()
	if global.logger != nil {
		return global.logger
	}
	return noop
}

// noop discards everything logged through it, by way of a level that never
// enables any of the builder methods.
var noop = stumpy.L.New()

// NewStderrLogger builds a JSON logger writing to stderr, suitable for
// passing to SetLogger from cmd/ppsmc's `-v` flag handling.
func NewStderrLogger() *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(stumpy.L.WithStumpy())
}
