package loom

import "go.uber.org/zap"

// logger is the package-wide sink for diagnostics: recovered system panics,
// skipped systems, dropped stale commands, and refused row or resource
// borrows. It defaults to a
// no-op logger so embedding loom never forces a logging backend on callers.
var logger = zap.NewNop()

// SetLogger installs l as loom's diagnostic logger. Passing nil restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
