package canon

import (
	"fmt"
	"strings"
)

// ZoneCompileError is returned when the canonicalizer cannot be run, exits non-zero or
// produces a record line which cannot be parsed. It is always fatal as a zone which
// cannot be compiled must never be silently skipped.
type ZoneCompileError struct {
	Zone   string
	Path   string
	Stderr string // Verbatim canonicalizer error output, if any
	Line   int    // Offending line number of canonical output, if relevant
	Text   string // Offending line, if relevant
	err    error
}

func (t *ZoneCompileError) Error() string {
	msg := fmt.Sprintf("Zone '%s' from %s", t.Zone, t.Path)
	if t.Line > 0 {
		msg += fmt.Sprintf(": canonical line %d '%s'", t.Line, t.Text)
	}
	if t.err != nil {
		msg += ": " + t.err.Error()
	}
	if stderr := strings.TrimSpace(t.Stderr); len(stderr) > 0 {
		msg += "\n" + stderr
	}

	return msg
}

func (t *ZoneCompileError) Unwrap() error {
	return t.err
}
