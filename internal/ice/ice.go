// Package ice carries the "internal compiler error" used when the binder or
// checker observes a broken invariant rather than a user mistake: a missing
// symbol, an unknown node kind reaching a dispatcher, a declaration set with
// no producible type. These indicate a Parser/Binder contract violation
// (spec §7), not something a source file can trigger through normal use, so
// they panic instead of going through the diagnostics sink.
package ice

import "fmt"

// Error is the panic value raised by Panic. The pipeline recovers it at each
// stage boundary and records it as the compile's internal error, which the
// CLI driver reports distinctly from ordinary diagnostics.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Panic raises an internal compiler error with an fmt.Sprintf-formatted
// message.
func Panic(format string, args ...any) {
	panic(&Error{msg: fmt.Sprintf(format, args...)})
}
