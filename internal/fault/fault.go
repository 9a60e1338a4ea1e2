// SPDX-License-Identifier: MIT

// Package fault defines the two-line configuration error used by every
// model loader: a first line saying what failed, a second line giving the
// context needed to fix it.
package fault

import "fmt"

// Error is a configuration or data error raised while building model tables.
// Err is the package sentinel, matched with errors.Is.
type Error struct {
	Op      string // function or stage that failed
	What    string // first line: what failed
	Context string // second line: where / how to fix
	Err     error  // sentinel
}

// New builds an *Error.
func New(op string, sentinel error, what, context string) *Error {
	return &Error{Op: op, What: what, Context: context, Err: sentinel}
}

// Newf builds an *Error with formatted lines. The two format strings and
// their arguments are split by the caller.
func Newf(op string, sentinel error, what string, context string, args ...interface{}) *Error {
	return &Error{Op: op, What: what, Context: fmt.Sprintf(context, args...), Err: sentinel}
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.What)
	}

	return fmt.Sprintf("%s: %s\n\t%s", e.Op, e.What, e.Context)
}

// Unwrap exposes the sentinel.
func (e *Error) Unwrap() error { return e.Err }
