// Package report renders overload resolution diagnostics.
//
// Output is a pure function of the overload set snapshot and the call
// arguments: candidates are listed in registration order and lines are
// joined with "\n" without a trailing newline, so the text is stable enough
// for golden tests.
package report
