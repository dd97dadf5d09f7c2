package main

import "fmt"

// Exit codes for the callsight CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid arguments, missing config, or missing API key.
	ExitAnalysis    = 2 // Provider call or response parsing failed.
	ExitLogWrite    = 3 // Analysis succeeded but the CSV row could not be written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// suppressed and only the exit code is used.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := ""
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &exitCodeError{code: code, msg: msg}
}
