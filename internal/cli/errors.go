// SPDX-License-Identifier: MIT

// Package cli provides shared configuration and utilities for the cliquetree CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitConfig  = 2
	ExitInput   = 3
	ExitQuery   = 4
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err: ExitSuccess for nil,
// the carried code for an *ExitError anywhere in the chain, ExitGeneral
// otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}

// ExitWithError prints the error and exits with the appropriate code.
func ExitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitCode(err))
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}

// ConfigError creates an ExitError with ExitConfig code.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// InputError creates an ExitError with ExitInput code, used when a tree
// file cannot be read or decoded.
func InputError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitInput, Message: msg, Err: err}
}

// QueryError creates an ExitError with ExitQuery code.
func QueryError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitQuery, Message: msg, Err: err}
}
