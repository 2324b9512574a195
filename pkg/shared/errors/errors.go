package errors

import (
	"fmt"
)

// RuleIndexError is returned when a result references a rule id that the rule
// catalog built from the same findings does not contain. It signals a broken
// conversion pipeline, not bad user input.
type RuleIndexError struct {
	RuleID string
}

// Error implements the error interface for RuleIndexError.
func (e *RuleIndexError) Error() string {
	return fmt.Sprintf("rule %q is missing from the rule catalog", e.RuleID)
}

// NewRuleIndexError creates a RuleIndexError for the given rule id.
func NewRuleIndexError(ruleID string) error {
	return &RuleIndexError{RuleID: ruleID}
}

// InputFormatError reports an input document that matches no known axe result shape.
type InputFormatError struct {
	Source string
	Reason string
}

// Error implements the error interface for InputFormatError.
func (e *InputFormatError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("unrecognized axe result format: %s", e.Reason)
	}
	return fmt.Sprintf("unrecognized axe result format in %q: %s", e.Source, e.Reason)
}

// NewInputFormatError creates an InputFormatError.
func NewInputFormatError(source, reason string) error {
	return &InputFormatError{Source: source, Reason: reason}
}

// Exit codes returned by the command line.
const (
	ExitCodeOK            = 0
	ExitCodeFailure       = 1
	ExitCodeInvalidInput  = 2
	ExitCodeInternalFault = 3
)

// CommandError carries the exit code a failed command should terminate with.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface, returning the message of the wrapped error.
func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      err,
	}
}
