// Package parsererror holds the typed errors shared across quickspend. Each type
// wraps its cause so callers can match sentinels with errors.Is.
package parsererror

import "fmt"

// ParseError reports a value that could not be parsed into a field.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports input rejected by a store or the configuration.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// CategorizationError is returned when a provider could not categorize a description.
type CategorizationError struct {
	Description string
	Provider    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for '%s' using %s: %v", e.Description, e.Provider, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// StoreError wraps a persistence failure of one of the local stores.
type StoreError struct {
	Store string
	Op    string
	Path  string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s store: %s: %v", e.Store, e.Op, e.Err)
	}
	return fmt.Sprintf("%s store: %s %s: %v", e.Store, e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
