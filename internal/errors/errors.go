package errors

import (
	"fmt"
	"time"
)

// ErrorType classifies grimoire errors
type ErrorType string

const (
	ErrorTypeLoad       ErrorType = "load"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIndex      ErrorType = "index"
	ErrorTypeSearch     ErrorType = "search"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// LoadError represents a failure to acquire a dataset file
type LoadError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewLoadError creates a new load error
func NewLoadError(op, path string, err error) *LoadError {
	return &LoadError{
		Type:       ErrorTypeLoad,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.Path, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *LoadError) Unwrap() error {
	return e.Underlying
}

// ValidationError reports a record that does not satisfy the dataset schema.
// Index is the position of the record in its file, or -1 for file-level problems.
type ValidationError struct {
	Type       ErrorType
	Path       string
	Index      int
	RecordID   string
	Detail     string
	Underlying error
	Timestamp  time.Time
}

// NewValidationError creates a new validation error
func NewValidationError(path string, index int, detail string) *ValidationError {
	return &ValidationError{
		Type:      ErrorTypeValidation,
		Path:      path,
		Index:     index,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}

// WithRecord attaches the offending record id
func (e *ValidationError) WithRecord(id string) *ValidationError {
	e.RecordID = id
	return e
}

// WithCause attaches an underlying error
func (e *ValidationError) WithCause(err error) *ValidationError {
	e.Underlying = err
	return e
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	loc := e.Path
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Path, e.Index)
	}
	if e.RecordID != "" {
		loc = fmt.Sprintf("%s (%s)", loc, e.RecordID)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("invalid record at %s: %s: %v", loc, e.Detail, e.Underlying)
	}
	return fmt.Sprintf("invalid record at %s: %s", loc, e.Detail)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// IndexError represents a failure while building or querying the search index
type IndexError struct {
	Type       ErrorType
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewIndexError creates a new index error
func NewIndexError(op string, err error) *IndexError {
	return &IndexError{
		Type:       ErrorTypeIndex,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s failed: %v", e.Operation, e.Underlying)
}

// Unwrap returns the underlying error
func (e *IndexError) Unwrap() error {
	return e.Underlying
}

// SearchError represents a search operation error
type SearchError struct {
	Type       ErrorType
	Query      string
	Underlying error
	Timestamp  time.Time
}

// NewSearchError creates a new search error
func NewSearchError(query string, err error) *SearchError {
	return &SearchError{
		Type:       ErrorTypeSearch,
		Query:      query,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for query %q: %v", e.Query, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SearchError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, dropping nils
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrOrNil returns nil when no errors were collected
func (e *MultiError) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
