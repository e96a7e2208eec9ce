package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeExtraction represents a per-item extraction failure
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeSourceUnavailable represents navigation/timeout failures of a source
	ErrorTypeSourceUnavailable ErrorType = "source_unavailable"
	// ErrorTypeEmptyResult represents a run that completed with zero records
	ErrorTypeEmptyResult ErrorType = "empty_result"
	// ErrorTypePersistence represents store read/write errors
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a pipeline-specific error
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsFallbackTrigger returns true if the error replaces a run's output with
// the source's fallback dataset
func (e *ScrapeError) IsFallbackTrigger() bool {
	switch e.Type {
	case ErrorTypeSourceUnavailable, ErrorTypeEmptyResult:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewExtraction creates a new per-item extraction error
func NewExtraction(source, message string) *ScrapeError {
	return New(ErrorTypeExtraction, source, message, nil)
}

// NewSourceUnavailable creates a new source unavailability error
func NewSourceUnavailable(source, message string, err error) *ScrapeError {
	return New(ErrorTypeSourceUnavailable, source, message, err)
}

// NewEmptyResult creates a new empty-result error
func NewEmptyResult(source string) *ScrapeError {
	return New(ErrorTypeEmptyResult, source, "run yielded zero records", nil)
}

// NewPersistence creates a new persistence error
func NewPersistence(source, message string, err error) *ScrapeError {
	return New(ErrorTypePersistence, source, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewCache creates a new cache error
func NewCache(source, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, source, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
