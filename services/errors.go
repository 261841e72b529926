package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeConfigMissing   ErrorType = "config_missing"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeHTTP            ErrorType = "http_error"
	ErrorTypeTransport       ErrorType = "transport_error"
	ErrorTypeResolver        ErrorType = "resolver_error"
	ErrorTypePaginationLimit ErrorType = "pagination_limit"
	ErrorTypeInternal        ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Configuration errors. These are the only fatal class: the CLIs print
	// them and exit before any network call is made.
	ErrMissingAPIURL   = NewDomainError(ErrorTypeConfigMissing, "OSQUERY_API_URL is required", nil)
	ErrMissingAPIToken = NewDomainError(ErrorTypeConfigMissing, "OSQUERY_API_TOKEN is required", nil)
	ErrInvalidConfig   = NewDomainError(ErrorTypeValidation, "invalid configuration", nil)

	// Fetch errors. Both degrade rather than abort: an HTTP error yields an
	// empty page, a transport error yields the synthetic fallback page.
	ErrUpstreamStatus    = NewDomainError(ErrorTypeHTTP, "upstream returned an error status", nil)
	ErrUpstreamTransport = NewDomainError(ErrorTypeTransport, "upstream unreachable", nil)
	ErrMalformedPage     = NewDomainError(ErrorTypeHTTP, "malformed page body", nil)

	// Pagination cap. Carries partial results; distinct from exhaustion.
	ErrPaginationLimit = NewDomainError(ErrorTypePaginationLimit, "pagination page limit exceeded", nil)

	// Resolver errors. Degrade to error-marker records with zero risk.
	ErrIdentityLookup = NewDomainError(ErrorTypeResolver, "identity lookup failed", nil)
	ErrGeoLookup      = NewDomainError(ErrorTypeResolver, "geo lookup failed", nil)
	ErrUserNotFound   = NewDomainError(ErrorTypeResolver, "user not found", nil)
)

// Error type checking helper functions

// IsConfigError checks if an error is a missing-configuration error
func IsConfigError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeConfigMissing
	}
	return false
}

// IsHTTPError checks if an error is an upstream HTTP status error
func IsHTTPError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeHTTP
	}
	return false
}

// IsTransportError checks if an error is a transport-level error
func IsTransportError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeTransport
	}
	return false
}

// IsResolverError checks if an error is an enrichment resolver error
func IsResolverError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeResolver
	}
	return false
}

// IsPaginationLimit checks if an error is the pagination cap
func IsPaginationLimit(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypePaginationLimit
	}
	return false
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapTransport wraps an error as a transport error
func WrapTransport(message string, err error) error {
	return NewDomainError(ErrorTypeTransport, message, err)
}

// WrapResolver wraps an error as a resolver error
func WrapResolver(message string, err error) error {
	return NewDomainError(ErrorTypeResolver, message, err)
}
