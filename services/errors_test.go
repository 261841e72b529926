package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeResolver, "lookup failed", baseErr)

	assert.Equal(t, ErrorTypeResolver, domainErr.Type)
	assert.Equal(t, "lookup failed", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name: "error with wrapped error",
			err: &DomainError{
				Type:    ErrorTypeTransport,
				Message: "upstream unreachable",
				Err:     errors.New("connection refused"),
			},
			wantMsg: "transport_error: upstream unreachable (connection refused)",
		},
		{
			name: "error without wrapped error",
			err: &DomainError{
				Type:    ErrorTypeConfigMissing,
				Message: "OSQUERY_API_URL is required",
				Err:     nil,
			},
			wantMsg: "config_missing: OSQUERY_API_URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeInternal, "internal error", baseErr)

	unwrapped := errors.Unwrap(domainErr)
	assert.Equal(t, baseErr, unwrapped)
}

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "same error type",
			err:    NewDomainError(ErrorTypeHTTP, "status 503", nil),
			target: ErrUpstreamStatus,
			want:   true,
		},
		{
			name:   "different error type",
			err:    NewDomainError(ErrorTypeTransport, "dial failed", nil),
			target: ErrUpstreamStatus,
			want:   false,
		},
		{
			name:   "not a domain error",
			err:    NewDomainError(ErrorTypeHTTP, "status 500", nil),
			target: errors.New("regular error"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorTypeHTTP, "upstream returned an error status", nil)

	err.WithDetail("status_code", 503).WithDetail("url", "https://osquery.example.com")

	assert.Equal(t, 503, err.Details["status_code"])
	assert.Equal(t, "https://osquery.example.com", err.Details["url"])
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing url", ErrMissingAPIURL, true},
		{"missing token", ErrMissingAPIToken, true},
		{"wrapped config error", fmt.Errorf("startup: %w", ErrMissingAPIURL), true},
		{"transport error", ErrUpstreamTransport, false},
		{"regular error", errors.New("regular"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConfigError(tt.err))
		})
	}
}

func TestIsHTTPError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"upstream status", ErrUpstreamStatus, true},
		{"malformed page", ErrMalformedPage, true},
		{"wrapped http error", fmt.Errorf("fetch: %w", ErrUpstreamStatus), true},
		{"transport error", ErrUpstreamTransport, false},
		{"regular error", errors.New("regular"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTTPError(tt.err))
		})
	}
}

func TestIsTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"upstream transport", ErrUpstreamTransport, true},
		{"wrapped transport", WrapTransport("page fetch", errors.New("dial tcp: refused")), true},
		{"http error", ErrUpstreamStatus, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransportError(tt.err))
		})
	}
}

func TestIsResolverError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"identity lookup", ErrIdentityLookup, true},
		{"geo lookup", ErrGeoLookup, true},
		{"user not found", ErrUserNotFound, true},
		{"wrapped resolver", WrapResolver("directory call", errors.New("timeout")), true},
		{"config error", ErrMissingAPIURL, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsResolverError(tt.err))
		})
	}
}

func TestIsPaginationLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pagination limit", ErrPaginationLimit, true},
		{"wrapped limit", fmt.Errorf("fetch all: %w", ErrPaginationLimit), true},
		{"http error", ErrUpstreamStatus, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPaginationLimit(tt.err))
		})
	}
}

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"config", ErrMissingAPIToken, ErrorTypeConfigMissing},
		{"http", ErrMalformedPage, ErrorTypeHTTP},
		{"transport", ErrUpstreamTransport, ErrorTypeTransport},
		{"resolver", ErrUserNotFound, ErrorTypeResolver},
		{"pagination", ErrPaginationLimit, ErrorTypePaginationLimit},
		{"regular error", errors.New("regular"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorType(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	baseErr := errors.New("base error")
	wrapped := WrapError(ErrorTypeInternal, "wrapped message", baseErr)

	var domainErr *DomainError
	require.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, ErrorTypeInternal, domainErr.Type)
	assert.Equal(t, "wrapped message", domainErr.Message)
	assert.Equal(t, baseErr, errors.Unwrap(wrapped))
}

func TestWrapTransport(t *testing.T) {
	baseErr := errors.New("dial tcp 10.0.0.1:443: connection refused")
	wrapped := WrapTransport("page fetch failed", baseErr)

	assert.True(t, IsTransportError(wrapped))
	assert.Equal(t, baseErr, errors.Unwrap(wrapped))
}

func TestWrapResolver(t *testing.T) {
	baseErr := errors.New("context deadline exceeded")
	wrapped := WrapResolver("geo lookup failed", baseErr)

	assert.True(t, IsResolverError(wrapped))
	assert.Equal(t, baseErr, errors.Unwrap(wrapped))
}

func TestAllErrorVariablesAreDefined(t *testing.T) {
	// Test that all predefined error variables are properly initialized
	errorVars := []error{
		// Configuration
		ErrMissingAPIURL,
		ErrMissingAPIToken,
		ErrInvalidConfig,

		// Fetch
		ErrUpstreamStatus,
		ErrUpstreamTransport,
		ErrMalformedPage,

		// Pagination
		ErrPaginationLimit,

		// Resolvers
		ErrIdentityLookup,
		ErrGeoLookup,
		ErrUserNotFound,
	}

	for _, err := range errorVars {
		assert.NotNil(t, err, "error variable should not be nil")
		assert.NotEmpty(t, err.Error(), "error should have a message")
	}
}

func TestErrorTypeCheckersCoverage(t *testing.T) {
	// Ensure the checker functions line up with their error types
	typeCheckers := map[ErrorType]func(error) bool{
		ErrorTypeConfigMissing:   IsConfigError,
		ErrorTypeHTTP:            IsHTTPError,
		ErrorTypeTransport:       IsTransportError,
		ErrorTypeResolver:        IsResolverError,
		ErrorTypePaginationLimit: IsPaginationLimit,
	}

	for errType, checker := range typeCheckers {
		t.Run(string(errType), func(t *testing.T) {
			err := NewDomainError(errType, "test error", nil)
			assert.True(t, checker(err), "checker should return true for %s", errType)
		})
	}
}
