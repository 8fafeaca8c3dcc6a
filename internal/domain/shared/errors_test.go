package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := WrapDomainError(CodeNotFound, "Referral not found", errors.New("404 from upstream"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(fmt.Errorf("loading referral: %w", err), ErrNotFound))
}

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "Resource not found", ErrNotFound.Error())

	wrapped := WrapDomainError(CodeUpstream, "Programmes API request failed", errors.New("connection refused"))
	assert.Equal(t, "Programmes API request failed: connection refused", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "connection refused")
}

func TestDomainError_As(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewDomainError(CodeForbidden, "nope"))

	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeForbidden, domainErr.Code)
}
