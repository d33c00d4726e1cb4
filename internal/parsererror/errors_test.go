package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse error",
			err:  &ParseError{Field: "amount", Value: "12,x", Err: errSentinel},
			want: "failed to parse amount='12,x': sentinel",
		},
		{
			name: "validation error with value",
			err:  &ValidationError{Field: "category", Value: "Food", Reason: "already exists"},
			want: "invalid category 'Food': already exists",
		},
		{
			name: "validation error without value",
			err:  &ValidationError{Field: "category", Reason: "name must not be empty"},
			want: "invalid category: name must not be empty",
		},
		{
			name: "categorization error",
			err:  &CategorizationError{Description: "coffee", Provider: "gemini", Err: errSentinel},
			want: "categorization failed for 'coffee' using gemini: sentinel",
		},
		{
			name: "store error with path",
			err:  &StoreError{Store: "categories", Op: "read", Path: "/tmp/c.yaml", Err: errSentinel},
			want: "categories store: read /tmp/c.yaml: sentinel",
		},
		{
			name: "store error without path",
			err:  &StoreError{Store: "ledger", Op: "insert", Err: errSentinel},
			want: "ledger store: insert: sentinel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnwrapChains(t *testing.T) {
	wrapped := fmt.Errorf("%w: deadline", errSentinel)

	for _, err := range []error{
		&ParseError{Err: wrapped},
		&CategorizationError{Err: wrapped},
		&StoreError{Err: wrapped},
	} {
		assert.ErrorIs(t, err, errSentinel)
	}

	var catErr *CategorizationError
	outer := fmt.Errorf("resolve: %w", &CategorizationError{Provider: "claude", Err: errSentinel})
	assert.ErrorAs(t, outer, &catErr)
	assert.Equal(t, "claude", catErr.Provider)
}
