package utils

import (
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicketNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^TKT-[A-Z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		number, err := GenerateTicketNumber()
		require.NoError(t, err)
		assert.Regexp(t, pattern, number)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("   \t"))
	got := OptionalString("  a@b.io ")
	require.NotNil(t, got)
	assert.Equal(t, "a@b.io", *got)
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, "medium", StringOr("  ", "medium"))
	assert.Equal(t, "high", StringOr(" high ", "medium"))
}

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   ErrorKind
	}{
		{"validation", NewRequiredFieldError("ticket_title"), http.StatusBadRequest, KindValidation},
		{"not found", NewNotFound("Ticket"), http.StatusNotFound, KindNotFound},
		{"consistency", NewConsistencyError("customer vanished"), http.StatusInternalServerError, KindConsistency},
		{"store", NewStoreError("Failed to fetch tickets", errors.New("socket closed")), http.StatusInternalServerError, KindStore},
		{"plain", errors.New("boom"), http.StatusInternalServerError, KindStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.status, got.HTTPStatus)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}

	assert.Nil(t, ToDomainError(nil))
	assert.Equal(t, "ticket_title is required", NewRequiredFieldError("ticket_title").Error())
}

func TestNewStoreErrorKeepsDomainErrors(t *testing.T) {
	notFound := NewNotFound("Ticket")
	assert.Same(t, notFound, NewStoreError("Failed to update ticket", notFound))
	assert.Nil(t, NewStoreError("noop", nil))

	wrapped := ToDomainError(NewStoreError("Failed to fetch tickets", errors.New("socket closed")))
	assert.Equal(t, "Failed to fetch tickets", wrapped.Message)
	assert.Equal(t, "socket closed", wrapped.Details)
	assert.True(t, IsKind(wrapped, KindStore))
}
