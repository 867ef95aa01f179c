package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNetwork", ErrNetwork},
		{"ErrProtocol", ErrProtocol},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoFiles", ErrNoFiles},
		{"ErrAPIURLNotConfigured", ErrAPIURLNotConfigured},
		{"ErrUnknownSetting", ErrUnknownSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNetwork_Distinct(t *testing.T) {
	assert.Equal(t, "network failure", ErrNetwork.Error())
	assert.False(t, errors.Is(ErrNetwork, ErrProtocol))
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", ErrProtocol)

	assert.True(t, errors.Is(wrapped, ErrProtocol))
	assert.False(t, errors.Is(wrapped, ErrNetwork))
}
