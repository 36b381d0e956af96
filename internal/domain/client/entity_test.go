package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidatesPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{"válido nacional", "11999990001", nil},
		{"válido internacional", "+5511999990001", nil},
		{"vazio", "", ErrEmptyPhone},
		{"com letras", "11abc990001", ErrInvalidPhone},
		{"muito curto", "1234567", ErrInvalidPhone},
		{"muito longo", "1234567890123456", ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.phone, "Maria")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.phone, c.Phone)
			assert.Equal(t, StatusActive, c.Status)
		})
	}
}

func TestNewClientRequiresName(t *testing.T) {
	_, err := NewClient("11999990001", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestActivateDeactivate(t *testing.T) {
	c, err := NewClient("11999990001", "Maria")
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive())

	c.Activate()
	assert.True(t, c.IsActive())
}
