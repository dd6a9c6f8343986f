package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"Mobile with formatting", "(48) 99999-8888", "48999998888", false},
		{"Mobile bare digits", "48999998888", "48999998888", false},
		{"Landline", "(48) 3524-1234", "4835241234", false},
		{"With country code", "+55 48 99999-8888", "48999998888", false},
		{"Empty passes through", "", "", false},
		{"Garbage", "abc", "", true},
		{"Too short", "123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("(48) 99999-8888"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("123"))
}
