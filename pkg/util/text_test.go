package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Ararangua", StripDiacritics("Araranguá"))
	assert.Equal(t, "Alimentacao", StripDiacritics("Alimentação"))
	assert.Equal(t, "ENDERECO", StripDiacritics("ENDEREÇO"))
	assert.Equal(t, "plain", StripDiacritics("plain"))
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ENDEREÇO", "endereco"},
		{"  Endereço (Rua)  ", "endereco rua"},
		{"NOME_FANTASIA", "nome fantasia"},
		{"Telefone/WhatsApp", "telefone whatsapp"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "input %q", tt.in)
	}
}

func TestSqueeze(t *testing.T) {
	assert.Equal(t, "a b c", Squeeze("  a   b \t c  "))
	assert.Equal(t, "", Squeeze("   "))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", Clip("abc", 10))
	assert.Equal(t, "ab", Clip("abcd", 2))
	// rune-safe: must not cut a multibyte character in half
	assert.Equal(t, "çã", Clip("ção", 2))
}
