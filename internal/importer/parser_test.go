package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardHeaderMap() map[int]string {
	return BuildHeaderMap([]string{
		"CNPJ", "CATEGORIA (RAMO ATIVIDADE)", "NOME", "ENDEREÇO 2",
		"ENDEREÇO", "NÚMERO", "CIDADE", "C.E.P.", "TELEFONE",
		"CONTATO DIRETO", "DIGITAL (SITE/REDES)", "CADASTUR",
		"MAPS (LINK)", "APP", "DESCRIÇÃO",
	})
}

func TestParseStandardRow(t *testing.T) {
	row := []string{
		"11.222.333/0001-81",
		"Hospedagem, Pousada",
		"  Pousada  Azul  ",
		"Centro",
		"Av. Sete de Setembro",
		"123",
		"Araranguá",
		"88900-000",
		"(48) 99999-8888",
		"Dona Maria",
		"https://instagram.com/pousadaazul",
		"12.345",
		"https://maps.google.com/?q=-28.937100,-49.484000",
		"https://app.example.com",
		"Pousada familiar.",
	}

	rec, err := ParseStandardRow(standardHeaderMap(), row)
	require.NoError(t, err)

	assert.Equal(t, "Pousada Azul", rec.Nome)
	assert.Equal(t, []string{"Hospedagem", "Pousada"}, rec.Categorias)
	assert.Equal(t, "11222333000181", rec.Cnpj)
	assert.Equal(t, "Centro", rec.Bairro)
	assert.Equal(t, "Av. Sete de Setembro", rec.Endereco)
	assert.Equal(t, "123", rec.Numero)
	assert.Equal(t, "Araranguá", rec.Cidade)
	assert.Equal(t, "88900000", rec.Cep)
	assert.Equal(t, "48999998888", rec.Telefone)
	assert.Equal(t, "Dona Maria", rec.ContatoDireto)
	assert.Equal(t, "12.345", rec.Cadastur)
	assert.Equal(t, "https://instagram.com/pousadaazul", rec.Instagram)
	assert.Equal(t, "Pousada familiar.", rec.Descricao)

	require.True(t, rec.HasCoords)
	assert.InDelta(t, -28.9371, rec.Latitude, 1e-6)
	assert.InDelta(t, -49.484, rec.Longitude, 1e-6)
}

func TestParseStandardRow_MissingNome(t *testing.T) {
	row := make([]string, 15)
	row[0] = "11222333000181"

	rec, err := ParseStandardRow(standardHeaderMap(), row)
	assert.ErrorIs(t, err, ErrMissingNome)
	assert.Nil(t, rec)
}

func TestParseStandardRow_ShortRow(t *testing.T) {
	// rows may have fewer cells than the header; missing cells are empty
	rec, err := ParseStandardRow(standardHeaderMap(), []string{"", "", "Bar do Zé"})
	require.NoError(t, err)

	assert.Equal(t, "Bar do Zé", rec.Nome)
	assert.Empty(t, rec.Cnpj)
	assert.Empty(t, rec.Telefone)
	assert.False(t, rec.HasCoords)
}

func TestParseStandardRow_DuplicateColumnLastWins(t *testing.T) {
	headerMap := BuildHeaderMap([]string{"NOME", "TELEFONE", "WHATSAPP"})
	require.Equal(t, KeyTelefone, headerMap[1])
	require.Equal(t, KeyTelefone, headerMap[2])

	rec, err := ParseStandardRow(headerMap, []string{"Bar do Zé", "(48) 3524-1234", "(48) 99999-8888"})
	require.NoError(t, err)
	assert.Equal(t, "48999998888", rec.Telefone)

	// an empty later duplicate also wins, clearing the earlier value
	rec, err = ParseStandardRow(headerMap, []string{"Bar do Zé", "(48) 3524-1234", ""})
	require.NoError(t, err)
	assert.Equal(t, "", rec.Telefone)
}

func TestClassifyDigital(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantInstagram string
		wantFacebook  string
		wantSite      string
	}{
		{"Instagram", "https://instagram.com/bar", "https://instagram.com/bar", "", ""},
		{"Facebook", "https://facebook.com/bar", "", "https://facebook.com/bar", ""},
		{"Facebook short", "fb.com/bar", "", "fb.com/bar", ""},
		{"Generic site", "www.bar.com.br", "", "", "www.bar.com.br"},
		{"Free text untouched", "só whatsapp", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{}
			classifyDigital(rec, tt.raw)
			assert.Equal(t, tt.wantInstagram, rec.Instagram)
			assert.Equal(t, tt.wantFacebook, rec.Facebook)
			assert.Equal(t, tt.wantSite, rec.Site)
			if tt.raw != "" {
				assert.Equal(t, tt.raw, rec.Digital)
			}
		})
	}
}

func TestSplitCategorias(t *testing.T) {
	assert.Equal(t, []string{"Hospedagem", "Pousada"}, splitCategorias("Hospedagem , Pousada"))
	assert.Nil(t, splitCategorias("  "))
	assert.Equal(t, []string{"Lazer"}, splitCategorias("Lazer,"))
}
