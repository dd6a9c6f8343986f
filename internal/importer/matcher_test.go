package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/internal/db"
)

func testImportConfig() *config.ImportConfig {
	return &config.ImportConfig{
		DefaultCidade: "Araranguá",
		DefaultLat:    -28.9371,
		DefaultLng:    -49.484,
	}
}

func setupMatcherTest(t *testing.T) (*Matcher, *gorm.DB, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	owner := model.User{Username: "importador", Email: "imp@example.com", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&owner).Error)

	matcher := NewMatcher(repository.NewEmpresaRepository(testDB), testImportConfig())
	return matcher, testDB, owner.ID
}

func TestMatcher_CreateWithDefaults(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	rec := &Record{Nome: "Bar do Zé"}
	empresa, outcome, err := matcher.Upsert(rec, ownerID)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCriada, outcome)
	assert.Equal(t, ownerID, empresa.UserID)
	assert.Equal(t, "Araranguá", empresa.Cidade)
	assert.Equal(t, model.DefaultDescricao, empresa.Descricao)
	assert.InDelta(t, -28.9371, empresa.Latitude, 1e-6)
	assert.InDelta(t, -49.484, empresa.Longitude, 1e-6)
	assert.True(t, empresa.SemTelefone)
	assert.True(t, empresa.SemEmail)
	assert.NotEmpty(t, empresa.Slug)
}

func TestMatcher_MatchByTelefone(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	first, outcome, err := matcher.Upsert(&Record{
		Nome:     "Bar do Zé",
		Telefone: "48999998888",
	}, ownerID)
	require.NoError(t, err)
	require.Equal(t, OutcomeCriada, outcome)

	// different name, same phone: must update the existing listing
	second, outcome, err := matcher.Upsert(&Record{
		Nome:     "Bar do Zé Novo",
		Telefone: "48999998888",
		Bairro:   "Centro",
	}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAtualizada, outcome)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Bar do Zé Novo", second.Nome)
	assert.Equal(t, "Centro", second.Bairro)
}

func TestMatcher_MatchByCnpj(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	first, _, err := matcher.Upsert(&Record{
		Nome: "Pousada Azul",
		Cnpj: "11222333000181",
	}, ownerID)
	require.NoError(t, err)

	second, outcome, err := matcher.Upsert(&Record{
		Nome:   "Pousada Azul Praia",
		Cnpj:   "11222333000181",
		Cidade: "Balneário Arroio do Silva",
	}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAtualizada, outcome)
	assert.Equal(t, first.ID, second.ID)
}

func TestMatcher_MatchByNomeInsensitive(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	first, _, err := matcher.Upsert(&Record{Nome: "Pousada Azul"}, ownerID)
	require.NoError(t, err)

	second, outcome, err := matcher.Upsert(&Record{Nome: "POUSADA AZUL"}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	// nothing but the name casing differs, so the row is unchanged
	assert.Equal(t, OutcomeInalterada, outcome)
}

func TestMatcher_ReimportUnchanged(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	rec := &Record{
		Nome:     "Pousada Azul",
		Telefone: "48999998888",
		Bairro:   "Centro",
		Cnpj:     "11222333000181",
	}

	_, outcome, err := matcher.Upsert(rec, ownerID)
	require.NoError(t, err)
	require.Equal(t, OutcomeCriada, outcome)

	_, outcome, err = matcher.Upsert(rec, ownerID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInalterada, outcome)
}

func TestMatcher_EmptyFieldsDoNotErase(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	_, _, err := matcher.Upsert(&Record{
		Nome:     "Pousada Azul",
		Telefone: "48999998888",
		Bairro:   "Centro",
		Cadastur: "12.345",
	}, ownerID)
	require.NoError(t, err)

	// sparse re-import: phone matches, other fields empty
	updated, outcome, err := matcher.Upsert(&Record{
		Nome:     "Pousada Azul",
		Telefone: "48999998888",
	}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInalterada, outcome)
	assert.Equal(t, "Centro", updated.Bairro)
	assert.Equal(t, "12.345", updated.Cadastur)
}

func TestMatcher_CoordsOnlyWhenExtracted(t *testing.T) {
	matcher, _, ownerID := setupMatcherTest(t)

	created, _, err := matcher.Upsert(&Record{
		Nome:      "Pousada Azul",
		Latitude:  -28.95,
		Longitude: -49.5,
		HasCoords: true,
	}, ownerID)
	require.NoError(t, err)
	assert.InDelta(t, -28.95, created.Latitude, 1e-6)

	// re-import without coordinates keeps the stored position
	updated, _, err := matcher.Upsert(&Record{
		Nome:   "Pousada Azul",
		Bairro: "Centro",
	}, ownerID)
	require.NoError(t, err)
	assert.InDelta(t, -28.95, updated.Latitude, 1e-6)
	assert.InDelta(t, -49.5, updated.Longitude, 1e-6)
}
