package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/db"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		nome string
		want string
	}{
		{"Simple name", "Pousada Azul", "pousada-azul"},
		{"Accents folded", "Restaurante São João", "restaurante-sao-joao"},
		{"Punctuation collapsed", "Bar & Grill - Centro!", "bar-grill-centro"},
		{"Extra spaces", "  Hotel   Mar  ", "hotel-mar"},
		{"Cedilla", "Espaço Criança", "espaco-crianca"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.GenerateSlug(tt.nome))
		})
	}
}

func TestEmpresa_SlugOnCreate(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	user := model.User{Username: "dono", Email: "dono@example.com", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)

	first := model.Empresa{UserID: user.ID, Nome: "Pousada Azul"}
	require.NoError(t, testDB.Create(&first).Error)
	assert.Equal(t, "pousada-azul", first.Slug)

	// same name gets a numeric suffix
	second := model.Empresa{UserID: user.ID, Nome: "Pousada Azul"}
	require.NoError(t, testDB.Create(&second).Error)
	assert.Equal(t, "pousada-azul-1", second.Slug)

	third := model.Empresa{UserID: user.ID, Nome: "Pousada Azul"}
	require.NoError(t, testDB.Create(&third).Error)
	assert.Equal(t, "pousada-azul-2", third.Slug)
}

func TestEmpresa_SlugOnRename(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	user := model.User{Username: "dono", Email: "dono@example.com", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)

	empresa := model.Empresa{UserID: user.ID, Nome: "Pousada Azul"}
	require.NoError(t, testDB.Create(&empresa).Error)
	require.Equal(t, "pousada-azul", empresa.Slug)

	empresa.Nome = "Pousada Verde"
	require.NoError(t, testDB.Save(&empresa).Error)
	assert.Equal(t, "pousada-verde", empresa.Slug)

	// updating without touching the name keeps the slug
	empresa.Cidade = "Araranguá"
	require.NoError(t, testDB.Save(&empresa).Error)

	var reloaded model.Empresa
	require.NoError(t, testDB.First(&reloaded, empresa.ID).Error)
	assert.Equal(t, "pousada-verde", reloaded.Slug)
}
