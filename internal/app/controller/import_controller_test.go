package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/db"
	"github.com/arutourism/arutourism-backend/internal/importer"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

func setupImportControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	importCfg := &config.ImportConfig{
		DefaultCidade: "Araranguá",
		DefaultLat:    -28.9371,
		DefaultLng:    -49.4840,
	}
	ctrl := NewImportController(importer.New(testDB, importCfg))
	authMiddleware := middleware.NewAuthMiddleware(testControllerSecret)

	router := gin.New()
	router.POST("/empresas/importar", authMiddleware.Authenticate(), ctrl.Import)
	router.GET("/empresas/importar/modelo", ctrl.Template)

	return router, testDB
}

func uploadCSV(router *gin.Engine, path, filename, content, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("arquivo", filename)
	part.Write([]byte(content))
	writer.Close()

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportController_Import(t *testing.T) {
	router, testDB := setupImportControllerTest(t)
	_, token := seedControllerUser(t, testDB, "dona", "user")

	csv := "NOME,TELEFONE,BAIRRO\nPousada Azul,(48) 99999-8888,Centro\nBar do Zé,,Urussanguinha\n"
	w := uploadCSV(router, "/empresas/importar", "empresas.csv", csv, token)

	require.Equal(t, http.StatusOK, w.Code)

	var summary importer.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.True(t, summary.Ok)
	assert.Equal(t, 2, summary.Criadas)

	var count int64
	require.NoError(t, testDB.Model(&model.Empresa{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestImportController_ImportErrors(t *testing.T) {
	router, testDB := setupImportControllerTest(t)
	_, token := seedControllerUser(t, testDB, "dona", "user")

	t.Run("Requires auth", func(t *testing.T) {
		w := uploadCSV(router, "/empresas/importar", "empresas.csv", "NOME\nPousada\n", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing file field", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/empresas/importar", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "arquivo")
	})

	t.Run("Unknown formato", func(t *testing.T) {
		w := uploadCSV(router, "/empresas/importar?formato=xml", "empresas.csv", "NOME\nPousada\n", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		w := uploadCSV(router, "/empresas/importar", "empresas.pdf", "NOME\nPousada\n", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Formato de arquivo não suportado")
	})

	t.Run("No data rows", func(t *testing.T) {
		w := uploadCSV(router, "/empresas/importar", "empresas.csv", "NOME,TELEFONE\n", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "não contém dados")
	})

	t.Run("Unrecognized headers", func(t *testing.T) {
		w := uploadCSV(router, "/empresas/importar", "empresas.csv", "FOO,BAR\nx,y\n", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Nenhuma coluna reconhecida")
	})
}

func TestImportController_Template(t *testing.T) {
	router, _ := setupImportControllerTest(t)

	req := httptest.NewRequest("GET", "/empresas/importar/modelo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "modelo_empresas.xlsx")
	assert.NotZero(t, w.Body.Len())
}
