package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/internal/app/service"
	"github.com/arutourism/arutourism-backend/internal/db"
	"github.com/arutourism/arutourism-backend/internal/middleware"
	"github.com/arutourism/arutourism-backend/pkg/util"
)

func setupEmpresaControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, service.EmpresaService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	importCfg := &config.ImportConfig{
		DefaultCidade: "Araranguá",
		DefaultLat:    -28.9371,
		DefaultLng:    -49.4840,
	}
	empresaService := service.NewEmpresaService(
		repository.NewEmpresaRepository(testDB),
		repository.NewTagRepository(testDB),
		importCfg,
	)

	ctrl := NewEmpresaController(empresaService)
	authMiddleware := middleware.NewAuthMiddleware(testControllerSecret)

	router := gin.New()
	empresas := router.Group("/empresas")
	{
		empresas.GET("", ctrl.List)
		empresas.GET("/filtros", ctrl.FilterOptions)
		empresas.GET("/slug/:slug", ctrl.GetBySlug)
		empresas.GET("/minhas", authMiddleware.Authenticate(), ctrl.ListMine)
		empresas.GET("/:id", ctrl.GetByID)
		empresas.POST("", authMiddleware.Authenticate(), ctrl.Create)
		empresas.PUT("/:id", authMiddleware.Authenticate(), ctrl.Update)
		empresas.DELETE("/:id", authMiddleware.Authenticate(), ctrl.Delete)
	}

	return router, testDB, empresaService
}

func seedControllerUser(t *testing.T, testDB *gorm.DB, username, role string) (model.User, string) {
	t.Helper()
	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         model.UserRole(role),
	}
	require.NoError(t, testDB.Create(&user).Error)

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, role, testControllerSecret,
		15*time.Minute, 7*24*time.Hour,
	)
	require.NoError(t, err)
	return user, tokens.AccessToken
}

func getPath(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEmpresaController_CreateAndGet(t *testing.T) {
	router, testDB, _ := setupEmpresaControllerTest(t)
	_, token := seedControllerUser(t, testDB, "dona", "user")

	w := postJSON(router, "/empresas", EmpresaRequest{
		Nome:     "Pousada Azul",
		Cnpj:     "11.222.333/0001-81",
		Telefone: "(48) 99999-8888",
		Bairro:   "Centro",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Empresa model.Empresa `json:"empresa"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pousada-azul", created.Empresa.Slug)
	assert.Equal(t, "Araranguá", created.Empresa.Cidade)

	t.Run("By ID", func(t *testing.T) {
		w := getPath(router, "/empresas/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Pousada Azul")
	})

	t.Run("By slug", func(t *testing.T) {
		w := getPath(router, "/empresas/slug/pousada-azul", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown slug", func(t *testing.T) {
		w := getPath(router, "/empresas/slug/nao-existe", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		w := getPath(router, "/empresas/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Identificador inválido")
	})

	t.Run("Requires auth", func(t *testing.T) {
		w := postJSON(router, "/empresas", EmpresaRequest{Nome: "Sem Dono"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Nome is required", func(t *testing.T) {
		w := postJSON(router, "/empresas", EmpresaRequest{Bairro: "Centro"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid CNPJ", func(t *testing.T) {
		w := postJSON(router, "/empresas", EmpresaRequest{Nome: "Outra", Cnpj: "123"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CNPJ inválido")
	})

	t.Run("Duplicate CNPJ", func(t *testing.T) {
		w := postJSON(router, "/empresas", EmpresaRequest{Nome: "Outra", Cnpj: "11222333000181"}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmpresaController_ListAndFilter(t *testing.T) {
	router, testDB, empresaService := setupEmpresaControllerTest(t)
	owner, _ := seedControllerUser(t, testDB, "dona", "user")

	tag := model.Tag{Nome: "Hospedagem"}
	require.NoError(t, testDB.Create(&tag).Error)

	_, err := empresaService.Create(owner.ID, service.EmpresaInput{
		Nome:   "Pousada Azul",
		Bairro: "Centro",
		TagIDs: []uint{tag.ID},
	})
	require.NoError(t, err)
	_, err = empresaService.Create(owner.ID, service.EmpresaInput{
		Nome:   "Bar do Zé",
		Bairro: "Urussanguinha",
	})
	require.NoError(t, err)

	t.Run("Full catalog", func(t *testing.T) {
		w := getPath(router, "/empresas", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Empresas []model.Empresa `json:"empresas"`
			Total    int64           `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.Total)
	})

	t.Run("Search", func(t *testing.T) {
		w := getPath(router, "/empresas?busca=pousada", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Pousada Azul")
		assert.NotContains(t, w.Body.String(), "Bar do Zé")
	})

	t.Run("Filter by tag", func(t *testing.T) {
		w := getPath(router, "/empresas?tags=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Pousada Azul")
		assert.NotContains(t, w.Body.String(), "Bar do Zé")
	})

	t.Run("Invalid tag filter", func(t *testing.T) {
		w := getPath(router, "/empresas?tags=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Filter options", func(t *testing.T) {
		w := getPath(router, "/empresas/filtros", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Centro")
		assert.Contains(t, w.Body.String(), "Urussanguinha")
	})
}

func TestEmpresaController_ListMine(t *testing.T) {
	router, testDB, empresaService := setupEmpresaControllerTest(t)
	owner, ownerToken := seedControllerUser(t, testDB, "dona", "user")
	_, otherToken := seedControllerUser(t, testDB, "outro", "user")

	_, err := empresaService.Create(owner.ID, service.EmpresaInput{Nome: "Pousada Azul"})
	require.NoError(t, err)

	w := getPath(router, "/empresas/minhas", ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = getPath(router, "/empresas/minhas", otherToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = getPath(router, "/empresas/minhas", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmpresaController_UpdatePermissions(t *testing.T) {
	router, testDB, empresaService := setupEmpresaControllerTest(t)
	owner, ownerToken := seedControllerUser(t, testDB, "dona", "user")
	_, strangerToken := seedControllerUser(t, testDB, "outro", "user")
	_, adminToken := seedControllerUser(t, testDB, "chefe", "admin")

	_, err := empresaService.Create(owner.ID, service.EmpresaInput{Nome: "Pousada Azul"})
	require.NoError(t, err)

	t.Run("Stranger denied", func(t *testing.T) {
		w := putJSON(router, "/empresas/1", EmpresaRequest{Nome: "Invadida"}, strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner allowed", func(t *testing.T) {
		w := putJSON(router, "/empresas/1", EmpresaRequest{Nome: "Pousada Azul do Mar"}, ownerToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Empresa atualizada com sucesso")
	})

	t.Run("Admin allowed", func(t *testing.T) {
		w := putJSON(router, "/empresas/1", EmpresaRequest{Nome: "Moderada"}, adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Stranger cannot delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/empresas/1", nil)
		req.Header.Set("Authorization", "Bearer "+strangerToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner can delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/empresas/1", nil)
		req.Header.Set("Authorization", "Bearer "+ownerToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		got := getPath(router, "/empresas/1", "")
		assert.Equal(t, http.StatusNotFound, got.Code)
	})
}
