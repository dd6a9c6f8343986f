package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/internal/app/service"
	"github.com/arutourism/arutourism-backend/internal/db"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

const testControllerSecret = "test-secret"

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService, service.PasswordResetService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	passwordResetRepo := repository.NewPasswordResetRepository(testDB)
	authService := service.NewAuthService(userRepo, testControllerSecret, 15*time.Minute, 7*24*time.Hour)
	passwordResetService := service.NewPasswordResetService(passwordResetRepo, userRepo)

	ctrl := NewAuthController(authService, passwordResetService, testControllerSecret)
	authMiddleware := middleware.NewAuthMiddleware(testControllerSecret)

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/logout", authMiddleware.OptionalAuthenticate(), ctrl.Logout)
	router.POST("/forgot-password", ctrl.ForgotPassword)
	router.POST("/reset-password", ctrl.ResetPassword)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetMe)
	router.PUT("/me", authMiddleware.Authenticate(), ctrl.UpdateMe)
	router.PUT("/password", authMiddleware.Authenticate(), ctrl.ChangePassword)

	return router, authService, passwordResetService
}

func postJSON(router *gin.Engine, path string, body interface{}, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func putJSON(router *gin.Engine, path string, body interface{}, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("PUT", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerTestUser(t *testing.T, authService service.AuthService) (*service.RegisterInput, string) {
	t.Helper()
	input := service.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "senha123",
		CpfCnpj:  "52998224725",
		FullName: "Maria da Silva",
	}
	_, tokens, err := authService.Register(input)
	require.NoError(t, err)
	return &input, tokens.AccessToken
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "senha123",
		CpfCnpj:  "529.982.247-25",
		FullName: "Maria da Silva",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Cadastro realizado com sucesso", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Register_Validation(t *testing.T) {
	router, _, _ := setupAuthControllerTest(t)

	tests := []struct {
		name    string
		reqBody RegisterRequest
	}{
		{
			name:    "Missing email",
			reqBody: RegisterRequest{Username: "maria", Password: "senha123", CpfCnpj: "52998224725"},
		},
		{
			name:    "Invalid email",
			reqBody: RegisterRequest{Username: "maria", Email: "nao-email", Password: "senha123", CpfCnpj: "52998224725"},
		},
		{
			name:    "Short password",
			reqBody: RegisterRequest{Username: "maria", Email: "maria@example.com", Password: "123", CpfCnpj: "52998224725"},
		},
		{
			name:    "Short username",
			reqBody: RegisterRequest{Username: "ab", Email: "maria@example.com", Password: "senha123", CpfCnpj: "52998224725"},
		},
		{
			name:    "Missing document",
			reqBody: RegisterRequest{Username: "maria", Email: "maria@example.com", Password: "senha123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/register", tt.reqBody, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Register_Conflicts(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)
	registerTestUser(t, authService)

	t.Run("Duplicate email", func(t *testing.T) {
		w := postJSON(router, "/register", RegisterRequest{
			Username: "outra",
			Email:    "maria@example.com",
			Password: "senha123",
			CpfCnpj:  "11222333000181",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "E-mail já cadastrado")
	})

	t.Run("Duplicate document", func(t *testing.T) {
		w := postJSON(router, "/register", RegisterRequest{
			Username: "outra",
			Email:    "outra@example.com",
			Password: "senha123",
			CpfCnpj:  "52998224725",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CPF/CNPJ já cadastrado")
	})

	t.Run("Invalid document", func(t *testing.T) {
		w := postJSON(router, "/register", RegisterRequest{
			Username: "outra",
			Email:    "outra@example.com",
			Password: "senha123",
			CpfCnpj:  "111.111.111-11",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CPF/CNPJ inválido")
	})
}

func TestAuthController_Login(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)
	registerTestUser(t, authService)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantStatus int
	}{
		{name: "By username", identifier: "maria", password: "senha123", wantStatus: http.StatusOK},
		{name: "By email", identifier: "maria@example.com", password: "senha123", wantStatus: http.StatusOK},
		{name: "By CPF", identifier: "52998224725", password: "senha123", wantStatus: http.StatusOK},
		{name: "Wrong password", identifier: "maria", password: "errada", wantStatus: http.StatusUnauthorized},
		{name: "Unknown user", identifier: "ninguem", password: "senha123", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/login", LoginRequest{
				Identifier: tt.identifier,
				Password:   tt.password,
			}, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "Login realizado com sucesso")
			} else {
				assert.Contains(t, w.Body.String(), "Credenciais inválidas")
			}
		})
	}
}

func TestAuthController_GetMe(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)
	input, token := registerTestUser(t, authService)

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		userMap := response["user"].(map[string]interface{})
		assert.Equal(t, input.Email, userMap["email"])
	})

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthController_UpdateMe(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)
	_, token := registerTestUser(t, authService)

	fullName := "Maria S. Costa"
	theme := "dark"
	w := putJSON(router, "/me", UpdateProfileRequest{FullName: &fullName, Theme: &theme}, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Perfil atualizado com sucesso")

	bad := "rosa"
	w = putJSON(router, "/me", UpdateProfileRequest{Theme: &bad}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Tema inválido")
}

func TestAuthController_ChangePassword(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)
	_, token := registerTestUser(t, authService)

	w := putJSON(router, "/password", ChangePasswordRequest{
		CurrentPassword: "errada",
		NewPassword:     "novasenha",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Senha atual incorreta")

	w = putJSON(router, "/password", ChangePasswordRequest{
		CurrentPassword: "senha123",
		NewPassword:     "novasenha",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/login", LoginRequest{Identifier: "maria", Password: "novasenha"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_ForgotPassword_UniformResponse(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)
	registerTestUser(t, authService)

	known := postJSON(router, "/forgot-password", ForgotPasswordRequest{Email: "maria@example.com"}, "")
	unknown := postJSON(router, "/forgot-password", ForgotPasswordRequest{Email: "ninguem@example.com"}, "")

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestAuthController_ResetPassword(t *testing.T) {
	router, authService, passwordResetService := setupAuthControllerTest(t)
	registerTestUser(t, authService)

	reset, err := passwordResetService.RequestReset("maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, reset)

	w := postJSON(router, "/reset-password", ResetPasswordRequest{
		Token:       reset.Token,
		NewPassword: "novasenha",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Senha redefinida com sucesso")

	// token is single-use
	w = postJSON(router, "/reset-password", ResetPasswordRequest{
		Token:       reset.Token,
		NewPassword: "outrasenha",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Token de redefinição inválido")

	w = postJSON(router, "/login", LoginRequest{Identifier: "maria", Password: "novasenha"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_Logout(t *testing.T) {
	router, authService, _ := setupAuthControllerTest(t)

	input := service.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "senha123",
		CpfCnpj:  "52998224725",
	}
	_, tokens, err := authService.Register(input)
	require.NoError(t, err)

	w := postJSON(router, "/logout", LogoutRequest{RefreshToken: tokens.RefreshToken}, tokens.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logout realizado com sucesso")

	// missing refresh token is a validation error
	w = postJSON(router, "/logout", LogoutRequest{}, tokens.AccessToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
