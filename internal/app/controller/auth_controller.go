package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/internal/app/service"
	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/middleware"
	"github.com/arutourism/arutourism-backend/pkg/redis"
	"github.com/arutourism/arutourism-backend/pkg/util"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
	jwtSecret            string
}

func NewAuthController(
	authService service.AuthService,
	passwordResetService service.PasswordResetService,
	jwtSecret string,
) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
		jwtSecret:            jwtSecret,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	CpfCnpj  string `json:"cpf_cnpj" binding:"required"`
	FullName string `json:"full_name"`
	Telefone string `json:"telefone"`
}

type LoginRequest struct {
	// Identifier accepts username, email or CPF
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Telefone  *string `json:"telefone"`
	AvatarURL *string `json:"avatar_url"`
	Theme     *string `json:"theme"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles account creation
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados de cadastro inválidos")
		return
	}

	log.Debug("Processing registration", map[string]interface{}{
		"username": req.Username,
		"email":    req.Email,
	})

	user, tokens, err := ctrl.authService.Register(service.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		CpfCnpj:  req.CpfCnpj,
		FullName: req.FullName,
		Telefone: req.Telefone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "E-mail já cadastrado")
		case errors.Is(err, service.ErrUsernameAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthUsernameExists, "Nome de usuário já cadastrado")
		case errors.Is(err, service.ErrCpfCnpjAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthCpfCnpjExists, "CPF/CNPJ já cadastrado")
		case errors.Is(err, service.ErrInvalidDocument):
			apperrors.BadRequest(c, apperrors.ValidationInvalidDocument, "CPF/CNPJ inválido")
		default:
			log.Error("Registration failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		}
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cadastro realizado com sucesso",
		"user":    user,
		"tokens":  tokens,
	})
}

// Login authenticates by username, email or CPF
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados de login inválidos")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"identifier": req.Identifier,
			})
			apperrors.Unauthorized(c, "Credenciais inválidas")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"identifier": req.Identifier,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"user":    user,
		"tokens":  tokens,
	})
}

// Logout revokes the refresh token by blacklisting it until it expires
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid logout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados de logout inválidos")
		return
	}

	if claims, err := util.ValidateToken(req.RefreshToken, ctrl.jwtSecret); err == nil && redis.GetClient() != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := redis.BlacklistToken(context.Background(), req.RefreshToken, ttl); err != nil {
				// logout always succeeds from the client's perspective
				log.Error("Failed to blacklist refresh token", err, nil)
			}
		}
	}

	if userID, exists := middleware.GetUserID(c); exists {
		log.Info("User logged out", map[string]interface{}{
			"user_id": userID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout realizado com sucesso",
	})
}

// GetMe returns the authenticated user with profile
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Usuário não encontrado")
			return
		}
		log.Error("Failed to get user information", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateMe updates the profile of the authenticated user
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados de perfil inválidos")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, service.ProfileUpdateInput{
		FullName:  req.FullName,
		Telefone:  req.Telefone,
		AvatarURL: req.AvatarURL,
		Theme:     req.Theme,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Usuário não encontrado")
		case errors.Is(err, service.ErrInvalidTheme):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Tema inválido")
		default:
			log.Error("Failed to update profile", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update profile")
		}
		return
	}

	log.Info("Profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil atualizado com sucesso",
		"user":    user,
	})
}

// ChangePassword replaces the password after checking the current one
// PUT /api/v1/auth/password
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid change password request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados inválidos")
		return
	}

	if err := ctrl.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Senha atual incorreta")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Usuário não encontrado")
		default:
			log.Error("Failed to change password", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "change password")
		}
		return
	}

	log.Info("Password changed successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Senha alterada com sucesso",
	})
}

// ForgotPassword issues a reset token for the account behind the email
// POST /api/v1/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid forgot password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "E-mail inválido")
		return
	}

	if _, err := ctrl.passwordResetService.RequestReset(req.Email); err != nil {
		log.Error("Failed to process password reset request", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Não foi possível processar a solicitação")
		return
	}

	// Same response whether or not the email exists
	c.JSON(http.StatusOK, gin.H{
		"message": "Se o e-mail estiver cadastrado, as instruções de redefinição foram enviadas",
	})
}

// ResetPassword consumes a reset token and sets the new password
// POST /api/v1/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados inválidos")
		return
	}

	if err := ctrl.passwordResetService.ResetPassword(req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenExpired):
			apperrors.BadRequest(c, apperrors.AuthResetTokenExpired, "Token de redefinição expirado")
		case errors.Is(err, service.ErrResetTokenInvalid):
			apperrors.BadRequest(c, apperrors.AuthResetTokenInvalid, "Token de redefinição inválido")
		default:
			log.Error("Failed to reset password", err, nil)
			apperrors.InternalError(c, "Não foi possível redefinir a senha")
		}
		return
	}

	log.Info("Password reset successful")

	c.JSON(http.StatusOK, gin.H{
		"message": "Senha redefinida com sucesso",
	})
}
