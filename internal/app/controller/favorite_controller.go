package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/internal/app/service"
	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

// Add marks a listing as favorite; repeating the call is a no-op
// POST /api/v1/empresas/:id/favorito
func (ctrl *FavoriteController) Add(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	empresaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.favoriteService.Add(empresaID, userID); err != nil {
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"empresa_id": empresaID,
			"user_id":    userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add favorite")
		return
	}

	log.Info("Favorite added", map[string]interface{}{
		"empresa_id": empresaID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Empresa adicionada aos favoritos",
	})
}

// Remove unmarks a favorite
// DELETE /api/v1/empresas/:id/favorito
func (ctrl *FavoriteController) Remove(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	empresaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.favoriteService.Remove(empresaID, userID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Favorito não encontrado")
			return
		}
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"empresa_id": empresaID,
			"user_id":    userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove favorite")
		return
	}

	log.Info("Favorite removed", map[string]interface{}{
		"empresa_id": empresaID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Empresa removida dos favoritos",
	})
}

// Status tells whether the user favorited the listing and the total count
// GET /api/v1/empresas/:id/favorito
func (ctrl *FavoriteController) Status(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	empresaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// works unauthenticated: favorited is always false then
	var userID uint
	if id, exists := middleware.GetUserID(c); exists {
		userID = id
	}

	favorited, total, err := ctrl.favoriteService.Status(empresaID, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
			return
		}
		log.Error("Failed to check favorite status", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "favorite status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favoritado": favorited,
		"total":      total,
	})
}

// ListMine returns the authenticated user's favorite listings
// GET /api/v1/favoritos
func (ctrl *FavoriteController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	favoritos, err := ctrl.favoriteService.ListByUser(userID)
	if err != nil {
		log.Error("Failed to list favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favoritos": favoritos,
		"count":     len(favoritos),
	})
}
