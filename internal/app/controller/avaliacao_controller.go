package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/internal/app/service"
	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

type AvaliacaoController struct {
	avaliacaoService service.AvaliacaoService
}

func NewAvaliacaoController(avaliacaoService service.AvaliacaoService) *AvaliacaoController {
	return &AvaliacaoController{
		avaliacaoService: avaliacaoService,
	}
}

type AvaliacaoRequest struct {
	Nota       int    `json:"nota" binding:"required,min=1,max=5"`
	Comentario string `json:"comentario" binding:"max=2000"`
}

// ListByEmpresa returns the ratings of a listing plus average and total
// GET /api/v1/empresas/:id/avaliacoes
func (ctrl *AvaliacaoController) ListByEmpresa(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	empresaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	avaliacoes, summary, err := ctrl.avaliacaoService.ListByEmpresa(empresaID)
	if err != nil {
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
			return
		}
		log.Error("Failed to list ratings", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list avaliacoes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"avaliacoes": avaliacoes,
		"media":      summary.Media,
		"total":      summary.Total,
	})
}

// Create registers a rating; one per user per listing
// POST /api/v1/empresas/:id/avaliacoes
func (ctrl *AvaliacaoController) Create(c *gin.Context) {
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

	var req AvaliacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid rating request", map[string]interface{}{
			"empresa_id": empresaID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.AvaliacaoInvalidNota, "A nota deve estar entre 1 e 5")
		return
	}

	avaliacao, err := ctrl.avaliacaoService.Create(empresaID, userID, req.Nota, req.Comentario)
	if err != nil {
		ctrl.respondAvaliacaoError(c, err, "create avaliacao")
		return
	}

	log.Info("Rating created", map[string]interface{}{
		"avaliacao_id": avaliacao.ID,
		"empresa_id":   empresaID,
		"user_id":      userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Avaliação registrada com sucesso",
		"avaliacao": avaliacao,
	})
}

// Update edits a rating; only the author or an admin may do it
// PUT /api/v1/avaliacoes/:id
func (ctrl *AvaliacaoController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	avaliacaoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AvaliacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid rating update request", map[string]interface{}{
			"avaliacao_id": avaliacaoID,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.AvaliacaoInvalidNota, "A nota deve estar entre 1 e 5")
		return
	}

	avaliacao, err := ctrl.avaliacaoService.Update(avaliacaoID, userID, isAdmin(c), req.Nota, req.Comentario)
	if err != nil {
		ctrl.respondAvaliacaoError(c, err, "update avaliacao")
		return
	}

	log.Info("Rating updated", map[string]interface{}{
		"avaliacao_id": avaliacao.ID,
		"user_id":      userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "Avaliação atualizada com sucesso",
		"avaliacao": avaliacao,
	})
}

// Delete removes a rating; only the author or an admin may do it
// DELETE /api/v1/avaliacoes/:id
func (ctrl *AvaliacaoController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	avaliacaoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.avaliacaoService.Delete(avaliacaoID, userID, isAdmin(c)); err != nil {
		ctrl.respondAvaliacaoError(c, err, "delete avaliacao")
		return
	}

	log.Info("Rating deleted", map[string]interface{}{
		"avaliacao_id": avaliacaoID,
		"user_id":      userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Avaliação removida com sucesso",
	})
}

func (ctrl *AvaliacaoController) respondAvaliacaoError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmpresaNotFound):
		apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
	case errors.Is(err, service.ErrAvaliacaoNotFound):
		apperrors.NotFound(c, apperrors.AvaliacaoNotFound, "Avaliação não encontrada")
	case errors.Is(err, service.ErrAvaliacaoExists):
		apperrors.Conflict(c, apperrors.AvaliacaoAlreadyExists, "Você já avaliou esta empresa")
	case errors.Is(err, service.ErrAvaliacaoForbidden):
		apperrors.Forbidden(c, "Sem permissão para alterar esta avaliação")
	case errors.Is(err, service.ErrInvalidNota):
		apperrors.BadRequest(c, apperrors.AvaliacaoInvalidNota, "A nota deve estar entre 1 e 5")
	default:
		log.Error("Rating operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
