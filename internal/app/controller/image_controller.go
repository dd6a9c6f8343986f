package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/internal/app/service"
	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

type ImageController struct {
	imageService service.ImageService
}

func NewImageController(imageService service.ImageService) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

type AddImageRequest struct {
	URL       string `json:"url" binding:"required,url"`
	Legenda   string `json:"legenda" binding:"max=255"`
	Principal bool   `json:"principal"`
}

// ListByEmpresa returns a listing's images, principal first
// GET /api/v1/empresas/:id/imagens
func (ctrl *ImageController) ListByEmpresa(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	empresaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	imagens, err := ctrl.imageService.ListByEmpresa(empresaID)
	if err != nil {
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
			return
		}
		log.Error("Failed to list images", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imagens": imagens,
		"count":   len(imagens),
	})
}

// Add attaches an uploaded image to a listing
// POST /api/v1/empresas/:id/imagens
func (ctrl *ImageController) Add(c *gin.Context) {
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

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid image request", map[string]interface{}{
			"empresa_id": empresaID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da imagem inválidos")
		return
	}

	imagem, err := ctrl.imageService.Add(empresaID, userID, isAdmin(c), req.URL, req.Legenda, req.Principal)
	if err != nil {
		ctrl.respondImageError(c, err, "add image")
		return
	}

	log.Info("Image added", map[string]interface{}{
		"image_id":   imagem.ID,
		"empresa_id": empresaID,
		"principal":  imagem.IsPrincipal,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Imagem adicionada com sucesso",
		"imagem":  imagem,
	})
}

// Remove deletes an image; a removed principal promotes the oldest remaining
// DELETE /api/v1/empresas/:id/imagens/:imageID
func (ctrl *ImageController) Remove(c *gin.Context) {
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
	imageID, ok := parseIDParam(c, "imageID")
	if !ok {
		return
	}

	if err := ctrl.imageService.Remove(empresaID, imageID, userID, isAdmin(c)); err != nil {
		ctrl.respondImageError(c, err, "remove image")
		return
	}

	log.Info("Image removed", map[string]interface{}{
		"image_id":   imageID,
		"empresa_id": empresaID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Imagem removida com sucesso",
	})
}

// SetPrincipal makes one image the listing's cover
// PUT /api/v1/empresas/:id/imagens/:imageID/principal
func (ctrl *ImageController) SetPrincipal(c *gin.Context) {
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
	imageID, ok := parseIDParam(c, "imageID")
	if !ok {
		return
	}

	if err := ctrl.imageService.SetPrincipal(empresaID, imageID, userID, isAdmin(c)); err != nil {
		ctrl.respondImageError(c, err, "set principal image")
		return
	}

	log.Info("Principal image changed", map[string]interface{}{
		"image_id":   imageID,
		"empresa_id": empresaID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Imagem principal definida com sucesso",
	})
}

func (ctrl *ImageController) respondImageError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmpresaNotFound):
		apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
	case errors.Is(err, service.ErrImageNotFound), errors.Is(err, service.ErrImageWrongOwner):
		apperrors.NotFound(c, apperrors.EmpresaImageNotFound, "Imagem não encontrada")
	case errors.Is(err, service.ErrImageForbidden), errors.Is(err, service.ErrEmpresaForbidden):
		apperrors.Forbidden(c, "Sem permissão para alterar esta empresa")
	case errors.Is(err, service.ErrImageLimit):
		apperrors.BadRequest(c, apperrors.EmpresaImageLimit, "Limite de imagens por empresa atingido")
	default:
		log.Error("Image operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
