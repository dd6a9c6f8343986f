package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/internal/app/service"
	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

type CreateTagRequest struct {
	Nome     string `json:"nome" binding:"required,min=2,max=100"`
	ParentID *uint  `json:"parent_id"`
}

type RenameTagRequest struct {
	Nome string `json:"nome" binding:"required,min=2,max=100"`
}

// Tree returns root tags with their children
// GET /api/v1/tags
func (ctrl *TagController) Tree(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.Tree()
	if err != nil {
		log.Error("Failed to fetch tag tree", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": tags,
	})
}

// List returns all tags flat, for admin screens
// GET /api/v1/tags/todas
func (ctrl *TagController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.List()
	if err != nil {
		log.Error("Failed to list tags", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}

// Create adds a tag, optionally under a root parent (admin only)
// POST /api/v1/tags
func (ctrl *TagController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tag creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da tag inválidos")
		return
	}

	tag, err := ctrl.tagService.Create(req.Nome, req.ParentID)
	if err != nil {
		ctrl.respondTagError(c, err, "create tag")
		return
	}

	log.Info("Tag created", map[string]interface{}{
		"tag_id": tag.ID,
		"nome":   tag.Nome,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tag criada com sucesso",
		"tag":     tag,
	})
}

// Rename changes a tag name (admin only)
// PUT /api/v1/tags/:id
func (ctrl *TagController) Rename(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tag rename request", map[string]interface{}{
			"tag_id": id,
			"error":  err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da tag inválidos")
		return
	}

	tag, err := ctrl.tagService.Rename(id, req.Nome)
	if err != nil {
		ctrl.respondTagError(c, err, "rename tag")
		return
	}

	log.Info("Tag renamed", map[string]interface{}{
		"tag_id": tag.ID,
		"nome":   tag.Nome,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag atualizada com sucesso",
		"tag":     tag,
	})
}

// Delete removes an unused tag without children (admin only)
// DELETE /api/v1/tags/:id
func (ctrl *TagController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.tagService.Delete(id); err != nil {
		ctrl.respondTagError(c, err, "delete tag")
		return
	}

	log.Info("Tag deleted", map[string]interface{}{
		"tag_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag removida com sucesso",
	})
}

func (ctrl *TagController) respondTagError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrTagNotFound):
		apperrors.NotFound(c, apperrors.TagNotFound, "Tag não encontrada")
	case errors.Is(err, service.ErrTagAlreadyExists):
		apperrors.Conflict(c, apperrors.TagAlreadyExists, "Já existe uma tag com este nome")
	case errors.Is(err, service.ErrTagInvalidParent):
		apperrors.BadRequest(c, apperrors.TagInvalidParent, "A tag pai deve ser uma tag raiz")
	case errors.Is(err, service.ErrTagHasChildren):
		apperrors.Conflict(c, apperrors.TagHasChildren, "A tag possui subtags e não pode ser removida")
	case errors.Is(err, service.ErrTagInUse):
		apperrors.Conflict(c, apperrors.ResourceConflict, "A tag está em uso por empresas")
	default:
		log.Error("Tag operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
