package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/internal/app/service"
	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

type EmpresaController struct {
	empresaService service.EmpresaService
}

func NewEmpresaController(empresaService service.EmpresaService) *EmpresaController {
	return &EmpresaController{
		empresaService: empresaService,
	}
}

type EmpresaRequest struct {
	Nome          string   `json:"nome" binding:"required"`
	Descricao     string   `json:"descricao"`
	Cnpj          string   `json:"cnpj"`
	Cadastur      string   `json:"cadastur"`
	Rua           string   `json:"rua"`
	Bairro        string   `json:"bairro"`
	Cidade        string   `json:"cidade"`
	Numero        string   `json:"numero"`
	Cep           string   `json:"cep"`
	EnderecoFull  string   `json:"endereco_full"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Telefone      string   `json:"telefone"`
	Email         string   `json:"email"`
	ContatoDireto string   `json:"contato_direto"`
	Site          string   `json:"site"`
	Digital       string   `json:"digital"`
	MapsURL       string   `json:"maps_url"`
	AppURL        string   `json:"app_url"`
	Facebook      string   `json:"facebook"`
	Instagram     string   `json:"instagram"`
	SemTelefone   bool     `json:"sem_telefone"`
	SemEmail      bool     `json:"sem_email"`
	TagIDs        []uint   `json:"tag_ids"`
}

func (r *EmpresaRequest) toInput() service.EmpresaInput {
	return service.EmpresaInput{
		Nome:          r.Nome,
		Descricao:     r.Descricao,
		Cnpj:          r.Cnpj,
		Cadastur:      r.Cadastur,
		Rua:           r.Rua,
		Bairro:        r.Bairro,
		Cidade:        r.Cidade,
		Numero:        r.Numero,
		Cep:           r.Cep,
		EnderecoFull:  r.EnderecoFull,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Telefone:      r.Telefone,
		Email:         r.Email,
		ContatoDireto: r.ContatoDireto,
		Site:          r.Site,
		Digital:       r.Digital,
		MapsURL:       r.MapsURL,
		AppURL:        r.AppURL,
		Facebook:      r.Facebook,
		Instagram:     r.Instagram,
		SemTelefone:   r.SemTelefone,
		SemEmail:      r.SemEmail,
		TagIDs:        r.TagIDs,
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(c *gin.Context) bool {
	role, ok := middleware.GetUserRole(c)
	return ok && role == model.RoleAdmin
}

// List returns the public catalog with search, filters and pagination
// GET /api/v1/empresas
func (ctrl *EmpresaController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.EmpresaFilter{
		Search:    strings.TrimSpace(c.Query("busca")),
		Cidade:    strings.TrimSpace(c.Query("cidade")),
		Bairro:    strings.TrimSpace(c.Query("bairro")),
		OrderBy:   c.DefaultQuery("ordenar", "nome"),
		WithTags:  true,
		WithImags: true,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	} else {
		filter.Page = 1
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil && size > 0 && size <= 100 {
		filter.PageSize = size
	} else {
		filter.PageSize = 20
	}

	if raw := c.Query("tags"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Filtro de tags inválido")
				return
			}
			filter.TagIDs = append(filter.TagIDs, uint(id))
		}
	}

	empresas, total, err := ctrl.empresaService.List(filter)
	if err != nil {
		log.Error("Failed to list empresas", err, map[string]interface{}{
			"busca":  filter.Search,
			"cidade": filter.Cidade,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list empresas")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"empresas":  empresas,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// FilterOptions returns distinct cities and neighborhoods for the sidebar
// GET /api/v1/empresas/filtros
func (ctrl *EmpresaController) FilterOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	options, err := ctrl.empresaService.FilterOptions(c.Request.Context())
	if err != nil {
		log.Error("Failed to load filter options", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list empresas")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filtros": options,
	})
}

// GetByID returns a listing with tags, images and ratings preloaded
// GET /api/v1/empresas/:id
func (ctrl *EmpresaController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	empresa, err := ctrl.empresaService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
			return
		}
		log.Error("Failed to fetch empresa", err, map[string]interface{}{
			"empresa_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get empresa")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"empresa": empresa,
	})
}

// GetBySlug resolves a listing by its URL slug
// GET /api/v1/empresas/slug/:slug
func (ctrl *EmpresaController) GetBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	empresa, err := ctrl.empresaService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrEmpresaNotFound) {
			apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
			return
		}
		log.Error("Failed to fetch empresa by slug", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get empresa")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"empresa": empresa,
	})
}

// ListMine returns the listings owned by the authenticated user
// GET /api/v1/empresas/minhas
func (ctrl *EmpresaController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	empresas, err := ctrl.empresaService.ListByOwner(userID)
	if err != nil {
		log.Error("Failed to list own empresas", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list empresas")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"empresas": empresas,
		"count":    len(empresas),
	})
}

// Create registers a new listing owned by the authenticated user
// POST /api/v1/empresas
func (ctrl *EmpresaController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	var req EmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid empresa creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da empresa inválidos")
		return
	}

	empresa, err := ctrl.empresaService.Create(userID, req.toInput())
	if err != nil {
		ctrl.respondEmpresaError(c, err, "create empresa")
		return
	}

	log.Info("Empresa created", map[string]interface{}{
		"empresa_id": empresa.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Empresa cadastrada com sucesso",
		"empresa": empresa,
	})
}

// Update modifies a listing; only the owner or an admin may do it
// PUT /api/v1/empresas/:id
func (ctrl *EmpresaController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid empresa update request", map[string]interface{}{
			"empresa_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da empresa inválidos")
		return
	}

	empresa, err := ctrl.empresaService.Update(id, userID, isAdmin(c), req.toInput())
	if err != nil {
		ctrl.respondEmpresaError(c, err, "update empresa")
		return
	}

	log.Info("Empresa updated", map[string]interface{}{
		"empresa_id": empresa.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Empresa atualizada com sucesso",
		"empresa": empresa,
	})
}

// Delete removes a listing; only the owner or an admin may do it
// DELETE /api/v1/empresas/:id
func (ctrl *EmpresaController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.empresaService.Delete(id, userID, isAdmin(c)); err != nil {
		ctrl.respondEmpresaError(c, err, "delete empresa")
		return
	}

	log.Info("Empresa deleted", map[string]interface{}{
		"empresa_id": id,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Empresa removida com sucesso",
	})
}

func (ctrl *EmpresaController) respondEmpresaError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmpresaNotFound):
		apperrors.NotFound(c, apperrors.EmpresaNotFound, "Empresa não encontrada")
	case errors.Is(err, service.ErrEmpresaForbidden):
		apperrors.Forbidden(c, "Sem permissão para alterar esta empresa")
	case errors.Is(err, service.ErrEmpresaCnpjInUse):
		apperrors.Conflict(c, apperrors.EmpresaCnpjExists, "CNPJ já cadastrado em outra empresa")
	case errors.Is(err, service.ErrEmpresaInvalidDoc):
		apperrors.BadRequest(c, apperrors.ValidationInvalidDocument, "CNPJ inválido")
	case errors.Is(err, service.ErrTagNotFound):
		apperrors.BadRequest(c, apperrors.TagNotFound, "Tag informada não existe")
	default:
		log.Error("Empresa operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
