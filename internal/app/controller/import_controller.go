package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/arutourism/arutourism-backend/internal/errors"
	"github.com/arutourism/arutourism-backend/internal/importer"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

// maxImportFileSize caps spreadsheet uploads at 10MB.
const maxImportFileSize = 10 << 20

type ImportController struct {
	importer *importer.Importer
}

func NewImportController(imp *importer.Importer) *ImportController {
	return &ImportController{
		importer: imp,
	}
}

// Import ingests a spreadsheet of listings for the authenticated user.
// The file comes in the multipart field "arquivo"; the optional query
// parameter formato=google|padrao overrides format detection.
// POST /api/v1/empresas/importar
func (ctrl *ImportController) Import(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário estar autenticado")
		return
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		log.Warn("Import request without file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ImportInvalidFile, "Envie o arquivo no campo 'arquivo'")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		apperrors.BadRequest(c, apperrors.ImportInvalidFile, "Arquivo excede o tamanho máximo de 10MB")
		return
	}

	var format importer.Format
	switch c.Query("formato") {
	case "":
		format = importer.FormatAuto
	case "google":
		format = importer.FormatGoogle
	case "padrao":
		format = importer.FormatPadrao
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Formato deve ser 'google' ou 'padrao'")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.InternalError(c, "Não foi possível ler o arquivo enviado")
		return
	}
	defer file.Close()

	log.Info("Processing import", map[string]interface{}{
		"filename": fileHeader.Filename,
		"size":     fileHeader.Size,
		"formato":  string(format),
		"user_id":  userID,
	})

	summary, err := ctrl.importer.Run(file, fileHeader.Filename, format, userID)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrEmptyFile):
			apperrors.BadRequest(c, apperrors.ImportEmptySheet, "A planilha não contém dados")
		case errors.Is(err, importer.ErrUnsupportedFormat):
			apperrors.BadRequest(c, apperrors.ImportUnknownFormat, "Formato de arquivo não suportado; envie .csv ou .xlsx")
		case errors.Is(err, importer.ErrNoHeaders):
			apperrors.BadRequest(c, apperrors.ImportMissingHeaders, "Nenhuma coluna reconhecida; use o modelo de planilha")
		default:
			log.Error("Import failed", err, map[string]interface{}{
				"filename": fileHeader.Filename,
			})
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ImportProcessingError, "Não foi possível processar a planilha")
		}
		return
	}

	log.Info("Import completed", map[string]interface{}{
		"criadas":     summary.Criadas,
		"atualizadas": summary.Atualizadas,
		"inalteradas": summary.Inalteradas,
		"erros":       summary.Erros,
	})

	c.JSON(http.StatusOK, summary)
}

// Template streams the reference spreadsheet with the expected headers
// GET /api/v1/empresas/importar/modelo
func (ctrl *ImportController) Template(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	file, err := importer.BuildTemplate()
	if err != nil {
		log.Error("Failed to build import template", err, nil)
		apperrors.InternalError(c, "Não foi possível gerar o modelo")
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", importer.TemplateFilename))

	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to stream import template", err, nil)
	}
}
