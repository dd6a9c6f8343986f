package importer

import (
	"fmt"
	"io"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

// Format selects the row parser. FormatAuto applies the wide-sheet
// heuristic; the endpoint accepts an explicit override because the
// heuristic alone is fragile.
type Format string

const (
	FormatAuto   Format = ""
	FormatPadrao Format = "padrao"
	FormatGoogle Format = "google"
)

// maxMensagens caps the per-row error sample returned to the caller.
const maxMensagens = 50

// Summary is the structured result of one import run.
type Summary struct {
	Ok          bool     `json:"ok"`
	Criadas     int      `json:"criadas"`
	Atualizadas int      `json:"atualizadas"`
	Inalteradas int      `json:"inalteradas"`
	Erros       int      `json:"erros"`
	Mensagens   []string `json:"mensagens"`
}

// Importer drives the pipeline: read, resolve headers, parse, reconcile
// tags, match/upsert. Transaction strategy is best-effort partial commit:
// each row runs in its own transaction, a failed row rolls back alone.
type Importer struct {
	db        *gorm.DB
	importCfg *config.ImportConfig
}

func New(db *gorm.DB, importCfg *config.ImportConfig) *Importer {
	return &Importer{db: db, importCfg: importCfg}
}

// Run imports the file for the given owner. A file that cannot be read at
// all (empty, unsupported, no recognizable header) returns an error before
// any row is touched; per-row failures land in the summary instead.
func (i *Importer) Run(r io.Reader, filename string, format Format, ownerID uint) (*Summary, error) {
	headers, body, err := ReadRows(r, filename)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyFile
	}

	useGoogle := format == FormatGoogle || (format == FormatAuto && IsGoogleFormat(headers))

	var headerMap map[int]string
	var googleCols *googleColumns
	if useGoogle {
		googleCols = indexGoogleColumns(headers)
	} else {
		headerMap = BuildHeaderMap(headers)
		if len(headerMap) == 0 {
			return nil, ErrNoHeaders
		}
	}

	logger.Info("Import started", map[string]interface{}{
		"filename": filename,
		"rows":     len(body),
		"google":   useGoogle,
		"owner_id": ownerID,
	})

	resolver := NewTagResolver(repository.NewTagRepository(i.db))
	summary := &Summary{Mensagens: []string{}}

	// 1-based line numbers; data starts at 2 because of the header row
	for offset, row := range body {
		lineNo := offset + 2

		var rec *Record
		var err error
		if useGoogle {
			rec, err = ParseGoogleRow(googleCols, row)
		} else {
			rec, err = ParseStandardRow(headerMap, row)
		}
		if err != nil {
			i.recordError(summary, lineNo, err)
			continue
		}

		// Tags are reconciled outside the row transaction: creation is
		// idempotent and the per-run cache must survive a row rollback.
		tags, err := resolver.ResolveAll(rec.Categorias)
		if err != nil {
			i.recordError(summary, lineNo, err)
			continue
		}

		outcome, err := i.persistRow(rec, tags, ownerID)
		if err != nil {
			i.recordError(summary, lineNo, err)
			continue
		}

		switch outcome {
		case OutcomeCriada:
			summary.Criadas++
		case OutcomeAtualizada:
			summary.Atualizadas++
		case OutcomeInalterada:
			summary.Inalteradas++
		}
	}

	summary.Ok = summary.Erros == 0

	logger.Info("Import finished", map[string]interface{}{
		"criadas":     summary.Criadas,
		"atualizadas": summary.Atualizadas,
		"inalteradas": summary.Inalteradas,
		"erros":       summary.Erros,
	})
	return summary, nil
}

// persistRow runs the matcher and the tag association inside one
// transaction so a failed row leaves nothing behind.
func (i *Importer) persistRow(rec *Record, tags []model.Tag, ownerID uint) (Outcome, error) {
	var outcome Outcome

	err := i.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewEmpresaRepository(tx)
		matcher := NewMatcher(repo, i.importCfg)

		empresa, o, err := matcher.Upsert(rec, ownerID)
		if err != nil {
			return err
		}
		outcome = o

		// associations replace the previous set only after the primary
		// fields persisted
		if len(tags) > 0 {
			if err := repo.ReplaceTags(empresa, tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

func (i *Importer) recordError(summary *Summary, lineNo int, err error) {
	summary.Erros++
	if len(summary.Mensagens) < maxMensagens {
		summary.Mensagens = append(summary.Mensagens, fmt.Sprintf("Linha %d: %v", lineNo, err))
	}
}
