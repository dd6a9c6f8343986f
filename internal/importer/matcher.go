package importer

import (
	"errors"
	"strings"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"gorm.io/gorm"
)

// Outcome classifies what the matcher did with one row.
type Outcome int

const (
	OutcomeCriada Outcome = iota
	OutcomeAtualizada
	OutcomeInalterada
)

// Matcher finds an existing listing for a candidate record and either
// updates it or creates a new one.
type Matcher struct {
	empresaRepo repository.EmpresaRepository
	importCfg   *config.ImportConfig
}

func NewMatcher(empresaRepo repository.EmpresaRepository, importCfg *config.ImportConfig) *Matcher {
	return &Matcher{empresaRepo: empresaRepo, importCfg: importCfg}
}

// Upsert persists the record, returning the listing and its outcome.
// Matching priority: telefone, then cnpj, then case-insensitive nome. Tags
// are attached by the caller after the primary fields persist.
func (m *Matcher) Upsert(rec *Record, ownerID uint) (*model.Empresa, Outcome, error) {
	existing, err := m.findMatch(rec)
	if err != nil {
		return nil, 0, err
	}

	if existing == nil {
		empresa := &model.Empresa{UserID: ownerID}
		m.applyRecord(empresa, rec)
		m.applyDefaults(empresa)
		if err := m.empresaRepo.Create(empresa); err != nil {
			return nil, 0, err
		}
		return empresa, OutcomeCriada, nil
	}

	changed := m.applyRecordDiff(existing, rec)
	if !changed {
		return existing, OutcomeInalterada, nil
	}

	if err := m.empresaRepo.Update(existing); err != nil {
		return nil, 0, err
	}
	return existing, OutcomeAtualizada, nil
}

func (m *Matcher) findMatch(rec *Record) (*model.Empresa, error) {
	if rec.Telefone != "" {
		empresa, err := m.empresaRepo.FindByTelefone(rec.Telefone)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if empresa != nil {
			return empresa, nil
		}
	}

	if rec.Cnpj != "" {
		empresa, err := m.empresaRepo.FindByCnpj(rec.Cnpj)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if empresa != nil {
			return empresa, nil
		}
	}

	empresa, err := m.empresaRepo.FindByNomeExact(rec.Nome)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return empresa, nil
}

// applyRecord writes every mapped field of the record onto the listing.
func (m *Matcher) applyRecord(empresa *model.Empresa, rec *Record) {
	empresa.Nome = rec.Nome
	empresa.Cnpj = rec.Cnpj
	empresa.Cadastur = rec.Cadastur
	empresa.Bairro = rec.Bairro
	empresa.Rua = rec.Endereco
	empresa.EnderecoFull = rec.Endereco
	empresa.Numero = rec.Numero
	empresa.Cidade = rec.Cidade
	empresa.Cep = rec.Cep
	empresa.Telefone = rec.Telefone
	empresa.Email = rec.Email
	empresa.ContatoDireto = rec.ContatoDireto
	empresa.Digital = rec.Digital
	empresa.Site = rec.Site
	empresa.Instagram = rec.Instagram
	empresa.Facebook = rec.Facebook
	empresa.MapsURL = rec.MapsURL
	empresa.AppURL = rec.AppURL
	empresa.Descricao = rec.Descricao
	empresa.SemTelefone = rec.Telefone == ""
	empresa.SemEmail = rec.Email == ""

	if rec.HasCoords {
		empresa.Latitude = rec.Latitude
		empresa.Longitude = rec.Longitude
	}
}

// applyRecordDiff overwrites stored fields that differ from non-empty record
// values and reports whether anything changed. Empty record fields leave the
// stored value alone so a sparse re-import does not erase data.
func (m *Matcher) applyRecordDiff(empresa *model.Empresa, rec *Record) bool {
	changed := false

	setStr := func(dst *string, v string) {
		if v != "" && v != *dst {
			*dst = v
			changed = true
		}
	}

	if !strings.EqualFold(empresa.Nome, rec.Nome) {
		empresa.Nome = rec.Nome
		changed = true
	}
	setStr(&empresa.Cnpj, rec.Cnpj)
	setStr(&empresa.Cadastur, rec.Cadastur)
	setStr(&empresa.Bairro, rec.Bairro)
	setStr(&empresa.Rua, rec.Endereco)
	setStr(&empresa.EnderecoFull, rec.Endereco)
	setStr(&empresa.Numero, rec.Numero)
	setStr(&empresa.Cidade, rec.Cidade)
	setStr(&empresa.Cep, rec.Cep)
	setStr(&empresa.ContatoDireto, rec.ContatoDireto)
	setStr(&empresa.Digital, rec.Digital)
	setStr(&empresa.Site, rec.Site)
	setStr(&empresa.Instagram, rec.Instagram)
	setStr(&empresa.Facebook, rec.Facebook)
	setStr(&empresa.MapsURL, rec.MapsURL)
	setStr(&empresa.AppURL, rec.AppURL)
	setStr(&empresa.Descricao, rec.Descricao)

	if rec.Telefone != "" && rec.Telefone != empresa.Telefone {
		empresa.Telefone = rec.Telefone
		empresa.SemTelefone = false
		changed = true
	}
	if rec.Email != "" && rec.Email != empresa.Email {
		empresa.Email = rec.Email
		empresa.SemEmail = false
		changed = true
	}

	if rec.HasCoords && (rec.Latitude != empresa.Latitude || rec.Longitude != empresa.Longitude) {
		empresa.Latitude = rec.Latitude
		empresa.Longitude = rec.Longitude
		changed = true
	}

	return changed
}

// applyDefaults fills required-but-absent fields on creation instead of
// failing the row.
func (m *Matcher) applyDefaults(empresa *model.Empresa) {
	if empresa.Cidade == "" {
		empresa.Cidade = m.importCfg.DefaultCidade
	}
	if empresa.Latitude == 0 && empresa.Longitude == 0 {
		empresa.Latitude = m.importCfg.DefaultLat
		empresa.Longitude = m.importCfg.DefaultLng
	}
	if strings.TrimSpace(empresa.Descricao) == "" {
		empresa.Descricao = model.DefaultDescricao
	}
}
