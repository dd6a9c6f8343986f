package service

import (
	"context"
	"errors"
	"time"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"github.com/arutourism/arutourism-backend/pkg/redis"
	"github.com/arutourism/arutourism-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmpresaNotFound   = errors.New("empresa não encontrada")
	ErrEmpresaForbidden  = errors.New("sem permissão para alterar esta empresa")
	ErrEmpresaCnpjInUse  = errors.New("cnpj já cadastrado em outra empresa")
	ErrEmpresaInvalidDoc = errors.New("cnpj inválido")
)

const filterOptionsCacheKey = "empresas:filter_options"
const filterOptionsCacheTTL = 10 * time.Minute

type EmpresaInput struct {
	Nome          string
	Descricao     string
	Cnpj          string
	Cadastur      string
	Rua           string
	Bairro        string
	Cidade        string
	Numero        string
	Cep           string
	EnderecoFull  string
	Latitude      *float64
	Longitude     *float64
	Telefone      string
	Email         string
	ContatoDireto string
	Site          string
	Digital       string
	MapsURL       string
	AppURL        string
	Facebook      string
	Instagram     string
	SemTelefone   bool
	SemEmail      bool
	TagIDs        []uint
}

type EmpresaService interface {
	Create(userID uint, input EmpresaInput) (*model.Empresa, error)
	Update(empresaID, userID uint, isAdmin bool, input EmpresaInput) (*model.Empresa, error)
	Delete(empresaID, userID uint, isAdmin bool) error
	List(filter repository.EmpresaFilter) ([]model.Empresa, int64, error)
	GetByID(id uint) (*model.Empresa, error)
	GetBySlug(slug string) (*model.Empresa, error)
	ListByOwner(userID uint) ([]model.Empresa, error)
	FilterOptions(ctx context.Context) (*repository.FilterOptions, error)
}

type empresaService struct {
	empresaRepo repository.EmpresaRepository
	tagRepo     repository.TagRepository
	importCfg   *config.ImportConfig
}

func NewEmpresaService(
	empresaRepo repository.EmpresaRepository,
	tagRepo repository.TagRepository,
	importCfg *config.ImportConfig,
) EmpresaService {
	return &empresaService{
		empresaRepo: empresaRepo,
		tagRepo:     tagRepo,
		importCfg:   importCfg,
	}
}

func (s *empresaService) Create(userID uint, input EmpresaInput) (*model.Empresa, error) {
	logger.Info("Creating empresa", map[string]interface{}{
		"nome":    input.Nome,
		"user_id": userID,
	})

	empresa := &model.Empresa{UserID: userID}
	if err := s.applyInput(empresa, input); err != nil {
		return nil, err
	}
	s.applyDefaults(empresa)

	if err := s.empresaRepo.Create(empresa); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		tags, err := s.resolveTags(input.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.empresaRepo.ReplaceTags(empresa, tags); err != nil {
			return nil, err
		}
	}

	s.invalidateFilterCache()

	logger.Info("Empresa created", map[string]interface{}{
		"empresa_id": empresa.ID,
		"slug":       empresa.Slug,
	})
	return s.empresaRepo.FindByIDWithRelations(empresa.ID)
}

func (s *empresaService) Update(empresaID, userID uint, isAdmin bool, input EmpresaInput) (*model.Empresa, error) {
	empresa, err := s.empresaRepo.FindByID(empresaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}

	if !canModify(empresa, userID, isAdmin) {
		logger.Warn("Empresa update denied", map[string]interface{}{
			"empresa_id": empresaID,
			"user_id":    userID,
		})
		return nil, ErrEmpresaForbidden
	}

	if err := s.applyInput(empresa, input); err != nil {
		return nil, err
	}
	s.applyDefaults(empresa)

	if err := s.empresaRepo.Update(empresa); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		tags, err := s.resolveTags(input.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.empresaRepo.ReplaceTags(empresa, tags); err != nil {
			return nil, err
		}
	}

	s.invalidateFilterCache()

	logger.Info("Empresa updated", map[string]interface{}{
		"empresa_id": empresa.ID,
	})
	return s.empresaRepo.FindByIDWithRelations(empresa.ID)
}

func (s *empresaService) Delete(empresaID, userID uint, isAdmin bool) error {
	empresa, err := s.empresaRepo.FindByID(empresaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmpresaNotFound
		}
		return err
	}

	if !canModify(empresa, userID, isAdmin) {
		return ErrEmpresaForbidden
	}

	if err := s.empresaRepo.Delete(empresaID); err != nil {
		return err
	}

	s.invalidateFilterCache()

	logger.Info("Empresa deleted", map[string]interface{}{
		"empresa_id": empresaID,
		"user_id":    userID,
	})
	return nil
}

func (s *empresaService) List(filter repository.EmpresaFilter) ([]model.Empresa, int64, error) {
	return s.empresaRepo.FindAll(filter)
}

func (s *empresaService) GetByID(id uint) (*model.Empresa, error) {
	empresa, err := s.empresaRepo.FindByIDWithRelations(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	return empresa, nil
}

func (s *empresaService) GetBySlug(slug string) (*model.Empresa, error) {
	empresa, err := s.empresaRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	return empresa, nil
}

func (s *empresaService) ListByOwner(userID uint) ([]model.Empresa, error) {
	empresas, _, err := s.empresaRepo.FindAll(repository.EmpresaFilter{
		UserID:    userID,
		WithTags:  true,
		WithImags: true,
	})
	return empresas, err
}

// FilterOptions returns the distinct cidades/bairros for the catalog sidebar,
// served from redis when warm.
func (s *empresaService) FilterOptions(ctx context.Context) (*repository.FilterOptions, error) {
	if redis.GetClient() != nil {
		var cached repository.FilterOptions
		found, err := redis.GetCachedJSON(ctx, filterOptionsCacheKey, &cached)
		if err != nil {
			logger.Warn("Filter options cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			return &cached, nil
		}
	}

	options, err := s.empresaRepo.ListFilterOptions()
	if err != nil {
		return nil, err
	}

	if redis.GetClient() != nil {
		if err := redis.CacheJSON(ctx, filterOptionsCacheKey, options, filterOptionsCacheTTL); err != nil {
			logger.Warn("Filter options cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return options, nil
}

func (s *empresaService) applyInput(empresa *model.Empresa, input EmpresaInput) error {
	if input.Cnpj != "" {
		cnpj := util.OnlyDigits(input.Cnpj)
		if !util.IsValidCNPJ(cnpj) {
			return ErrEmpresaInvalidDoc
		}
		if existing, err := s.empresaRepo.FindByCnpj(cnpj); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		} else if existing != nil && existing.ID != empresa.ID {
			return ErrEmpresaCnpjInUse
		}
		empresa.Cnpj = cnpj
	} else {
		empresa.Cnpj = ""
	}

	empresa.Nome = input.Nome
	empresa.Descricao = input.Descricao
	empresa.Cadastur = input.Cadastur
	empresa.Rua = input.Rua
	empresa.Bairro = input.Bairro
	empresa.Cidade = input.Cidade
	empresa.Numero = input.Numero
	empresa.Cep = util.OnlyDigits(input.Cep)
	empresa.EnderecoFull = input.EnderecoFull
	empresa.ContatoDireto = input.ContatoDireto
	empresa.Site = input.Site
	empresa.Digital = input.Digital
	empresa.MapsURL = input.MapsURL
	empresa.AppURL = input.AppURL
	empresa.Facebook = input.Facebook
	empresa.Instagram = input.Instagram
	empresa.SemTelefone = input.SemTelefone
	empresa.SemEmail = input.SemEmail

	if input.Latitude != nil {
		empresa.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		empresa.Longitude = *input.Longitude
	}

	// Waiver flags clear the field they waive
	if input.SemTelefone {
		empresa.Telefone = ""
	} else if input.Telefone != "" {
		telefone, err := util.NormalizePhone(input.Telefone)
		if err != nil {
			return err
		}
		empresa.Telefone = telefone
	} else {
		empresa.Telefone = ""
	}

	if input.SemEmail {
		empresa.Email = ""
	} else {
		empresa.Email = input.Email
	}

	return nil
}

// applyDefaults fills cidade, coordinates and descricao when absent
func (s *empresaService) applyDefaults(empresa *model.Empresa) {
	if empresa.Cidade == "" {
		empresa.Cidade = s.importCfg.DefaultCidade
	}
	if empresa.Latitude == 0 && empresa.Longitude == 0 {
		empresa.Latitude = s.importCfg.DefaultLat
		empresa.Longitude = s.importCfg.DefaultLng
	}
	if empresa.Descricao == "" {
		empresa.Descricao = model.DefaultDescricao
	}
}

func (s *empresaService) resolveTags(tagIDs []uint) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, err := s.tagRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTagNotFound
			}
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *empresaService) invalidateFilterCache() {
	if redis.GetClient() == nil {
		return
	}
	if err := redis.InvalidateKey(context.Background(), filterOptionsCacheKey); err != nil {
		logger.Warn("Filter options cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func canModify(empresa *model.Empresa, userID uint, isAdmin bool) bool {
	return isAdmin || empresa.UserID == userID
}
