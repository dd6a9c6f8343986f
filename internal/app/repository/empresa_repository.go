package repository

import (
	"strings"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

// EmpresaFilter narrows catalog listings.
type EmpresaFilter struct {
	Search    string // matches nome or descricao
	Cidade    string
	Bairro    string
	TagIDs    []uint
	UserID    uint // only listings owned by this user
	Page      int
	PageSize  int
	OrderBy   string // nome | recentes | avaliacao
	WithTags  bool
	WithImags bool
}

// FilterOptions feeds the catalog filter sidebar.
type FilterOptions struct {
	Cidades []string `json:"cidades"`
	Bairros []string `json:"bairros"`
}

type EmpresaRepository interface {
	Create(empresa *model.Empresa) error
	Update(empresa *model.Empresa) error
	Delete(id uint) error
	FindAll(filter EmpresaFilter) ([]model.Empresa, int64, error)
	FindByID(id uint) (*model.Empresa, error)
	FindByIDWithRelations(id uint) (*model.Empresa, error)
	FindBySlug(slug string) (*model.Empresa, error)
	FindByTelefone(telefone string) (*model.Empresa, error)
	FindByCnpj(cnpj string) (*model.Empresa, error)
	FindByNomeExact(nome string) (*model.Empresa, error)
	ReplaceTags(empresa *model.Empresa, tags []model.Tag) error
	ListFilterOptions() (*FilterOptions, error)
	WithTx(tx *gorm.DB) EmpresaRepository
}

type empresaRepository struct {
	db *gorm.DB
}

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository {
	return &empresaRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *empresaRepository) WithTx(tx *gorm.DB) EmpresaRepository {
	return &empresaRepository{db: tx}
}

func (r *empresaRepository) Create(empresa *model.Empresa) error {
	logger.Debug("Creating empresa in database", map[string]interface{}{
		"nome":    empresa.Nome,
		"cidade":  empresa.Cidade,
		"user_id": empresa.UserID,
	})

	if err := r.db.Create(empresa).Error; err != nil {
		logger.Error("Failed to create empresa in database", err, map[string]interface{}{
			"nome":    empresa.Nome,
			"user_id": empresa.UserID,
		})
		return err
	}

	logger.Debug("Empresa created in database", map[string]interface{}{
		"empresa_id": empresa.ID,
		"slug":       empresa.Slug,
	})
	return nil
}

func (r *empresaRepository) Update(empresa *model.Empresa) error {
	logger.Debug("Updating empresa in database", map[string]interface{}{
		"empresa_id": empresa.ID,
		"nome":       empresa.Nome,
	})

	if err := r.db.Save(empresa).Error; err != nil {
		logger.Error("Failed to update empresa in database", err, map[string]interface{}{
			"empresa_id": empresa.ID,
		})
		return err
	}
	return nil
}

func (r *empresaRepository) Delete(id uint) error {
	logger.Debug("Deleting empresa from database", map[string]interface{}{
		"empresa_id": id,
	})

	if err := r.db.Delete(&model.Empresa{}, id).Error; err != nil {
		logger.Error("Failed to delete empresa from database", err, map[string]interface{}{
			"empresa_id": id,
		})
		return err
	}
	return nil
}

func (r *empresaRepository) FindAll(filter EmpresaFilter) ([]model.Empresa, int64, error) {
	logger.Debug("Finding empresas", map[string]interface{}{
		"search": filter.Search,
		"cidade": filter.Cidade,
		"bairro": filter.Bairro,
		"tags":   filter.TagIDs,
	})

	query := r.db.Model(&model.Empresa{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(nome) LIKE ? OR LOWER(descricao) LIKE ?", like, like)
	}
	if filter.Cidade != "" {
		query = query.Where("cidade = ?", filter.Cidade)
	}
	if filter.Bairro != "" {
		query = query.Where("bairro = ?", filter.Bairro)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN empresa_tags ON empresa_tags.empresa_id = empresas.id").
			Where("empresa_tags.tag_id IN ?", filter.TagIDs).
			Distinct("empresas.*")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count empresas", err, nil)
		return nil, 0, err
	}

	switch filter.OrderBy {
	case "recentes":
		query = query.Order("empresas.created_at DESC")
	case "avaliacao":
		query = query.
			Joins("LEFT JOIN avaliacoes ON avaliacoes.empresa_id = empresas.id AND avaliacoes.deleted_at IS NULL").
			Group("empresas.id").
			Order("AVG(avaliacoes.nota) DESC NULLS LAST")
	default:
		query = query.Order("empresas.nome ASC")
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if filter.WithTags {
		query = query.Preload("Tags")
	}
	if filter.WithImags {
		query = query.Preload("Imagens")
	}

	var empresas []model.Empresa
	if err := query.Find(&empresas).Error; err != nil {
		logger.Error("Failed to find empresas", err, nil)
		return nil, 0, err
	}

	logger.Debug("Empresas found", map[string]interface{}{
		"count": len(empresas),
		"total": total,
	})
	return empresas, total, nil
}

func (r *empresaRepository) FindByID(id uint) (*model.Empresa, error) {
	var empresa model.Empresa
	if err := r.db.First(&empresa, id).Error; err != nil {
		logger.Error("Failed to find empresa by ID", err, map[string]interface{}{
			"empresa_id": id,
		})
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) FindByIDWithRelations(id uint) (*model.Empresa, error) {
	var empresa model.Empresa
	err := r.db.
		Preload("Tags").
		Preload("Imagens").
		First(&empresa, id).Error
	if err != nil {
		logger.Error("Failed to find empresa with relations", err, map[string]interface{}{
			"empresa_id": id,
		})
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) FindBySlug(slug string) (*model.Empresa, error) {
	var empresa model.Empresa
	err := r.db.
		Preload("Tags").
		Preload("Imagens").
		Where("slug = ?", slug).
		First(&empresa).Error
	if err != nil {
		logger.Error("Failed to find empresa by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) FindByTelefone(telefone string) (*model.Empresa, error) {
	var empresa model.Empresa
	err := r.db.Where("telefone = ? AND telefone != ''", telefone).First(&empresa).Error
	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) FindByCnpj(cnpj string) (*model.Empresa, error) {
	var empresa model.Empresa
	err := r.db.Where("cnpj = ? AND cnpj != ''", cnpj).First(&empresa).Error
	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

// FindByNomeExact performs a case-insensitive exact match on the name
func (r *empresaRepository) FindByNomeExact(nome string) (*model.Empresa, error) {
	var empresa model.Empresa
	err := r.db.Where("LOWER(nome) = LOWER(?)", nome).First(&empresa).Error
	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) ReplaceTags(empresa *model.Empresa, tags []model.Tag) error {
	logger.Debug("Replacing empresa tags", map[string]interface{}{
		"empresa_id": empresa.ID,
		"tag_count":  len(tags),
	})

	if err := r.db.Model(empresa).Association("Tags").Replace(tags); err != nil {
		logger.Error("Failed to replace empresa tags", err, map[string]interface{}{
			"empresa_id": empresa.ID,
		})
		return err
	}
	return nil
}

func (r *empresaRepository) ListFilterOptions() (*FilterOptions, error) {
	logger.Debug("Listing catalog filter options")

	options := &FilterOptions{}

	if err := r.db.Model(&model.Empresa{}).
		Distinct("cidade").
		Where("cidade != ''").
		Order("cidade ASC").
		Pluck("cidade", &options.Cidades).Error; err != nil {
		logger.Error("Failed to list cidades", err, nil)
		return nil, err
	}

	if err := r.db.Model(&model.Empresa{}).
		Distinct("bairro").
		Where("bairro != ''").
		Order("bairro ASC").
		Pluck("bairro", &options.Bairros).Error; err != nil {
		logger.Error("Failed to list bairros", err, nil)
		return nil, err
	}

	return options, nil
}
