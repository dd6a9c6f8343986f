package repository

import (
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	Update(tag *model.Tag) error
	Delete(id uint) error
	FindAll() ([]model.Tag, error)
	FindRoots() ([]model.Tag, error)
	FindByID(id uint) (*model.Tag, error)
	FindByNome(nome string) (*model.Tag, error)
	FindByNomeInsensitive(nome string) (*model.Tag, error)
	CountChildren(id uint) (int64, error)
	CountEmpresas(id uint) (int64, error)
	WithTx(tx *gorm.DB) TagRepository
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	logger.Debug("Creating tag in database", map[string]interface{}{
		"nome":      tag.Nome,
		"parent_id": tag.ParentID,
	})

	if err := r.db.Create(tag).Error; err != nil {
		logger.Error("Failed to create tag in database", err, map[string]interface{}{
			"nome": tag.Nome,
		})
		return err
	}
	return nil
}

func (r *tagRepository) Update(tag *model.Tag) error {
	if err := r.db.Save(tag).Error; err != nil {
		logger.Error("Failed to update tag in database", err, map[string]interface{}{
			"tag_id": tag.ID,
		})
		return err
	}
	return nil
}

func (r *tagRepository) Delete(id uint) error {
	logger.Debug("Deleting tag from database", map[string]interface{}{
		"tag_id": id,
	})

	if err := r.db.Delete(&model.Tag{}, id).Error; err != nil {
		logger.Error("Failed to delete tag from database", err, map[string]interface{}{
			"tag_id": id,
		})
		return err
	}
	return nil
}

func (r *tagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Order("nome ASC").Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags", err, nil)
		return nil, err
	}
	return tags, nil
}

// FindRoots returns the top-level tags with their children preloaded
func (r *tagRepository) FindRoots() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.
		Where("parent_id IS NULL").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.nome ASC")
		}).
		Order("nome ASC").
		Find(&tags).Error
	if err != nil {
		logger.Error("Failed to find root tags", err, nil)
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		logger.Error("Failed to find tag by ID", err, map[string]interface{}{
			"tag_id": id,
		})
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByNome(nome string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("nome = ?", nome).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByNomeInsensitive matches ignoring case, used by the import resolver
func (r *tagRepository) FindByNomeInsensitive(nome string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("LOWER(nome) = LOWER(?)", nome).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) CountChildren(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Tag{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

func (r *tagRepository) CountEmpresas(id uint) (int64, error) {
	var count int64
	err := r.db.Table("empresa_tags").Where("tag_id = ?", id).Count(&count).Error
	return count, err
}
