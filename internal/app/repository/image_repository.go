package repository

import (
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(image *model.EmpresaImage) error
	Update(image *model.EmpresaImage) error
	Delete(id uint) error
	FindByID(id uint) (*model.EmpresaImage, error)
	FindByEmpresa(empresaID uint) ([]model.EmpresaImage, error)
	CountByEmpresa(empresaID uint) (int64, error)
	ClearPrincipal(empresaID uint) error
	SetPrincipal(empresaID, imageID uint) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *model.EmpresaImage) error {
	logger.Debug("Creating empresa image in database", map[string]interface{}{
		"empresa_id":   image.EmpresaID,
		"is_principal": image.IsPrincipal,
	})

	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create empresa image in database", err, map[string]interface{}{
			"empresa_id": image.EmpresaID,
		})
		return err
	}
	return nil
}

func (r *imageRepository) Update(image *model.EmpresaImage) error {
	if err := r.db.Save(image).Error; err != nil {
		logger.Error("Failed to update empresa image in database", err, map[string]interface{}{
			"image_id": image.ID,
		})
		return err
	}
	return nil
}

func (r *imageRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.EmpresaImage{}, id).Error; err != nil {
		logger.Error("Failed to delete empresa image from database", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}

func (r *imageRepository) FindByID(id uint) (*model.EmpresaImage, error) {
	var image model.EmpresaImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) FindByEmpresa(empresaID uint) ([]model.EmpresaImage, error) {
	var images []model.EmpresaImage
	err := r.db.
		Where("empresa_id = ?", empresaID).
		Order("is_principal DESC, created_at ASC").
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to find images by empresa", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) CountByEmpresa(empresaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EmpresaImage{}).
		Where("empresa_id = ?", empresaID).
		Count(&count).Error
	return count, err
}

func (r *imageRepository) ClearPrincipal(empresaID uint) error {
	return r.db.Model(&model.EmpresaImage{}).
		Where("empresa_id = ?", empresaID).
		Update("is_principal", false).Error
}

// SetPrincipal demotes the current principal and promotes the given image,
// inside a transaction so at most one image stays principal.
func (r *imageRepository) SetPrincipal(empresaID, imageID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.EmpresaImage{}).
			Where("empresa_id = ?", empresaID).
			Update("is_principal", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.EmpresaImage{}).
			Where("id = ? AND empresa_id = ?", imageID, empresaID).
			Update("is_principal", true).Error
	})
}
