package repository

import (
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.EmpresaFavorite) error
	Delete(empresaID, userID uint) error
	Exists(empresaID, userID uint) (bool, error)
	FindByUser(userID uint) ([]model.EmpresaFavorite, error)
	CountByEmpresa(empresaID uint) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.EmpresaFavorite) error {
	logger.Debug("Creating favorite in database", map[string]interface{}{
		"empresa_id": favorite.EmpresaID,
		"user_id":    favorite.UserID,
	})

	if err := r.db.Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"empresa_id": favorite.EmpresaID,
			"user_id":    favorite.UserID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) Delete(empresaID, userID uint) error {
	result := r.db.
		Where("empresa_id = ? AND user_id = ?", empresaID, userID).
		Delete(&model.EmpresaFavorite{})
	if result.Error != nil {
		logger.Error("Failed to delete favorite from database", result.Error, map[string]interface{}{
			"empresa_id": empresaID,
			"user_id":    userID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(empresaID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.EmpresaFavorite{}).
		Where("empresa_id = ? AND user_id = ?", empresaID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) FindByUser(userID uint) ([]model.EmpresaFavorite, error) {
	var favorites []model.EmpresaFavorite
	err := r.db.
		Preload("Empresa").
		Preload("Empresa.Imagens").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		logger.Error("Failed to find favorites by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) CountByEmpresa(empresaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EmpresaFavorite{}).
		Where("empresa_id = ?", empresaID).
		Count(&count).Error
	return count, err
}
