package repository

import (
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

// AvaliacaoSummary aggregates ratings for a listing.
type AvaliacaoSummary struct {
	Media float64 `json:"media"`
	Total int64   `json:"total"`
}

type AvaliacaoRepository interface {
	Create(avaliacao *model.Avaliacao) error
	Update(avaliacao *model.Avaliacao) error
	Delete(id uint) error
	FindByID(id uint) (*model.Avaliacao, error)
	FindByEmpresa(empresaID uint) ([]model.Avaliacao, error)
	FindByEmpresaAndUser(empresaID, userID uint) (*model.Avaliacao, error)
	Summarize(empresaID uint) (*AvaliacaoSummary, error)
}

type avaliacaoRepository struct {
	db *gorm.DB
}

func NewAvaliacaoRepository(db *gorm.DB) AvaliacaoRepository {
	return &avaliacaoRepository{db: db}
}

func (r *avaliacaoRepository) Create(avaliacao *model.Avaliacao) error {
	logger.Debug("Creating avaliacao in database", map[string]interface{}{
		"empresa_id": avaliacao.EmpresaID,
		"user_id":    avaliacao.UserID,
		"nota":       avaliacao.Nota,
	})

	if err := r.db.Create(avaliacao).Error; err != nil {
		logger.Error("Failed to create avaliacao in database", err, map[string]interface{}{
			"empresa_id": avaliacao.EmpresaID,
			"user_id":    avaliacao.UserID,
		})
		return err
	}
	return nil
}

func (r *avaliacaoRepository) Update(avaliacao *model.Avaliacao) error {
	if err := r.db.Save(avaliacao).Error; err != nil {
		logger.Error("Failed to update avaliacao in database", err, map[string]interface{}{
			"avaliacao_id": avaliacao.ID,
		})
		return err
	}
	return nil
}

func (r *avaliacaoRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Avaliacao{}, id).Error; err != nil {
		logger.Error("Failed to delete avaliacao from database", err, map[string]interface{}{
			"avaliacao_id": id,
		})
		return err
	}
	return nil
}

func (r *avaliacaoRepository) FindByID(id uint) (*model.Avaliacao, error) {
	var avaliacao model.Avaliacao
	if err := r.db.First(&avaliacao, id).Error; err != nil {
		return nil, err
	}
	return &avaliacao, nil
}

func (r *avaliacaoRepository) FindByEmpresa(empresaID uint) ([]model.Avaliacao, error) {
	var avaliacoes []model.Avaliacao
	err := r.db.
		Preload("User").
		Where("empresa_id = ?", empresaID).
		Order("created_at DESC").
		Find(&avaliacoes).Error
	if err != nil {
		logger.Error("Failed to find avaliacoes by empresa", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return nil, err
	}
	return avaliacoes, nil
}

func (r *avaliacaoRepository) FindByEmpresaAndUser(empresaID, userID uint) (*model.Avaliacao, error) {
	var avaliacao model.Avaliacao
	err := r.db.
		Where("empresa_id = ? AND user_id = ?", empresaID, userID).
		First(&avaliacao).Error
	if err != nil {
		return nil, err
	}
	return &avaliacao, nil
}

func (r *avaliacaoRepository) Summarize(empresaID uint) (*AvaliacaoSummary, error) {
	var summary AvaliacaoSummary
	err := r.db.Model(&model.Avaliacao{}).
		Select("COALESCE(AVG(nota), 0) as media, COUNT(*) as total").
		Where("empresa_id = ?", empresaID).
		Scan(&summary).Error
	if err != nil {
		logger.Error("Failed to summarize avaliacoes", err, map[string]interface{}{
			"empresa_id": empresaID,
		})
		return nil, err
	}
	return &summary, nil
}
