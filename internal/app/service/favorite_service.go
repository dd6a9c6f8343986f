package service

import (
	"errors"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorito não encontrado")

type FavoriteService interface {
	Add(empresaID, userID uint) (*model.EmpresaFavorite, error)
	Remove(empresaID, userID uint) error
	ListByUser(userID uint) ([]model.EmpresaFavorite, error)
	Status(empresaID, userID uint) (bool, int64, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	empresaRepo  repository.EmpresaRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	empresaRepo repository.EmpresaRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		empresaRepo:  empresaRepo,
	}
}

// Add favorites a listing. Favoriting twice is a no-op returning the
// existing state rather than an error.
func (s *favoriteService) Add(empresaID, userID uint) (*model.EmpresaFavorite, error) {
	if _, err := s.empresaRepo.FindByID(empresaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(empresaID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Debug("Favorite already present", map[string]interface{}{
			"empresa_id": empresaID,
			"user_id":    userID,
		})
		return &model.EmpresaFavorite{EmpresaID: empresaID, UserID: userID}, nil
	}

	favorite := &model.EmpresaFavorite{
		EmpresaID: empresaID,
		UserID:    userID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}

	logger.Info("Empresa favorited", map[string]interface{}{
		"empresa_id": empresaID,
		"user_id":    userID,
	})
	return favorite, nil
}

func (s *favoriteService) Remove(empresaID, userID uint) error {
	if err := s.favoriteRepo.Delete(empresaID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

func (s *favoriteService) ListByUser(userID uint) ([]model.EmpresaFavorite, error) {
	return s.favoriteRepo.FindByUser(userID)
}

// Status returns whether the user favorited the listing and the total count.
func (s *favoriteService) Status(empresaID, userID uint) (bool, int64, error) {
	exists := false
	if userID != 0 {
		var err error
		exists, err = s.favoriteRepo.Exists(empresaID, userID)
		if err != nil {
			return false, 0, err
		}
	}

	count, err := s.favoriteRepo.CountByEmpresa(empresaID)
	if err != nil {
		return false, 0, err
	}
	return exists, count, nil
}
