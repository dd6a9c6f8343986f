package service

import (
	"errors"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound   = errors.New("imagem não encontrada")
	ErrImageLimit      = errors.New("limite de imagens atingido")
	ErrImageForbidden  = errors.New("sem permissão para alterar esta empresa")
	ErrImageWrongOwner = errors.New("imagem não pertence a esta empresa")
)

type ImageService interface {
	Add(empresaID, userID uint, isAdmin bool, url, legenda string, principal bool) (*model.EmpresaImage, error)
	Remove(empresaID, imageID, userID uint, isAdmin bool) error
	SetPrincipal(empresaID, imageID, userID uint, isAdmin bool) error
	ListByEmpresa(empresaID uint) ([]model.EmpresaImage, error)
}

type imageService struct {
	imageRepo   repository.ImageRepository
	empresaRepo repository.EmpresaRepository
}

func NewImageService(
	imageRepo repository.ImageRepository,
	empresaRepo repository.EmpresaRepository,
) ImageService {
	return &imageService{
		imageRepo:   imageRepo,
		empresaRepo: empresaRepo,
	}
}

// Add attaches an image to a listing. The first image of a listing becomes
// principal automatically; a later principal demotes the previous one.
func (s *imageService) Add(empresaID, userID uint, isAdmin bool, url, legenda string, principal bool) (*model.EmpresaImage, error) {
	empresa, err := s.ownedEmpresa(empresaID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	count, err := s.imageRepo.CountByEmpresa(empresa.ID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxImagesPerEmpresa {
		logger.Warn("Image rejected: limit reached", map[string]interface{}{
			"empresa_id": empresaID,
			"count":      count,
		})
		return nil, ErrImageLimit
	}

	if count == 0 {
		principal = true
	}

	if principal {
		if err := s.imageRepo.ClearPrincipal(empresa.ID); err != nil {
			return nil, err
		}
	}

	image := &model.EmpresaImage{
		EmpresaID:   empresa.ID,
		URL:         url,
		Legenda:     legenda,
		IsPrincipal: principal,
	}
	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}

	logger.Info("Empresa image added", map[string]interface{}{
		"empresa_id":   empresaID,
		"image_id":     image.ID,
		"is_principal": image.IsPrincipal,
	})
	return image, nil
}

// Remove deletes an image. When the principal is removed, the oldest
// remaining image is promoted so the listing keeps a cover.
func (s *imageService) Remove(empresaID, imageID, userID uint, isAdmin bool) error {
	if _, err := s.ownedEmpresa(empresaID, userID, isAdmin); err != nil {
		return err
	}

	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if image.EmpresaID != empresaID {
		return ErrImageWrongOwner
	}

	wasPrincipal := image.IsPrincipal
	if err := s.imageRepo.Delete(imageID); err != nil {
		return err
	}

	if wasPrincipal {
		remaining, err := s.imageRepo.FindByEmpresa(empresaID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.imageRepo.SetPrincipal(empresaID, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	logger.Info("Empresa image removed", map[string]interface{}{
		"empresa_id": empresaID,
		"image_id":   imageID,
	})
	return nil
}

func (s *imageService) SetPrincipal(empresaID, imageID, userID uint, isAdmin bool) error {
	if _, err := s.ownedEmpresa(empresaID, userID, isAdmin); err != nil {
		return err
	}

	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if image.EmpresaID != empresaID {
		return ErrImageWrongOwner
	}

	return s.imageRepo.SetPrincipal(empresaID, imageID)
}

func (s *imageService) ListByEmpresa(empresaID uint) ([]model.EmpresaImage, error) {
	if _, err := s.empresaRepo.FindByID(empresaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	return s.imageRepo.FindByEmpresa(empresaID)
}

func (s *imageService) ownedEmpresa(empresaID, userID uint, isAdmin bool) (*model.Empresa, error) {
	empresa, err := s.empresaRepo.FindByID(empresaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	if !canModify(empresa, userID, isAdmin) {
		return nil, ErrImageForbidden
	}
	return empresa, nil
}
