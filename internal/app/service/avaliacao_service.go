package service

import (
	"errors"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAvaliacaoNotFound  = errors.New("avaliação não encontrada")
	ErrAvaliacaoExists    = errors.New("avaliação já registrada")
	ErrAvaliacaoForbidden = errors.New("sem permissão para alterar esta avaliação")
	ErrInvalidNota        = errors.New("nota fora do intervalo permitido")
)

type AvaliacaoService interface {
	Create(empresaID, userID uint, nota int, comentario string) (*model.Avaliacao, error)
	Update(avaliacaoID, userID uint, isAdmin bool, nota int, comentario string) (*model.Avaliacao, error)
	Delete(avaliacaoID, userID uint, isAdmin bool) error
	ListByEmpresa(empresaID uint) ([]model.Avaliacao, *repository.AvaliacaoSummary, error)
}

type avaliacaoService struct {
	avaliacaoRepo repository.AvaliacaoRepository
	empresaRepo   repository.EmpresaRepository
}

func NewAvaliacaoService(
	avaliacaoRepo repository.AvaliacaoRepository,
	empresaRepo repository.EmpresaRepository,
) AvaliacaoService {
	return &avaliacaoService{
		avaliacaoRepo: avaliacaoRepo,
		empresaRepo:   empresaRepo,
	}
}

func (s *avaliacaoService) Create(empresaID, userID uint, nota int, comentario string) (*model.Avaliacao, error) {
	logger.Info("Creating avaliacao", map[string]interface{}{
		"empresa_id": empresaID,
		"user_id":    userID,
		"nota":       nota,
	})

	if nota < 1 || nota > 5 {
		return nil, ErrInvalidNota
	}

	if _, err := s.empresaRepo.FindByID(empresaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}

	// one rating per user per listing
	existing, err := s.avaliacaoRepo.FindByEmpresaAndUser(empresaID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Avaliacao rejected: user already rated", map[string]interface{}{
			"empresa_id": empresaID,
			"user_id":    userID,
		})
		return nil, ErrAvaliacaoExists
	}

	avaliacao := &model.Avaliacao{
		EmpresaID:  empresaID,
		UserID:     userID,
		Nota:       nota,
		Comentario: comentario,
	}

	if err := s.avaliacaoRepo.Create(avaliacao); err != nil {
		return nil, err
	}
	return avaliacao, nil
}

func (s *avaliacaoService) Update(avaliacaoID, userID uint, isAdmin bool, nota int, comentario string) (*model.Avaliacao, error) {
	if nota < 1 || nota > 5 {
		return nil, ErrInvalidNota
	}

	avaliacao, err := s.avaliacaoRepo.FindByID(avaliacaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvaliacaoNotFound
		}
		return nil, err
	}

	if !isAdmin && avaliacao.UserID != userID {
		return nil, ErrAvaliacaoForbidden
	}

	avaliacao.Nota = nota
	avaliacao.Comentario = comentario
	if err := s.avaliacaoRepo.Update(avaliacao); err != nil {
		return nil, err
	}
	return avaliacao, nil
}

func (s *avaliacaoService) Delete(avaliacaoID, userID uint, isAdmin bool) error {
	avaliacao, err := s.avaliacaoRepo.FindByID(avaliacaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvaliacaoNotFound
		}
		return err
	}

	if !isAdmin && avaliacao.UserID != userID {
		return ErrAvaliacaoForbidden
	}

	return s.avaliacaoRepo.Delete(avaliacaoID)
}

func (s *avaliacaoService) ListByEmpresa(empresaID uint) ([]model.Avaliacao, *repository.AvaliacaoSummary, error) {
	if _, err := s.empresaRepo.FindByID(empresaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEmpresaNotFound
		}
		return nil, nil, err
	}

	avaliacoes, err := s.avaliacaoRepo.FindByEmpresa(empresaID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.avaliacaoRepo.Summarize(empresaID)
	if err != nil {
		return nil, nil, err
	}

	return avaliacoes, summary, nil
}
