package service

import (
	"errors"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
	ErrTagInvalidParent = errors.New("parent must be a root tag")
	ErrTagHasChildren   = errors.New("tag has children")
	ErrTagInUse         = errors.New("tag is assigned to empresas")
)

type TagService interface {
	Create(nome string, parentID *uint) (*model.Tag, error)
	Rename(id uint, nome string) (*model.Tag, error)
	Delete(id uint) error
	Tree() ([]model.Tag, error)
	List() ([]model.Tag, error)
	GetByID(id uint) (*model.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) Create(nome string, parentID *uint) (*model.Tag, error) {
	logger.Info("Creating tag", map[string]interface{}{
		"nome":      nome,
		"parent_id": parentID,
	})

	if existing, err := s.tagRepo.FindByNomeInsensitive(nome); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, ErrTagAlreadyExists
	}

	// one-level hierarchy: a child cannot hang off another child
	if parentID != nil {
		parent, err := s.tagRepo.FindByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTagNotFound
			}
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, ErrTagInvalidParent
		}
	}

	tag := &model.Tag{Nome: nome, ParentID: parentID}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Rename(id uint, nome string) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	if existing, err := s.tagRepo.FindByNomeInsensitive(nome); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, ErrTagAlreadyExists
	}

	tag.Nome = nome
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(id uint) error {
	if _, err := s.tagRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	children, err := s.tagRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrTagHasChildren
	}

	inUse, err := s.tagRepo.CountEmpresas(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrTagInUse
	}

	return s.tagRepo.Delete(id)
}

func (s *tagService) Tree() ([]model.Tag, error) {
	return s.tagRepo.FindRoots()
}

func (s *tagService) List() ([]model.Tag, error) {
	return s.tagRepo.FindAll()
}

func (s *tagService) GetByID(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
