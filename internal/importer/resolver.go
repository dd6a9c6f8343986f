package importer

import (
	"errors"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"github.com/arutourism/arutourism-backend/pkg/util"
	"gorm.io/gorm"
)

// TagResolver is the per-run get-or-create cache for categories. It is local
// to one import invocation; nothing is shared across requests, so no
// invalidation is needed.
type TagResolver struct {
	tagRepo repository.TagRepository
	cache   map[string]*model.Tag
}

func NewTagResolver(tagRepo repository.TagRepository) *TagResolver {
	return &TagResolver{
		tagRepo: tagRepo,
		cache:   make(map[string]*model.Tag),
	}
}

// Resolve returns the tag for a raw category name, creating it when absent.
// Lookup order: in-run cache, case-insensitive exact match, normalized scan
// over all tags (catches accent variants the collation misses), create.
func (r *TagResolver) Resolve(rawName string) (*model.Tag, error) {
	name := util.Squeeze(rawName)
	if name == "" {
		return nil, nil
	}

	key := util.NormalizeKey(name)
	if tag, ok := r.cache[key]; ok {
		return tag, nil
	}

	tag, err := r.tagRepo.FindByNomeInsensitive(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if tag == nil {
		tag, err = r.scanNormalized(key)
		if err != nil {
			return nil, err
		}
	}

	if tag == nil {
		tag = &model.Tag{Nome: name}
		if err := r.tagRepo.Create(tag); err != nil {
			return nil, err
		}
		logger.Debug("Tag created during import", map[string]interface{}{
			"nome": name,
		})
	}

	r.cache[key] = tag
	return tag, nil
}

func (r *TagResolver) scanNormalized(key string) (*model.Tag, error) {
	tags, err := r.tagRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range tags {
		if util.NormalizeKey(tags[i].Nome) == key {
			return &tags[i], nil
		}
	}
	return nil, nil
}

// ResolveAll resolves a list of category names, skipping empties.
func (r *TagResolver) ResolveAll(names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}
