package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag is a category label. ParentID builds a one-level hierarchy: root tags
// have no parent, children may not themselves be parents.
type Tag struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Nome     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"nome"`
	ParentID *uint  `gorm:"index" json:"parent_id"`

	Parent   *Tag  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Tag `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	Empresas []Empresa `gorm:"many2many:empresa_tags;" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// IsRoot reports whether the tag sits at the top of the hierarchy.
func (t *Tag) IsRoot() bool {
	return t.ParentID == nil
}
