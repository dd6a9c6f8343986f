package model

import (
	"time"

	"gorm.io/gorm"
)

// Avaliacao is a 1-5 star rating with an optional comment. A user rates a
// given listing at most once; the composite unique index backs that up.
type Avaliacao struct {
	ID uint `gorm:"primarykey" json:"id"`

	EmpresaID uint `gorm:"not null;index:idx_avaliacao_empresa_user,unique" json:"empresa_id"`
	UserID    uint `gorm:"not null;index:idx_avaliacao_empresa_user,unique" json:"user_id"`

	Nota       int    `gorm:"not null;check:nota >= 1 AND nota <= 5" json:"nota"`
	Comentario string `gorm:"type:text" json:"comentario"`

	Empresa Empresa `gorm:"foreignKey:EmpresaID;constraint:OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Avaliacao) TableName() string {
	return "avaliacoes"
}
