package model

import (
	"time"
)

// MaxImagesPerEmpresa caps how many images a single listing may carry.
const MaxImagesPerEmpresa = 5

// EmpresaImage is an image attached to a listing. Exactly one image per
// listing may be principal; the service layer enforces the invariant.
type EmpresaImage struct {
	ID        uint `gorm:"primarykey" json:"id"`
	EmpresaID uint `gorm:"not null;index" json:"empresa_id"`

	URL         string `gorm:"type:varchar(500);not null" json:"url"`
	Legenda     string `gorm:"type:varchar(255)" json:"legenda"`
	IsPrincipal bool   `gorm:"default:false;index" json:"is_principal"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EmpresaImage) TableName() string {
	return "empresa_images"
}
