package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/arutourism/arutourism-backend/pkg/util"
	"gorm.io/gorm"
)

// DefaultDescricao fills listings registered without a description, asking
// the responsible party to complete the data.
const DefaultDescricao = "Descrição ainda não informada. Este estabelecimento está em processo de complementação de dados. Se você é o responsável, atualize as informações."

// Empresa is a business/attraction listing owned by a user.
type Empresa struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"owner,omitempty"`

	Nome string `gorm:"type:varchar(255);not null;index" json:"nome"`
	Slug string `gorm:"type:varchar(255);uniqueIndex" json:"slug"`

	// identificação
	Cnpj     string `gorm:"type:varchar(14);index" json:"cnpj"`
	Cadastur string `gorm:"type:varchar(50)" json:"cadastur"`

	// descrição / endereço granular
	Descricao    string `gorm:"type:text" json:"descricao"`
	Rua          string `gorm:"type:varchar(255)" json:"rua"`
	Bairro       string `gorm:"type:varchar(100)" json:"bairro"`
	Cidade       string `gorm:"type:varchar(100);index" json:"cidade"`
	Numero       string `gorm:"type:varchar(10)" json:"numero"`
	Cep          string `gorm:"type:varchar(8)" json:"cep"`
	EnderecoFull string `gorm:"type:varchar(255)" json:"endereco_full"`

	// localização: obrigatória, default no centro do município
	Latitude  float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude float64 `gorm:"type:decimal(11,8)" json:"longitude"`

	// contatos
	Telefone      string `gorm:"type:varchar(20)" json:"telefone"`
	Email         string `gorm:"type:varchar(255)" json:"email"`
	ContatoDireto string `gorm:"type:varchar(255)" json:"contato_direto"`

	// presença digital
	Site      string `json:"site"`
	Digital   string `json:"digital"`
	MapsURL   string `json:"maps_url"`
	AppURL    string `json:"app_url"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`

	// flags de dispensa: quando marcadas, o campo correspondente fica vazio
	SemTelefone bool `gorm:"default:false" json:"sem_telefone"`
	SemEmail    bool `gorm:"default:false" json:"sem_email"`

	Tags    []Tag          `gorm:"many2many:empresa_tags;" json:"tags,omitempty"`
	Imagens []EmpresaImage `gorm:"foreignKey:EmpresaID;constraint:OnDelete:CASCADE" json:"imagens,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Empresa) TableName() string {
	return "empresas"
}

// EmpresaFavorite ties a user to a favorited listing.
type EmpresaFavorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EmpresaID uint `gorm:"not null;index:idx_empresa_user_fav,unique" json:"empresa_id"`
	UserID    uint `gorm:"not null;index:idx_empresa_user_fav,unique" json:"user_id"`

	Empresa Empresa `gorm:"foreignKey:EmpresaID;constraint:OnDelete:CASCADE" json:"empresa,omitempty"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EmpresaFavorite) TableName() string {
	return "empresa_favorites"
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRuns     = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe slug from the listing name
func GenerateSlug(nome string) string {
	slug := strings.ToLower(util.StripDiacritics(strings.TrimSpace(nome)))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug
}

// BeforeCreate assigns a unique slug, appending -1, -2, ... on collision
func (e *Empresa) BeforeCreate(tx *gorm.DB) error {
	if e.Slug == "" {
		slug, err := uniqueSlug(tx, GenerateSlug(e.Nome), 0)
		if err != nil {
			return err
		}
		e.Slug = slug
	}
	return nil
}

// BeforeUpdate regenerates the slug when the name changed. The old slug is
// released implicitly; nothing reserves it afterwards.
func (e *Empresa) BeforeUpdate(tx *gorm.DB) error {
	if e.ID == 0 {
		return nil
	}

	var old Empresa
	if err := tx.Select("id", "nome").First(&old, e.ID).Error; err != nil {
		return err
	}

	if e.Nome != "" && e.Nome != old.Nome {
		slug, err := uniqueSlug(tx, GenerateSlug(e.Nome), e.ID)
		if err != nil {
			return err
		}
		e.Slug = slug
	}
	return nil
}

func uniqueSlug(tx *gorm.DB, base string, excludeID uint) (string, error) {
	slug := base
	counter := 0
	for {
		var count int64
		query := tx.Model(&Empresa{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id != ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		counter++
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
