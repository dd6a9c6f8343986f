package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Theme is the UI theme preference stored on the profile
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Profile  *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Empresas []Empresa `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"empresas,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile extends the auth user with the directory-specific fields.
// CPF/CNPJ is stored digits-only and is unique across accounts.
type Profile struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CpfCnpj   string         `gorm:"type:varchar(14);uniqueIndex;not null" json:"cpf_cnpj"`
	FullName  string         `gorm:"type:varchar(255)" json:"full_name"`
	Telefone  string         `gorm:"type:varchar(20)" json:"telefone"`
	AvatarURL string         `json:"avatar_url"`
	Theme     Theme          `gorm:"type:varchar(10);default:'light'" json:"theme"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
