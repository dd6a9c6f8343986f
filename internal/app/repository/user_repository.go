package repository

import (
	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByIDWithProfile(id uint) (*model.User, error)
	FindByIDWithEmpresas(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByCpfCnpj(cpfCnpj string) (*model.User, error)
	Update(user *model.User) error
	UpdateProfile(profile *model.Profile) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByIDWithProfile(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile").First(&user, id).Error
	if err != nil {
		logger.Error("Failed to find user with profile in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithEmpresas(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile").Preload("Empresas").First(&user, id).Error
	if err != nil {
		logger.Error("Failed to find user with empresas in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	logger.Debug("User with empresas found in database", map[string]interface{}{
		"user_id":       user.ID,
		"empresa_count": len(user.Empresas),
	})
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		logger.Error("Failed to find user by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		logger.Error("Failed to find user by username in database", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}
	return &user, nil
}

// FindByCpfCnpj resolves a user through the document stored on the profile
func (r *userRepository) FindByCpfCnpj(cpfCnpj string) (*model.User, error) {
	var user model.User
	err := r.db.
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.cpf_cnpj = ?", cpfCnpj).
		First(&user).Error
	if err != nil {
		logger.Error("Failed to find user by document in database", err, nil)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) UpdateProfile(profile *model.Profile) error {
	logger.Debug("Updating profile in database", map[string]interface{}{
		"user_id": profile.UserID,
	})

	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to update profile in database", err, map[string]interface{}{
			"user_id": profile.UserID,
		})
		return err
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user from database", map[string]interface{}{
		"user_id": id,
	})

	if err := r.db.Delete(&model.User{}, id).Error; err != nil {
		logger.Error("Failed to delete user from database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}
