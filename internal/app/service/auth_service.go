package service

import (
	"errors"
	"strings"
	"time"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"github.com/arutourism/arutourism-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrCpfCnpjAlreadyExists  = errors.New("cpf/cnpj already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidDocument       = errors.New("invalid cpf/cnpj")
	ErrInvalidTheme          = errors.New("invalid theme")
	ErrUserNotFound          = errors.New("user not found")
	ErrWrongPassword         = errors.New("wrong current password")
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	CpfCnpj  string
	FullName string
	Telefone string
}

type ProfileUpdateInput struct {
	FullName  *string
	Telefone  *string
	AvatarURL *string
	Theme     *string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, *util.TokenPair, error)
	Login(identifier, password string) (*model.User, *util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, input ProfileUpdateInput) (*model.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(input RegisterInput) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": input.Username,
		"email":    input.Email,
	})

	document := util.OnlyDigits(input.CpfCnpj)
	if !util.IsValidDocument(document) {
		logger.Warn("Registration failed: invalid document", map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, ErrInvalidDocument
	}

	// Check for duplicates before touching the database constraints
	if existing, err := s.userRepo.FindByEmail(input.Email); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	} else if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	if existing, err := s.userRepo.FindByUsername(input.Username); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	} else if existing != nil {
		logger.Warn("Registration failed: username already exists", map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, ErrUsernameAlreadyExists
	}

	if existing, err := s.userRepo.FindByCpfCnpj(document); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	} else if existing != nil {
		logger.Warn("Registration failed: document already exists", map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, ErrCpfCnpjAlreadyExists
	}

	telefone := ""
	if input.Telefone != "" {
		normalized, err := util.NormalizePhone(input.Telefone)
		if err != nil {
			return nil, nil, err
		}
		telefone = normalized
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, err
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
		Profile: &model.Profile{
			CpfCnpj:  document,
			FullName: input.FullName,
			Telefone: telefone,
			Theme:    model.ThemeLight,
		},
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, tokens, nil
}

// Login accepts username, email or CPF as the identifier:
// - contains "@": treated as email
// - all digits and a valid CPF: resolved through the profile document
// - anything else: treated as username
func (s *authService) Login(identifier, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"identifier": identifier,
	})

	user, err := s.resolveUser(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"identifier": identifier,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) resolveUser(identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.FindByEmail(identifier)
	}

	digits := util.OnlyDigits(identifier)
	if digits == identifier && util.IsValidCPF(digits) {
		return s.userRepo.FindByCpfCnpj(digits)
	}

	return s.userRepo.FindByUsername(identifier)
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithProfile(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, input ProfileUpdateInput) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByIDWithProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Profile == nil {
		user.Profile = &model.Profile{UserID: userID, Theme: model.ThemeLight}
	}

	updated := false
	if input.FullName != nil && *input.FullName != user.Profile.FullName {
		user.Profile.FullName = *input.FullName
		updated = true
	}
	if input.Telefone != nil {
		telefone := ""
		if *input.Telefone != "" {
			normalized, err := util.NormalizePhone(*input.Telefone)
			if err != nil {
				return nil, err
			}
			telefone = normalized
		}
		if telefone != user.Profile.Telefone {
			user.Profile.Telefone = telefone
			updated = true
		}
	}
	if input.AvatarURL != nil && *input.AvatarURL != user.Profile.AvatarURL {
		user.Profile.AvatarURL = *input.AvatarURL
		updated = true
	}
	if input.Theme != nil {
		theme := model.Theme(*input.Theme)
		if theme != model.ThemeLight && theme != model.ThemeDark {
			return nil, ErrInvalidTheme
		}
		if theme != user.Profile.Theme {
			user.Profile.Theme = theme
			updated = true
		}
	}

	if !updated {
		logger.Debug("No changes detected for user profile", map[string]interface{}{
			"user_id": userID,
		})
		return user, nil
	}

	if err := s.userRepo.UpdateProfile(user.Profile); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	return user, nil
}

func (s *authService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !util.VerifyPassword(user.PasswordHash, currentPassword) {
		logger.Warn("Password change failed: wrong current password", map[string]interface{}{
			"user_id": userID,
		})
		return ErrWrongPassword
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update password", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("Password changed successfully", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
