package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/arutourism/arutourism-backend/internal/app/model"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/pkg/logger"
	"github.com/arutourism/arutourism-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrResetTokenInvalid = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("expired reset token")
)

const resetTokenTTL = time.Hour

type PasswordResetService interface {
	RequestReset(email string) (*model.PasswordReset, error)
	ResetPassword(token, newPassword string) error
	PurgeExpired() (int64, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
	}
}

// RequestReset issues a single-use token for the account tied to the email.
// To avoid account enumeration, an unknown email returns nil without error.
func (s *passwordResetService) RequestReset(email string) (*model.PasswordReset, error) {
	logger.Info("Password reset requested", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset for unknown email", map[string]interface{}{
				"email": email,
			})
			return nil, nil
		}
		return nil, err
	}

	token, err := generateResetToken()
	if err != nil {
		logger.Error("Failed to generate reset token", err, nil)
		return nil, err
	}

	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	if err := s.resetRepo.Create(reset); err != nil {
		return nil, err
	}

	logger.Info("Password reset token issued", map[string]interface{}{
		"user_id": user.ID,
	})
	return reset, nil
}

func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if reset.UsedAt != nil {
		return ErrResetTokenInvalid
	}
	if time.Now().After(reset.ExpiresAt) {
		return ErrResetTokenExpired
	}

	user, err := s.userRepo.FindByID(reset.UserID)
	if err != nil {
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.resetRepo.MarkAsUsed(reset.ID); err != nil {
		return err
	}

	logger.Info("Password reset completed", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (s *passwordResetService) PurgeExpired() (int64, error) {
	return s.resetRepo.DeleteExpired()
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
