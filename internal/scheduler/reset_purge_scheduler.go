package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/arutourism/arutourism-backend/internal/app/service"
	"github.com/arutourism/arutourism-backend/pkg/logger"
)

// ResetPurgeScheduler removes stale password reset tokens once a day so
// the table does not grow without bound.
type ResetPurgeScheduler struct {
	cron                 *cron.Cron
	passwordResetService service.PasswordResetService
}

func NewResetPurgeScheduler(passwordResetService service.PasswordResetService) *ResetPurgeScheduler {
	return &ResetPurgeScheduler{
		cron:                 cron.New(),
		passwordResetService: passwordResetService,
	}
}

// Start schedules the purge for 03:00 every day.
func (s *ResetPurgeScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled reset token purge", nil)

		removed, err := s.passwordResetService.PurgeExpired()
		if err != nil {
			logger.Error("Failed to purge expired reset tokens", err)
			return
		}

		logger.Info("Expired reset tokens purged", map[string]interface{}{
			"removed": removed,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset token purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reset token purge scheduler started (daily at 3:00 AM)", nil)

	return nil
}

func (s *ResetPurgeScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Reset token purge scheduler stopped", nil)
}
