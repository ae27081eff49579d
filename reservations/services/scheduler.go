package services

import (
	"fmt"
	"os"
	"time"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/reservations/repositories"
	"dorm-reservation-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	maintenanceMaxRetries = 3
	maintenanceRetryDelay = 2 * time.Minute

	// stalePendingGraceDays is how long a pending request may sit past its
	// check-in date before the scheduler cancels it.
	stalePendingGraceDays = 7

	exportFileTTL = 24 * time.Hour
)

// MaintenanceScheduler runs the daily reservation upkeep: approved stays
// whose checkout passed become completed, pending requests nobody acted on
// get cancelled, and expired export files are removed.
type MaintenanceScheduler struct {
	reservationRepo repositories.ReservationRepository
	cron            *cron.Cron

	nowFunc func() time.Time
}

func NewMaintenanceScheduler(reservationRepo repositories.ReservationRepository) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		reservationRepo: reservationRepo,
		cron:            cron.New(),
		nowFunc:         time.Now,
	}
}

// Start schedules the maintenance run daily at 1 AM and returns. Failures
// are retried a few times before the admin gets an alert email.
func (s *MaintenanceScheduler) Start() {
	s.cron.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Running scheduled reservation maintenance")

		var retries int
		for retries < maintenanceMaxRetries {
			if err := s.RunOnce(); err == nil {
				config.Logger.Info("Reservation maintenance completed")
				return
			} else {
				config.Logger.Error("Reservation maintenance failed", zap.Int("attempt", retries+1), zap.Error(err))
				retries++
				time.Sleep(maintenanceRetryDelay)
			}
		}

		config.Logger.Error("Reservation maintenance failed after retries", zap.Int("retries", retries))
		if adminEmail := config.GetEnvOrDefault("ADMIN_ALERT_EMAIL", ""); adminEmail != "" {
			utils.SendEmail(
				adminEmail,
				"Reservation Maintenance Failed",
				fmt.Sprintf("The scheduled reservation maintenance task failed after %d attempts.", retries),
				"",
			)
		}
	})
	s.cron.Start()
}

func (s *MaintenanceScheduler) Stop() {
	s.cron.Stop()
}

// RunOnce performs a single maintenance pass.
func (s *MaintenanceScheduler) RunOnce() error {
	today := truncateToDate(s.nowFunc().UTC())

	completed, err := s.reservationRepo.CompletePastApproved(today)
	if err != nil {
		return fmt.Errorf("completing past approved stays: %w", err)
	}
	if completed > 0 {
		config.Logger.Info("Marked past approved stays as completed", zap.Int64("count", completed))
	}

	staleBefore := today.AddDate(0, 0, -stalePendingGraceDays)
	cancelled, err := s.reservationRepo.CancelStalePending(staleBefore)
	if err != nil {
		return fmt.Errorf("cancelling stale pending requests: %w", err)
	}
	if cancelled > 0 {
		config.Logger.Info("Cancelled stale pending requests", zap.Int64("count", cancelled))
	}

	s.cleanupExpiredExports()
	return nil
}

// cleanupExpiredExports removes generated excel files past their TTL. A
// missing directory just means nothing was ever exported.
func (s *MaintenanceScheduler) cleanupExpiredExports() {
	files, err := os.ReadDir("./public/files")
	if err != nil {
		return
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > exportFileTTL {
			path := fmt.Sprintf("./public/files/%s", file.Name())
			if err := os.Remove(path); err != nil {
				config.Logger.Warn("Failed to remove expired export file", zap.String("path", path), zap.Error(err))
			}
		}
	}
}
