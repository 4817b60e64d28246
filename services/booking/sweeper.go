package booking

import (
	"time"

	"gearbook/config"
	"gearbook/models"
	"gearbook/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically tidies the booking lifecycle: pending bookings no one
// acted on are cancelled, and active bookings past their end date are marked
// overdue.
type Sweeper struct {
	Service BookingService
	Repo    sweeperRepo
	cron    *cron.Cron
}

// sweeperRepo is the slice of the booking repository the sweeper needs.
type sweeperRepo interface {
	GetStalePending(cutoff time.Time) ([]models.Booking, error)
	GetActivePastEnd(now time.Time) ([]models.Booking, error)
}

// NewSweeper builds a sweeper around the booking service.
func NewSweeper(svc BookingService, repo sweeperRepo) *Sweeper {
	return &Sweeper{Service: svc, Repo: repo}
}

// Start schedules the sweep on the configured cron expression and runs one
// sweep immediately so a restart does not delay cleanup.
func (sw *Sweeper) Start() {
	schedule := config.AppConfig.SweepSchedule
	if schedule == "" {
		schedule = "@every 10m"
	}

	sw.cron = cron.New()
	if _, err := sw.cron.AddFunc(schedule, sw.Sweep); err != nil {
		utils.GetLogger().Error("Sweeper: invalid schedule, sweeper disabled",
			zap.String("schedule", schedule), zap.Error(err))
		return
	}
	sw.cron.Start()
	go sw.Sweep()
}

// Stop halts the schedule.
func (sw *Sweeper) Stop() {
	if sw.cron != nil {
		sw.cron.Stop()
	}
}

// Sweep performs one pass.
func (sw *Sweeper) Sweep() {
	logger := utils.GetLogger()
	now := time.Now()

	ttl := time.Duration(config.AppConfig.PendingBookingTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}

	stale, err := sw.Repo.GetStalePending(now.Add(-ttl))
	if err != nil {
		logger.Error("Sweeper: failed to list stale pending bookings", zap.Error(err))
	}
	for _, b := range stale {
		if _, err := sw.Service.UpdateStatus(b.ID, "", true, models.BookingCancelled); err != nil {
			logger.Error("Sweeper: failed to cancel stale booking",
				zap.String("booking", b.ID), zap.Error(err))
			continue
		}
		logger.Info("Sweeper: cancelled stale pending booking", zap.String("booking", b.ID))
	}

	overdue, err := sw.Repo.GetActivePastEnd(now)
	if err != nil {
		logger.Error("Sweeper: failed to list overdue bookings", zap.Error(err))
	}
	for _, b := range overdue {
		if _, err := sw.Service.UpdateStatus(b.ID, "", true, models.BookingOverdue); err != nil {
			logger.Error("Sweeper: failed to flag overdue booking",
				zap.String("booking", b.ID), zap.Error(err))
			continue
		}
		logger.Info("Sweeper: flagged overdue booking", zap.String("booking", b.ID))
	}
}
