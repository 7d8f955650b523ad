package sweeper

import (
	"context"
	"time"

	"gridspot/internal/shared/config"
	"gridspot/pkg/logger"
)

// JobProcessor runs the periodic maintenance passes in the background
type JobProcessor struct {
	service Service
	config  config.SweeperConfig
	done    chan struct{}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(service Service, cfg config.SweeperConfig) *JobProcessor {
	return &JobProcessor{
		service: service,
		config:  cfg,
		done:    make(chan struct{}),
	}
}

// Start starts all background sweeps
func (jp *JobProcessor) Start(ctx context.Context) {
	log := logger.GetDefault()
	log.Info("Starting expiration sweeper",
		"sweep_interval", jp.config.SweepInterval.String(),
		"reminder_interval", jp.config.ReminderInterval.String())

	go jp.runSweepLoop(ctx)
	go jp.runReminderLoop(ctx)
}

// Stop stops all background sweeps
func (jp *JobProcessor) Stop() {
	close(jp.done)
	logger.GetDefault().Info("Expiration sweeper stopped")
}

// runSweepLoop retires due bookings and lapsed offers on every tick
func (jp *JobProcessor) runSweepLoop(ctx context.Context) {
	ticker := time.NewTicker(jp.config.SweepInterval)
	defer ticker.Stop()

	// Run immediately on startup to catch anything due during downtime
	jp.runSweeps(ctx)

	for {
		select {
		case <-ticker.C:
			jp.runSweeps(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) runSweeps(ctx context.Context) {
	log := logger.GetDefault()

	if _, err := jp.service.SweepExpiredBookings(ctx); err != nil {
		log.Error("Booking expiry sweep failed", "error", err)
	}
	if _, err := jp.service.SweepExpiredOffers(ctx); err != nil {
		log.Error("Offer expiry sweep failed", "error", err)
	}
}

// runReminderLoop sends expiry reminders and expiry notices on a slower cadence
func (jp *JobProcessor) runReminderLoop(ctx context.Context) {
	ticker := time.NewTicker(jp.config.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			jp.runNotificationPasses(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) runNotificationPasses(ctx context.Context) {
	log := logger.GetDefault()

	if _, err := jp.service.SendExpiryReminders(ctx); err != nil {
		log.Error("Expiry reminder pass failed", "error", err)
	}
	if _, err := jp.service.SendExpiryNotices(ctx); err != nil {
		log.Error("Expiry notice pass failed", "error", err)
	}
}

// GetJobStatus returns the status of the background sweeps
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"sweep_interval":    jp.config.SweepInterval.String(),
		"reminder_interval": jp.config.ReminderInterval.String(),
		"reminder_window":   jp.config.ReminderWindow.String(),
		"status":            "running",
	}
}
