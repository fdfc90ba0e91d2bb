package services

import (
	"context"
	"log"
	"time"

	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService logs a daily digest of pending approvals so schedulers
// see the backlog without polling the dashboard.
type ReminderService struct {
	db   *gorm.DB
	cron *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		db:   db,
		cron: cron.New(),
	}
}

// Start schedules the daily digest at 08:30 server time
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("30 8 * * *", func() {
		s.SendPendingDigest(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily digest at 08:30)")
	return nil
}

// Stop halts the cron scheduler, waiting for a running job to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 ReminderService stopped")
}

// SendPendingDigest logs the current pending approval backlog
func (s *ReminderService) SendPendingDigest(ctx context.Context) {
	var rosters, timesheets, leaves int64

	if err := s.db.WithContext(ctx).Table("roster_entries").
		Where("status = ?", domain.StatusPending).
		Count(&rosters).Error; err != nil {
		log.Printf("❌ Pending digest query error: %v", err)
		return
	}
	s.db.WithContext(ctx).Table("timesheets").
		Where("status = ?", domain.StatusPending).
		Count(&timesheets)
	s.db.WithContext(ctx).Table("leave_requests").
		Where("status = ?", domain.StatusPending).
		Count(&leaves)

	total := rosters + timesheets + leaves
	if total == 0 {
		log.Println("📋 Pending approvals digest: nothing waiting")
		return
	}

	log.Printf("📋 Pending approvals digest (%s): %d roster, %d timesheet, %d leave",
		time.Now().Format("2006-01-02"), rosters, timesheets, leaves)
}
