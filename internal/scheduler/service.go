// Package scheduler owns the recurring triggers. Triggers only enqueue
// jobs; all execution happens in the worker, so a slow scan can never
// block the cron goroutine.
package scheduler

import (
	"context"
	"time"

	"brandpulse/internal/auth"
	"brandpulse/internal/goals"
	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"
	"brandpulse/internal/monitor"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recurring job priorities. User-initiated work (the analyze endpoint)
// enqueues above these so an interactive request never queues behind a
// batch sweep.
const (
	PriorityRecurring = 1
	PrioritySync      = 2
)

type Service struct {
	cron  *cron.Cron
	db    *gorm.DB
	queue jobs.Store

	linkedin *linkedin.Service
	goals    *goals.Service
	monitor  *monitor.Service
}

func NewService(db *gorm.DB, queue jobs.Store, li *linkedin.Service, gl *goals.Service, mon *monitor.Service) *Service {
	return &Service{
		cron:     cron.New(cron.WithSeconds()),
		db:       db,
		queue:    queue,
		linkedin: li,
		goals:    gl,
		monitor:  mon,
	}
}

func (s *Service) Start() error {
	entries := []struct {
		spec string
		name string
		run  func(context.Context)
	}{
		{"0 0 6 * * *", "daily-data-sync", s.triggerDailySync},
		{"0 0 7 * * MON", "weekly-insight-generation", s.triggerWeeklyInsights},
		{"0 30 7 1 * *", "monthly-review-generation", s.triggerMonthlyReviews},
		{"0 0 20 * * *", "achievement-check", s.triggerAchievementChecks},
		{"0 15 * * * *", "reputation-scan", s.triggerReputationScans},
	}

	for _, e := range entries {
		run := e.run
		name := e.name
		if _, err := s.cron.AddFunc(e.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			logrus.Infof("trigger %s firing", name)
			run(ctx)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	logrus.Info("scheduler started")
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("scheduler stopped")
	}
}

func (s *Service) triggerDailySync(ctx context.Context) {
	users, err := s.linkedin.ConnectedUsers(ctx)
	if err != nil {
		logrus.Errorf("daily sync trigger: list users: %v", err)
		return
	}
	s.enqueueForUsers(ctx, jobs.TypeDailySync, users, PrioritySync)
}

func (s *Service) triggerWeeklyInsights(ctx context.Context) {
	users, err := s.allUsers(ctx)
	if err != nil {
		logrus.Errorf("weekly insight trigger: list users: %v", err)
		return
	}
	s.enqueueForUsers(ctx, jobs.TypeWeeklyInsight, users, PriorityRecurring)
}

func (s *Service) triggerMonthlyReviews(ctx context.Context) {
	users, err := s.allUsers(ctx)
	if err != nil {
		logrus.Errorf("monthly review trigger: list users: %v", err)
		return
	}
	s.enqueueForUsers(ctx, jobs.TypeMonthlyReview, users, PriorityRecurring)
}

func (s *Service) triggerAchievementChecks(ctx context.Context) {
	users, err := s.goals.UsersWithOpenGoals(ctx)
	if err != nil {
		logrus.Errorf("achievement trigger: list users: %v", err)
		return
	}
	s.enqueueForUsers(ctx, jobs.TypeAchievementCheck, users, PriorityRecurring)
}

// triggerReputationScans runs hourly and enqueues scans for settings whose
// frequency window has elapsed. The window sits a little under the nominal
// period so a scan that ran slightly early last time still qualifies.
func (s *Service) triggerReputationScans(ctx context.Context) {
	windows := map[string]time.Duration{
		monitor.FrequencyDaily:  20 * time.Hour,
		monitor.FrequencyWeekly: 6 * 24 * time.Hour,
	}

	for freq, window := range windows {
		due, err := s.monitor.ActiveDue(ctx, freq, window)
		if err != nil {
			logrus.Errorf("reputation trigger: list %s settings: %v", freq, err)
			continue
		}
		users := make([]uint64, 0, len(due))
		for _, st := range due {
			users = append(users, st.UserID)
		}
		s.enqueueForUsers(ctx, jobs.TypeReputationScan, users, PrioritySync)
	}
}

func (s *Service) enqueueForUsers(ctx context.Context, typ string, users []uint64, priority int) {
	queued := 0
	for _, uid := range users {
		pending, err := s.queue.HasPending(ctx, uid, typ)
		if err != nil {
			logrus.Errorf("trigger %s: pending check for user %d: %v", typ, uid, err)
			continue
		}
		if pending {
			continue
		}
		if _, err := s.queue.Enqueue(ctx, typ, uid, nil, priority, jobs.DefaultMaxAttempts, time.Now()); err != nil {
			logrus.Errorf("trigger %s: enqueue for user %d: %v", typ, uid, err)
			continue
		}
		queued++
	}
	logrus.Infof("trigger %s queued %d job(s) for %d eligible user(s)", typ, queued, len(users))
}

func (s *Service) allUsers(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&auth.User{}).Pluck("id", &ids).Error
	return ids, err
}
