package db

import (
	"fmt"

	"brandpulse/internal/auth"
	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/insights"
	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"
	"brandpulse/internal/monitor"
	"brandpulse/internal/profile"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&profile.Profile{},
		&brand.Analysis{},
		&insights.Insight{},
		&goals.Goal{},
		&monitor.Settings{},
		&monitor.Scan{},
		&linkedin.Connection{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	stmts := []string{
		// claim path: due PENDING jobs by priority then age
		`create index if not exists idx_jobs_claim on jobs(status, scheduled_at, priority desc, created_at asc);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
		// trigger dedupe: pending-by-user-and-type lookups
		`create index if not exists idx_jobs_user_type_status on jobs(user_id, type, status);`,

		`create index if not exists idx_analyses_user_created on brand_analyses(user_id, created_at desc);`,
		`create index if not exists idx_insights_user_generated on insights(user_id, generated_at desc);`,
		`create index if not exists idx_goals_open on goals(user_id) where achieved_at is null;`,
		`create index if not exists idx_scans_user_created on reputation_scans(user_id, created_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
