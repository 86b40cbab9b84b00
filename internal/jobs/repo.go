package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store is the persistence surface the worker and triggers need. Repo is
// the Postgres implementation; tests substitute fakes.
type Store interface {
	Enqueue(ctx context.Context, typ string, userID uint64, payload any, priority, maxAttempts int, scheduledAt time.Time) (uint64, error)
	Claim(ctx context.Context, workerID string) (*Job, error)
	MarkCompleted(ctx context.Context, id uint64, result []byte) error
	MarkFailed(ctx context.Context, id uint64, attempts int, errMsg string) error
	RetryLater(ctx context.Context, id uint64, attempts int, runAt time.Time, errMsg string) error
	HasPending(ctx context.Context, userID uint64, typ string) (bool, error)
}

// leaseWindow is how long a PROCESSING job may hold its lock before a
// claim pass requeues it as abandoned.
const leaseWindow = "10 minutes"

type Repo struct {
	DB *gorm.DB
}

var _ Store = (*Repo)(nil)

// Enqueue creates one PENDING job. Payload is marshalled to JSON; nil
// payload stores an empty object.
func (r *Repo) Enqueue(ctx context.Context, typ string, userID uint64, payload any, priority, maxAttempts int, scheduledAt time.Time) (uint64, error) {
	raw := []byte("{}")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("marshal job payload: %w", err)
		}
		raw = b
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	j := Job{
		UserID:      userID,
		Type:        typ,
		Payload:     raw,
		Priority:    priority,
		MaxAttempts: maxAttempts,
		ScheduledAt: scheduledAt,
		Status:      StatusPending,
	}
	if err := r.DB.WithContext(ctx).Create(&j).Error; err != nil {
		return 0, err
	}
	return j.ID, nil
}

// Claim atomically takes the single highest-priority due job, tie-broken
// by earliest creation. FOR UPDATE SKIP LOCKED makes the PENDING→PROCESSING
// transition safe across multiple workers. Returns nil when nothing is due.
func (r *Repo) Claim(ctx context.Context, workerID string) (*Job, error) {
	var job Job
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// requeue jobs abandoned by a dead worker
		tx.Exec(`
update jobs
set status='PENDING', locked_by=null, locked_at=null, updated_at=now()
where status='PROCESSING' and locked_at is not null and locked_at < now() - interval '` + leaseWindow + `'
`)

		q := tx.Raw(`
with cte as (
  select id
  from jobs
  where status='PENDING' and scheduled_at <= now()
  order by priority desc, created_at asc
  for update skip locked
  limit 1
)
update jobs
set status='PROCESSING', locked_by=?, locked_at=now(), updated_at=now()
where id in (select id from cte)
returning *;
`, workerID)

		return q.Scan(&job).Error
	})
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, nil
	}
	return &job, nil
}

func (r *Repo) MarkCompleted(ctx context.Context, id uint64, result []byte) error {
	if result == nil {
		result = []byte("{}")
	}
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status='COMPLETED', result_data=?, locked_by=null, locked_at=null, updated_at=now()
where id=?`, result, id).Error
}

func (r *Repo) MarkFailed(ctx context.Context, id uint64, attempts int, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status='FAILED', attempts=?, error_message=?, locked_by=null, locked_at=null, updated_at=now()
where id=?`, attempts, errMsg, id).Error
}

func (r *Repo) RetryLater(ctx context.Context, id uint64, attempts int, runAt time.Time, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status='PENDING',
    attempts=?,
    scheduled_at=?,
    locked_by=null,
    locked_at=null,
    error_message=?,
    updated_at=now()
where id=?`, attempts, runAt, errMsg, id).Error
}

// HasPending reports whether the user already has a queued or running job
// of the given type. Triggers use it to avoid piling up duplicates.
func (r *Repo) HasPending(ctx context.Context, userID uint64, typ string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Job{}).
		Where("user_id = ? AND type = ? AND status IN ?", userID, typ, []string{StatusPending, StatusProcessing}).
		Count(&n).Error
	return n > 0, err
}

// Recent returns the user's latest jobs, for the dashboard's job history.
func (r *Repo) Recent(ctx context.Context, userID uint64, limit int) ([]Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []Job
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
