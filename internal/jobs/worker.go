package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Poll cadence. After a loop-level error (a failed claim, not a failed
// handler) the next poll waits the longer interval.
const (
	DefaultPollInterval = 5 * time.Second
	ErrorPollInterval   = 10 * time.Second
)

// BaseRetryDelay seeds the backoff: attempt n reschedules the job
// BaseRetryDelay·2^(n-1) into the future (5m, 10m, 20m, ...).
const BaseRetryDelay = 5 * time.Minute

// Handler executes one job and returns its result payload. A nil error
// completes the job; an error enters the retry policy unless it is marked
// NonRetryable.
type Handler interface {
	Handle(ctx context.Context, job *Job) ([]byte, error)
}

type HandlerFunc func(ctx context.Context, job *Job) ([]byte, error)

func (f HandlerFunc) Handle(ctx context.Context, job *Job) ([]byte, error) {
	return f(ctx, job)
}

// Worker is the dispatcher: one cooperative loop that claims the highest-
// priority due job, runs its handler, and records the outcome. Handler
// failures never stop the loop.
type Worker struct {
	ID       string
	Store    Store
	Handlers map[string]Handler

	PollInterval time.Duration
	ErrInterval  time.Duration

	mu       sync.Mutex
	lastPoll time.Time
}

// Run polls until the context is cancelled. An in-flight handler is allowed
// to finish; only new polls stop.
func (w *Worker) Run(ctx context.Context) {
	poll := w.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	errPoll := w.ErrInterval
	if errPoll <= 0 {
		errPoll = ErrorPollInterval
	}

	timer := time.NewTimer(poll)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		next := poll
		if err := w.ProcessNext(ctx); err != nil {
			logrus.Errorf("worker %s: claim failed: %v", w.ID, err)
			next = errPoll
		}
		w.touch()
		timer.Reset(next)
	}
}

// ProcessNext claims and dispatches at most one job. The returned error is
// loop-level only: handler outcomes are recorded on the job itself.
func (w *Worker) ProcessNext(ctx context.Context) error {
	job, err := w.Store.Claim(ctx, w.ID)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}
	w.dispatch(ctx, job)
	return nil
}

func (w *Worker) dispatch(ctx context.Context, job *Job) {
	log := logrus.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"job_type": job.Type,
		"user_id":  job.UserID,
		"attempt":  job.Attempts + 1,
	})

	h, ok := w.Handlers[job.Type]
	if !ok {
		log.Warn("unknown job type, failing without retry")
		w.fail(ctx, job, ErrUnknownJobType.Error())
		return
	}

	start := time.Now()
	result, err := h.Handle(ctx, job)
	if err != nil {
		log.WithField("duration", time.Since(start).String()).Warnf("job failed: %v", err)
		w.retry(ctx, job, err)
		return
	}

	if err := w.Store.MarkCompleted(ctx, job.ID, result); err != nil {
		log.Errorf("mark completed failed: %v", err)
		return
	}
	log.WithField("duration", time.Since(start).String()).Info("job completed")
}

// retry applies the backoff policy: permanent errors and exhausted attempts
// fail the job; everything else reschedules with exponential delay.
func (w *Worker) retry(ctx context.Context, job *Job, cause error) {
	if IsNonRetryable(cause) {
		w.fail(ctx, job, cause.Error())
		return
	}

	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		w.fail(ctx, job, cause.Error())
		return
	}

	runAt := time.Now().Add(BackoffDelay(attempts))
	if err := w.Store.RetryLater(ctx, job.ID, attempts, runAt, cause.Error()); err != nil {
		logrus.Errorf("worker %s: reschedule job %d failed: %v", w.ID, job.ID, err)
	}
}

func (w *Worker) fail(ctx context.Context, job *Job, msg string) {
	if err := w.Store.MarkFailed(ctx, job.ID, job.Attempts+1, msg); err != nil {
		logrus.Errorf("worker %s: mark failed job %d failed: %v", w.ID, job.ID, err)
	}
}

// BackoffDelay returns the delay before retry attempt n (1-based).
func BackoffDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return BaseRetryDelay << (attempt - 1)
}

func (w *Worker) touch() {
	w.mu.Lock()
	w.lastPoll = time.Now()
	w.mu.Unlock()
}

// LastPoll reports when the loop last completed a poll; the health endpoint
// uses it to tell a live worker from a wedged one.
func (w *Worker) LastPoll() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastPoll
}
