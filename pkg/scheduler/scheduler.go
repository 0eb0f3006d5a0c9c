package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"people-directory/pkg/logger"
)

// Scheduler runs named housekeeping jobs on cron expressions.
type Scheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	RemoveJob(id string) error
	ListJobs() map[string]*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string
	CronExpr string
	Runs     int
	LastRun  *time.Time
	NextRun  *time.Time
	job      *gocron.Job
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*JobInfo
	mu        sync.RWMutex
	running   bool
}

func NewScheduler() *GocronScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &GocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*JobInfo),
	}
}

var _ Scheduler = (*GocronScheduler)(nil)

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.SchedulerWarn("start", "Scheduler is already running", nil)
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Scheduler("started", "Scheduler started", map[string]interface{}{"jobs": len(s.jobs)})
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Scheduler("stopped", "Scheduler stopped", nil)
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		s.run(id, task)
	})
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	nextRun := job.NextRun()
	s.jobs[id] = &JobInfo{
		ID:       id,
		CronExpr: cronExpr,
		NextRun:  &nextRun,
		job:      job,
	}

	logger.Scheduler("job_added", "Job added", map[string]interface{}{"job_id": id, "cron_expr": cronExpr})
	return nil
}

// run records the run and executes task. A panicking task is logged and
// does not take the scheduler down.
func (s *GocronScheduler) run(id string, task func()) {
	now := time.Now()

	s.mu.Lock()
	if info, exists := s.jobs[id]; exists {
		info.Runs++
		info.LastRun = &now
	}
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.SchedulerError("job_panicked", "Job panicked", fmt.Errorf("%v", r), map[string]interface{}{"job_id": id})
		}
	}()
	task()
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(info.job)
	delete(s.jobs, id)
	logger.Scheduler("job_removed", "Job removed", map[string]interface{}{"job_id": id})
	return nil
}

// ListJobs returns copies; NextRun is read from gocron at call time.
func (s *GocronScheduler) ListJobs() map[string]*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]*JobInfo, len(s.jobs))
	for id, info := range s.jobs {
		cp := &JobInfo{ID: info.ID, CronExpr: info.CronExpr, Runs: info.Runs}
		if info.LastRun != nil {
			lastRun := *info.LastRun
			cp.LastRun = &lastRun
		}
		nextRun := info.job.NextRun()
		cp.NextRun = &nextRun
		jobs[id] = cp
	}
	return jobs
}

func ValidateCronExpression(cronExpr string) error {
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Cron(cronExpr).Do(func() {}); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
