package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"skillswap-backend/internal/config"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/service"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reward service.RewardService
	Chat   service.ChatService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and a deadline
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration", time.Since(start))
		return
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
}

// Jobs maps the command-line job names to their entry points.
func (jr *JobRunner) Jobs() map[string]func() {
	return map[string]func(){
		"expire-redemptions": jr.ExpireRedemptions,
		"close-idle-chats":   jr.CloseIdleChats,
		"all":                jr.RunAll,
	}
}

// Run executes one job by name.
func (jr *JobRunner) Run(name string) error {
	job, ok := jr.Jobs()[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	job()
	return nil
}

// JobNames lists the names accepted by Run, sorted.
func (jr *JobRunner) JobNames() []string {
	names := make([]string, 0, len(jr.Jobs()))
	for name := range jr.Jobs() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunAll runs every maintenance job (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ExpireRedemptions()
	jr.CloseIdleChats()
}
