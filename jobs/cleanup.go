package jobs

import (
	"SteamProfile/utils"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout bounds one cleanup run
const runTimeout = 2 * time.Minute

// Purger deletes rows that are past their validity
type Purger func(ctx context.Context) (int64, error)

// CleanupJob purges expired sessions and reset codes and flushes cached
// session activity on a cron schedule
type CleanupJob struct {
	schedule string
	steps    []namedStep
	cron     *cron.Cron
}

type namedStep struct {
	name string
	run  Purger
}

func NewCleanupJob(schedule string) *CleanupJob {
	return &CleanupJob{
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Add registers a step; steps run in the order they were added
func (j *CleanupJob) Add(name string, run Purger) *CleanupJob {
	j.steps = append(j.steps, namedStep{name: name, run: run})
	return j
}

func (j *CleanupJob) Start() error {
	utils.GetLogger().Info("Starting cleanup job", zap.String("schedule", j.schedule))

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			utils.GetLogger().Error("Cleanup job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	j.cron.Start()
	return nil
}

// Stop waits for a running cleanup to finish
func (j *CleanupJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
		utils.GetLogger().Info("Cleanup job stopped")
	}
}

// Run executes every step once. A failing step does not stop the others; the
// first error is returned.
func (j *CleanupJob) Run(ctx context.Context) error {
	var firstErr error
	for _, step := range j.steps {
		n, err := step.run(ctx)
		if err != nil {
			utils.GetLogger().Warn("Cleanup step failed", zap.String("step", step.name), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", step.name, err)
			}
			continue
		}
		if n > 0 {
			utils.GetLogger().Info("Cleanup step done", zap.String("step", step.name), zap.Int64("rows", n))
		}
	}
	return firstErr
}
