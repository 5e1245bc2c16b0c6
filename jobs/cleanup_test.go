package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupJobRunsEveryStep(t *testing.T) {
	var order []string
	step := func(name string, err error) Purger {
		return func(ctx context.Context) (int64, error) {
			order = append(order, name)
			return 1, err
		}
	}

	job := NewCleanupJob("@every 1h").
		Add("sessions", step("sessions", nil)).
		Add("reset codes", step("reset codes", errors.New("db down"))).
		Add("sync", step("sync", nil))

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reset codes")
	assert.Equal(t, []string{"sessions", "reset codes", "sync"}, order)
}

func TestCleanupJobSchedule(t *testing.T) {
	assert.Error(t, NewCleanupJob("not a schedule").Start())

	job := NewCleanupJob("@every 1h")
	require.NoError(t, job.Start())
	job.Stop()
}
