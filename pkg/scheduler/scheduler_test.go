package scheduler

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-directory/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "scheduler-logs")
	if err != nil {
		panic(err)
	}
	_ = logger.Init(dir, false)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestValidateCronExpression(t *testing.T) {
	assert.NoError(t, ValidateCronExpression("*/5 * * * *"))
	assert.Error(t, ValidateCronExpression("every five minutes"))
}

func TestAddAndRemoveJob(t *testing.T) {
	s := NewScheduler()

	require.NoError(t, s.AddJob("session_sweep", "*/5 * * * *", func() {}))
	assert.Error(t, s.AddJob("session_sweep", "*/5 * * * *", func() {}), "duplicate id")
	assert.Error(t, s.AddJob("broken", "nope", func() {}))

	jobs := s.ListJobs()
	require.Contains(t, jobs, "session_sweep")
	assert.Equal(t, "*/5 * * * *", jobs["session_sweep"].CronExpr)
	assert.NotNil(t, jobs["session_sweep"].NextRun)
	assert.Nil(t, jobs["session_sweep"].LastRun)

	require.NoError(t, s.RemoveJob("session_sweep"))
	assert.Error(t, s.RemoveJob("session_sweep"))
	assert.Empty(t, s.ListJobs())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	assert.False(t, s.IsRunning())

	s.Start()
	assert.True(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestRun_RecoversPanickingJob(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.AddJob("session_sweep", "*/5 * * * *", func() {}))

	assert.NotPanics(t, func() {
		s.run("session_sweep", func() { panic("sweep exploded") })
	})

	info := s.ListJobs()["session_sweep"]
	assert.Equal(t, 1, info.Runs)
	assert.NotNil(t, info.LastRun)

	entries, err := logger.ReadLogs(logger.ReadLogsOptions{Category: logger.CategoryScheduler, Level: logger.LevelError})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "job_panicked", entries[0].Action)
	assert.Equal(t, "sweep exploded", entries[0].Error)
}
