package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesAndReadsCategoryFiles(t *testing.T) {
	l, err := NewLogger(t.TempDir(), false)
	require.NoError(t, err)
	defer l.Close()

	l.Log(LogEntry{Level: LevelInfo, Category: CategorySeed, Action: "seeded", Message: "Seeded collection"})
	l.Log(LogEntry{Level: LevelError, Category: CategorySeed, Action: "fetch_failed", Message: "Error fetching the dataset", Error: errors.New("boom").Error()})
	l.Log(LogEntry{Level: LevelInfo, Category: CategorySession, Action: "opened", Message: "Session opened", SessionID: "abc"})

	all, err := l.ReadLogs(ReadLogsOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	seed, err := l.ReadLogs(ReadLogsOptions{Category: CategorySeed})
	require.NoError(t, err)
	assert.Len(t, seed, 2)

	errs, err := l.ReadLogs(ReadLogsOptions{Level: LevelError})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0].Error)

	found, err := l.ReadLogs(ReadLogsOptions{Search: "BOOM"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	limited, err := l.ReadLogs(ReadLogsOptions{Lines: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	files, err := l.ListLogFiles()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestLogger_MinLevel(t *testing.T) {
	l, err := NewLogger(t.TempDir(), false)
	require.NoError(t, err)
	defer l.Close()

	l.SetMinLevel(LevelWarn)
	l.Log(LogEntry{Level: LevelDebug, Category: CategoryStore, Action: "collection_written"})
	l.Log(LogEntry{Level: LevelInfo, Category: CategoryStore, Action: "loaded"})
	l.Log(LogEntry{Level: LevelWarn, Category: CategoryStore, Action: "slow"})

	entries, err := l.ReadLogs(ReadLogsOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "slow", entries[0].Action)

	l.SetMinLevel("TRACE")
	l.Log(LogEntry{Level: LevelInfo, Category: CategoryStore, Action: "ignored"})
	entries, err = l.ReadLogs(ReadLogsOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1, "unknown levels leave the threshold as it was")
}

func TestGetTypeName(t *testing.T) {
	assert.Equal(t, "<nil>", GetTypeName(nil))
	assert.Equal(t, "int", GetTypeName(3))
}
