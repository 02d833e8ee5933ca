package testing

import (
	"context"
	"errors"
	"testing"

	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeProvider_Queue(t *testing.T) {
	f := NewFakeProvider(metrics.ProcessSample{PID: 1})
	f.Queue(metrics.ProcessSample{PID: 2}, metrics.ProcessSample{PID: 3})
	f.Queue(metrics.ProcessSample{PID: 4})

	ctx := context.Background()

	got, err := f.EnumerateProcesses(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.EnumerateProcesses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(4), got[0].PID)

	// Exhausted queue repeats the last list
	got, err = f.EnumerateProcesses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(4), got[0].PID)

	_, enum := f.Calls()
	assert.Equal(t, 3, enum)
}

func TestFakeProvider_SampleSystem(t *testing.T) {
	f := NewFakeProvider()
	f.System = metrics.SystemSnapshot{CPUPercent: 12.5}

	snap, err := f.SampleSystem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.5, snap.CPUPercent)
	assert.False(t, snap.Timestamp.IsZero())

	f.SystemErr = errors.New("boom")
	_, err = f.SampleSystem(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, f.PeakConcurrency())
}
