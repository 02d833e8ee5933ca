package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rileyhilliard/sysmon/internal/logger"
	mtesting "github.com/rileyhilliard/sysmon/internal/metrics/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter records launches without running anything; tests call Complete.
type counter struct {
	n atomic.Int32
}

func (c *counter) launch() { c.n.Add(1) }
func (c *counter) count() int { return int(c.n.Load()) }

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "manual", Manual.String())
	assert.Equal(t, "continuous", Continuous.String())
}

func TestNew_DefaultInterval(t *testing.T) {
	s := New(0, func() {}, nil)
	assert.Equal(t, DefaultInterval, s.Interval())
	assert.Equal(t, Idle, s.State())
}

func TestManualTrigger(t *testing.T) {
	c := &counter{}
	s := New(time.Hour, c.launch, nil)

	require.True(t, s.ManualTrigger())
	assert.Equal(t, Manual, s.State())
	assert.True(t, s.InFlight())
	assert.Equal(t, "refreshing", s.Status())

	// Second trigger while the first runs is rejected
	assert.False(t, s.ManualTrigger())
	assert.Equal(t, 1, c.count())

	s.Complete()
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.InFlight())
	assert.Equal(t, "idle", s.Status())
}

func TestManualTrigger_NoopWhileContinuous(t *testing.T) {
	c := &counter{}
	log := logger.NewBufferLogger()
	s := New(time.Hour, c.launch, log)
	defer s.Close()

	require.True(t, s.ToggleOn())
	assert.False(t, s.ManualTrigger())
	s.Complete()
	assert.False(t, s.ManualTrigger(), "still rejected while waiting on the timer")

	assert.Equal(t, 1, c.count())
	assert.Equal(t, Continuous, s.State())
	assert.True(t, log.HasLevel("debug"))
}

func TestToggleOn_Idempotent(t *testing.T) {
	c := &counter{}
	s := New(time.Hour, c.launch, nil)
	defer s.Close()

	require.True(t, s.ToggleOn())
	assert.False(t, s.ToggleOn())
	assert.Equal(t, 1, c.count())
	assert.Equal(t, "live", s.Status())
}

func TestToggleOn_FromManualDoesNotLaunch(t *testing.T) {
	c := &counter{}
	s := New(20*time.Millisecond, c.launch, nil)
	defer s.Close()

	require.True(t, s.ManualTrigger())
	require.True(t, s.ToggleOn())
	assert.Equal(t, 1, c.count())
	assert.Equal(t, Continuous, s.State())

	// Completion of the one-shot schedules the next continuous cycle
	s.Complete()
	assert.Eventually(t, func() bool { return c.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestContinuous_ReschedulesAfterComplete(t *testing.T) {
	c := &counter{}
	s := New(10*time.Millisecond, c.launch, nil)
	defer s.Close()

	require.True(t, s.ToggleOn())
	assert.Equal(t, 1, c.count())

	// Nothing new is launched until the running cycle completes
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, c.count())

	s.Complete()
	assert.Eventually(t, func() bool { return c.count() == 2 }, time.Second, 2*time.Millisecond)
	assert.True(t, s.InFlight())
}

func TestToggleOff_WhileInFlight(t *testing.T) {
	c := &counter{}
	s := New(10*time.Millisecond, c.launch, nil)
	defer s.Close()

	require.True(t, s.ToggleOn())
	require.True(t, s.ToggleOff())

	// The running cycle is not interrupted
	assert.Equal(t, Continuous, s.State())
	assert.True(t, s.InFlight())
	assert.Equal(t, "stopping", s.Status())

	s.Complete()
	assert.Equal(t, Idle, s.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, c.count(), "no cycle scheduled after toggle off")
}

func TestToggleOff_WhileWaiting(t *testing.T) {
	c := &counter{}
	s := New(30*time.Millisecond, c.launch, nil)
	defer s.Close()

	require.True(t, s.ToggleOn())
	s.Complete()
	require.True(t, s.ToggleOff())
	assert.Equal(t, Idle, s.State())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, c.count(), "pending timer was cancelled")
	assert.False(t, s.ToggleOff())
}

func TestToggleOn_CancelsPendingStop(t *testing.T) {
	c := &counter{}
	s := New(10*time.Millisecond, c.launch, nil)
	defer s.Close()

	require.True(t, s.ToggleOn())
	require.True(t, s.ToggleOff())
	require.True(t, s.ToggleOn())
	assert.Equal(t, 1, c.count())

	s.Complete()
	assert.Equal(t, Continuous, s.State())
	assert.Eventually(t, func() bool { return c.count() == 2 }, time.Second, 2*time.Millisecond)
}

func TestKick(t *testing.T) {
	t.Run("idle runs one cycle", func(t *testing.T) {
		c := &counter{}
		s := New(time.Hour, c.launch, nil)
		require.True(t, s.Kick())
		assert.Equal(t, Manual, s.State())
		assert.Equal(t, 1, c.count())
		s.Complete()
		assert.Equal(t, Idle, s.State())
	})

	t.Run("in flight defers until complete", func(t *testing.T) {
		c := &counter{}
		s := New(time.Hour, c.launch, nil)
		require.True(t, s.ManualTrigger())
		require.True(t, s.Kick())
		assert.Equal(t, 1, c.count())

		s.Complete()
		assert.Equal(t, 2, c.count())
		assert.True(t, s.InFlight())

		s.Complete()
		assert.Equal(t, Idle, s.State())
	})

	t.Run("continuous waiting fires now", func(t *testing.T) {
		c := &counter{}
		s := New(time.Hour, c.launch, nil)
		defer s.Close()
		require.True(t, s.ToggleOn())
		s.Complete()

		require.True(t, s.Kick())
		assert.Equal(t, 2, c.count())
		assert.Equal(t, Continuous, s.State())
	})
}

func TestComplete_WithoutCycleIsIgnored(t *testing.T) {
	c := &counter{}
	s := New(time.Hour, c.launch, nil)
	s.Complete()
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 0, c.count())
}

func TestClose(t *testing.T) {
	c := &counter{}
	s := New(10*time.Millisecond, c.launch, nil)

	require.True(t, s.ToggleOn())
	s.Complete()
	s.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, c.count())
	assert.False(t, s.ToggleOn())
	assert.False(t, s.ManualTrigger())
	assert.False(t, s.Kick())
}

// Cycles sample a slow provider on their own goroutine. Hammering the
// scheduler from several goroutines must never overlap two samples.
func TestScheduler_NoOverlappingCycles(t *testing.T) {
	provider := mtesting.NewFakeProvider()
	provider.Delay = 5 * time.Millisecond

	var s *Scheduler
	var wg sync.WaitGroup
	launch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = provider.SampleSystem(context.Background())
			s.Complete()
		}()
	}
	s = New(2*time.Millisecond, launch, nil)

	var callers sync.WaitGroup
	for i := 0; i < 8; i++ {
		callers.Add(1)
		go func(i int) {
			defer callers.Done()
			for j := 0; j < 20; j++ {
				switch (i + j) % 4 {
				case 0:
					s.ToggleOn()
				case 1:
					s.ManualTrigger()
				case 2:
					s.Kick()
				case 3:
					s.ToggleOff()
				}
				time.Sleep(time.Millisecond)
			}
		}(i)
	}
	callers.Wait()

	s.ToggleOff()
	assert.Eventually(t, func() bool { return !s.InFlight() }, time.Second, 2*time.Millisecond)
	s.Close()
	wg.Wait()

	assert.Equal(t, 1, provider.PeakConcurrency())
	system, _ := provider.Calls()
	assert.Greater(t, system, 0)
}
