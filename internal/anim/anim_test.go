package anim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEaseEndpoints(t *testing.T) {
	for e := Linear; e <= Spring; e++ {
		if got := e.Apply(0); got != 0 {
			t.Fatalf("%s: expected 0 at start, got %v", e, got)
		}
		if got := e.Apply(1); got != 1 {
			t.Fatalf("%s: expected 1 at end, got %v", e, got)
		}
	}
}

func TestEaseOvershoot(t *testing.T) {
	if OutBack.Apply(0.7) <= 1 {
		t.Fatalf("expected out-back to overshoot past 1")
	}
	if InBack.Apply(0.2) >= 0 {
		t.Fatalf("expected in-back to dip below 0")
	}
	peak := 0.0
	for i := 1; i < 100; i++ {
		if v := Spring.Apply(float64(i) / 100); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Fatalf("expected under-damped spring to overshoot, peak %v", peak)
	}
}

func TestParseEase(t *testing.T) {
	for _, name := range []string{"out-back", "OutBack", "out_back", " OUT BACK "} {
		e, err := ParseEase(name)
		require.NoError(t, err, name)
		assert.Equal(t, OutBack, e, name)
	}
	_, err := ParseEase("wobble")
	assert.Error(t, err)
}

func recordingSpec(value *float64, completed *int) Spec {
	return Spec{
		Label:    "test",
		Duration: 100 * time.Millisecond,
		Ease:     Linear,
		Tracks: []Track{{
			Property: "x",
			From:     0,
			To:       10,
			Set:      func(v float64) { *value = v },
		}},
		OnComplete: func() { *completed++ },
	}
}

func TestEngineStepCompletes(t *testing.T) {
	e := NewEngine()
	var value float64
	var completed int
	started := false
	spec := recordingSpec(&value, &completed)
	spec.OnStart = func() { started = true }
	tl := e.Play(spec)

	require.True(t, started, "expected OnStart inside Play")
	assert.Equal(t, 0.0, value)
	assert.Equal(t, 1, e.Pending())

	e.Step(50 * time.Millisecond)
	assert.InDelta(t, 5, value, 1e-9)
	assert.Equal(t, Pending, tl.Outcome())

	remaining := e.Step(60 * time.Millisecond)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 10.0, value)
	assert.Equal(t, 1, completed)
	assert.Equal(t, Completed, tl.Outcome())
	select {
	case <-tl.Done():
	default:
		t.Fatalf("expected done channel closed")
	}
}

func TestKillWithoutCompleteNeverFiresCompletion(t *testing.T) {
	e := NewEngine()
	var value float64
	var completed int
	tl := e.Play(recordingSpec(&value, &completed))
	e.Step(30 * time.Millisecond)

	tl.Kill(false)
	assert.Equal(t, Cancelled, tl.Outcome())
	assert.Equal(t, 0, completed)
	assert.InDelta(t, 3, value, 1e-9)

	e.Step(time.Second)
	assert.InDelta(t, 3, value, 1e-9, "cancelled timeline must not be stepped")
	assert.Equal(t, 0, e.Pending())

	tl.Kill(true)
	assert.Equal(t, 0, completed, "killing a settled timeline is a no-op")
}

func TestKillCompleteAppliesEndOnce(t *testing.T) {
	e := NewEngine()
	var value float64
	var completed int
	tl := e.Play(recordingSpec(&value, &completed))

	tl.Kill(true)
	tl.Kill(true)
	assert.Equal(t, 10.0, value)
	assert.Equal(t, 1, completed)
	assert.Equal(t, Completed, tl.Outcome())
}

func TestInstantBackend(t *testing.T) {
	var value float64
	var completed int
	tl := Instant{}.Play(recordingSpec(&value, &completed))
	assert.Equal(t, 10.0, value)
	assert.Equal(t, 1, completed)
	require.NoError(t, tl.Wait(context.Background()))
}

func TestZeroDurationCompletesInPlay(t *testing.T) {
	e := NewEngine()
	var value float64
	var completed int
	spec := recordingSpec(&value, &completed)
	spec.Duration = 0
	tl := e.Play(spec)
	assert.Equal(t, Completed, tl.Outcome())
	assert.Equal(t, 0, e.Pending())
	assert.Equal(t, 10.0, value)
}

func TestWaitHonoursContext(t *testing.T) {
	e := NewEngine()
	var value float64
	var completed int
	tl := e.Play(recordingSpec(&value, &completed))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tl.Wait(ctx), context.Canceled)
}

func TestAdvanceUsesWallClock(t *testing.T) {
	e := NewEngine()
	var value float64
	var completed int
	e.Play(recordingSpec(&value, &completed))
	base := time.Unix(100, 0)
	e.Advance(base)
	assert.Equal(t, 0.0, value, "first advance only records the clock")
	e.Advance(base.Add(20 * time.Millisecond))
	assert.InDelta(t, 2, value, 1e-9)
	e.Advance(base.Add(10 * time.Second))
	assert.InDelta(t, 10, value, 1e-9, "large gaps are capped but still finish")
	assert.Equal(t, 1, completed)
}

func TestRunDrivesTimelines(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		e.Run(ctx, 5*time.Millisecond)
		close(stopped)
	}()

	tl := e.Play(Spec{Duration: 20 * time.Millisecond})
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, tl.Wait(waitCtx))
	assert.Equal(t, Completed, tl.Outcome())

	cancel()
	<-stopped
}
