package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_BurstEmitsLastValueOnce(t *testing.T) {
	d := NewDebouncer[string](20 * time.Millisecond)
	defer d.Stop()

	for _, v := range []string{"h", "he", "hel", "hell", "hello"} {
		d.Set(v)
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case got := <-d.C():
		assert.Equal(t, "hello", got)
	case <-time.After(time.Second):
		t.Fatal("expected an emission")
	}

	select {
	case got := <-d.C():
		t.Fatalf("unexpected second emission %q", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncer_SpacedValuesEmitSeparately(t *testing.T) {
	d := NewDebouncer[string](10 * time.Millisecond)
	defer d.Stop()

	d.Set("a")
	require.Equal(t, "a", <-d.C())

	d.Set("b")
	require.Equal(t, "b", <-d.C())
}

func TestDebouncer_IdenticalValueRearms(t *testing.T) {
	d := NewDebouncer[string](10 * time.Millisecond)
	defer d.Stop()

	d.Set("same")
	require.Equal(t, "same", <-d.C())

	d.Set("same")
	select {
	case got := <-d.C():
		assert.Equal(t, "same", got)
	case <-time.After(time.Second):
		t.Fatal("expected identical value to emit again")
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer[string](30 * time.Millisecond)
	d.Set("never")
	assert.True(t, d.Pending())

	d.Stop()
	assert.False(t, d.Pending())

	_, ok := <-d.C()
	assert.False(t, ok, "channel should be closed without emitting")
}

func TestDebouncer_SetAfterStopIsNoop(t *testing.T) {
	d := NewDebouncer[int](time.Millisecond)
	d.Stop()
	d.Stop()

	assert.NotPanics(t, func() { d.Set(1) })
	assert.False(t, d.Pending())
}

func TestDebouncer_ZeroDelayIsAsynchronous(t *testing.T) {
	d := NewDebouncer[string](0)
	defer d.Stop()

	d.Set("x")
	select {
	case got := <-d.C():
		assert.Equal(t, "x", got)
	case <-time.After(time.Second):
		t.Fatal("expected emission")
	}
}

func TestDebouncer_NegativeDelayClamped(t *testing.T) {
	d := NewDebouncer[string](-time.Second)
	defer d.Stop()
	assert.Equal(t, time.Duration(0), d.Delay())
}

func TestDebouncer_UnreadValueReplaced(t *testing.T) {
	d := NewDebouncer[string](5 * time.Millisecond)
	defer d.Stop()

	d.Set("first")
	time.Sleep(40 * time.Millisecond)
	d.Set("second")
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, "second", <-d.C())
	select {
	case got := <-d.C():
		t.Fatalf("unexpected buffered value %q", got)
	default:
	}
}
