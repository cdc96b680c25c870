package cli

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardSignalsQuitsOnSignal(t *testing.T) {
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	defer close(done)
	quit := make(chan struct{}, 1)

	returned := make(chan struct{})
	go func() {
		forwardSignals(signals, done, func() error {
			quit <- struct{}{}
			return nil
		})
		close(returned)
	}()

	signals <- syscall.SIGTERM
	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("quit not called")
	}
	require.Eventually(t, func() bool {
		select {
		case <-returned:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestForwardSignalsReturnsWhenDone(t *testing.T) {
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	called := false

	returned := make(chan struct{})
	go func() {
		forwardSignals(signals, done, func() error {
			called = true
			return nil
		})
		close(returned)
	}()

	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("forwardSignals still waiting after done")
	}
	assert.False(t, called)
}
