package track

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadyResolvesOnce(t *testing.T) {
	r := NewReady()
	go r.Resolve(nil)
	assert.NoError(t, r.Wait(context.Background()))

	r.Resolve(errors.New("late"))
	assert.NoError(t, r.Wait(context.Background()))
}

func TestReadyFailure(t *testing.T) {
	r := NewReady()
	boom := errors.New("no audio device")
	r.Resolve(boom)
	assert.ErrorIs(t, r.Wait(context.Background()), boom)
}

func TestReadyWaitCancelled(t *testing.T) {
	r := NewReady()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}
