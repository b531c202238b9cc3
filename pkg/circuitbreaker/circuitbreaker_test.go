package circuitbreaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dinehall/booking-service/pkg/circuitbreaker"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_Call(t *testing.T) {
	successfulService := func() error { return nil }
	failingService := func() error { return errors.New("service error") }

	t.Run("stays closed on successes", func(t *testing.T) {
		cb := circuitbreaker.New(10, 2*time.Second, 0.3, 3)
		for i := 0; i < 50; i++ {
			require.NoError(t, cb.Call(successfulService))
		}
	})

	t.Run("opens after failure percentile exceeded", func(t *testing.T) {
		cb := circuitbreaker.New(10, time.Minute, 0.3, 3)
		for i := 0; i < 3; i++ {
			require.Error(t, cb.Call(failingService))
		}
		err := cb.Call(successfulService)
		require.ErrorIs(t, err, circuitbreaker.ErrOpenCB)
	})

	t.Run("half-open probes and recovers", func(t *testing.T) {
		cb := circuitbreaker.New(10, time.Millisecond*20, 0.3, 2)
		for i := 0; i < 3; i++ {
			require.Error(t, cb.Call(failingService))
		}
		require.ErrorIs(t, cb.Call(successfulService), circuitbreaker.ErrOpenCB)

		time.Sleep(time.Millisecond * 30)
		for i := 0; i < 5; i++ {
			require.NoError(t, cb.Call(successfulService))
		}
	})

	t.Run("half-open reopens on failure", func(t *testing.T) {
		cb := circuitbreaker.New(10, time.Millisecond*20, 0.3, 2)
		for i := 0; i < 3; i++ {
			require.Error(t, cb.Call(failingService))
		}
		time.Sleep(time.Millisecond * 30)
		require.Error(t, cb.Call(failingService))
		require.ErrorIs(t, cb.Call(successfulService), circuitbreaker.ErrOpenCB)
	})
}
