package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyAssigner_Monotonic(t *testing.T) {
	assigner := NewKeyAssigner()

	previous := assigner.Next()
	for i := 0; i < 100; i++ {
		key := assigner.Next()
		assert.Greater(t, key, previous)
		previous = key
	}
}

func TestKeyAssigner_SameMillisecondBumps(t *testing.T) {
	frozen := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assigner := NewKeyAssignerAt(func() time.Time { return frozen })

	first := assigner.Next()
	second := assigner.Next()
	third := assigner.Next()

	assert.Equal(t, frozen.UnixMilli(), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, first+2, third)
}

func TestKeyAssigner_ClockGoingBackwards(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assigner := NewKeyAssignerAt(func() time.Time { return now })

	first := assigner.Next()
	now = now.Add(-time.Minute)
	second := assigner.Next()

	assert.Greater(t, second, first)
}
