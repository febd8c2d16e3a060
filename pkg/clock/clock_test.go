package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStamperUTC(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	s := NewFixed(ModeUTC, at)

	stamp := s.Now()
	assert.Equal(t, "2024-06-01T12:30:00Z", stamp)

	parsed, err := time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}

func TestStamperUTC7(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	s := NewFixed(ModeUTC7, at)

	stamp := s.Now()
	parsed, err := time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)

	// Same instant, +7h civil time
	assert.True(t, parsed.Equal(at))
	_, offset := parsed.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestStamperNeverFails(t *testing.T) {
	// Construction must succeed for any mode value, falling back to UTC
	for _, mode := range []Mode{ModeUTC, ModeUTC7, Mode("nonsense")} {
		s := New(mode)
		_, err := time.Parse(time.RFC3339, s.Now())
		assert.NoError(t, err)
	}
}
