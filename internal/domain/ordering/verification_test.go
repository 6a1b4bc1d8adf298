package ordering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationRemaining(t *testing.T) {
	deliveredAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"at delivery the full window remains", deliveredAt, 90 * time.Minute},
		{"one minute left at T+89m", deliveredAt.Add(89 * time.Minute), time.Minute},
		{"zero at the window boundary", deliveredAt.Add(90 * time.Minute), 0},
		{"never negative after the window", deliveredAt.Add(91 * time.Minute), 0},
		{"still zero hours later", deliveredAt.Add(6 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerificationRemaining(deliveredAt, tt.now))
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"full window", 90 * time.Minute, "90:00"},
		{"one minute", time.Minute, "01:00"},
		{"seconds only", 42 * time.Second, "00:42"},
		{"partial seconds truncate", 90*time.Second + 700*time.Millisecond, "01:30"},
		{"zero", 0, "00:00"},
		{"negative clamps to zero", -5 * time.Minute, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCountdown(tt.d))
		})
	}
}

func TestCountdownAfterDelivery(t *testing.T) {
	deliveredAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "01:00", FormatCountdown(VerificationRemaining(deliveredAt, deliveredAt.Add(89*time.Minute))))
	assert.Equal(t, "00:00", FormatCountdown(VerificationRemaining(deliveredAt, deliveredAt.Add(91*time.Minute))))
}
