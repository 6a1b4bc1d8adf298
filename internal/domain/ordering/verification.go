package ordering

import (
	"fmt"
	"time"
)

// VerificationWindow is how long after delivery the buyer has to inspect
// the goods and report problems
const VerificationWindow = 90 * time.Minute

// VerificationRemaining returns how much of the verification window is
// left at the given instant. It never goes negative: once the window has
// elapsed the remaining time is zero.
func VerificationRemaining(deliveredAt, now time.Time) time.Duration {
	remaining := VerificationWindow - now.Sub(deliveredAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatCountdown renders a duration as MM:SS, truncating partial
// seconds and clamping at 00:00
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
