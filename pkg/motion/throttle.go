package motion

import (
	"math"
	"time"

	"github.com/openjam/jamroom/pkg/api"
)

// Reporter rate- and delta-limits outbound position updates: a
// position qualifies only when the minimum interval elapsed since the
// last send and some component moved by more than epsilon from the
// last sent position, not the last computed one. Small drift is never
// discarded forever since any cumulative change eventually exceeds
// epsilon.
type Reporter struct {
	interval time.Duration
	epsilon  float64

	sent     bool
	lastSent api.Position
	lastAt   time.Time
}

func NewReporter(interval time.Duration, epsilon float64) *Reporter {
	return &Reporter{interval: interval, epsilon: epsilon}
}

// ShouldSend reports whether pos is worth an envelope and, when it
// is, makes pos the new send baseline. The first position always
// qualifies.
func (r *Reporter) ShouldSend(now time.Time, pos api.Position) bool {
	if r.sent {
		if now.Sub(r.lastAt) < r.interval {
			return false
		}
		if !exceeds(pos, r.lastSent, r.epsilon) {
			return false
		}
	}
	r.sent = true
	r.lastSent = pos
	r.lastAt = now
	return true
}

func exceeds(a, b api.Position, epsilon float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return true
		}
	}
	return false
}
