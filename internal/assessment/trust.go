package assessment

// Trust penalty weights. Linear, non-time-decaying, no override path.
const (
	tabSwitchPenalty   = 10
	copyAttemptPenalty = 5
)

// trustScore derives the behavioral trust score from telemetry:
// start at 100, deduct per signal, floor at 0. Telemetry is
// self-reported, so negative counts are treated as 0 rather than
// letting them push the score above 100.
func trustScore(m TrustMetrics) float64 {
	deduction := clampCount(m.TabSwitches)*tabSwitchPenalty + clampCount(m.CopyAttempts)*copyAttemptPenalty
	score := 100 - deduction
	if score < 0 {
		return 0
	}
	return float64(score)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
