// Package loadtest holds the scripted session-replay scenario and the
// ramping virtual-user profile that drives it.
package loadtest

import (
	"time"

	"pizza-mock/internal/common/config"
)

// Stage is one segment of the ramp profile: the virtual-user count moves
// linearly from the previous stage's target to Target over Duration.
type Stage struct {
	Target   int
	Duration time.Duration
}

// DefaultStages is the standard login-and-order ramp profile.
func DefaultStages() []Stage {
	return []Stage{
		{Target: 5, Duration: 30 * time.Second},
		{Target: 15, Duration: time.Minute},
		{Target: 10, Duration: 30 * time.Second},
		{Target: 0, Duration: 30 * time.Second},
	}
}

// StagesFromConfig converts configured stages (durations in milliseconds).
func StagesFromConfig(cfgs []config.StageConfig) []Stage {
	if len(cfgs) == 0 {
		return DefaultStages()
	}
	stages := make([]Stage, 0, len(cfgs))
	for _, c := range cfgs {
		stages = append(stages, Stage{
			Target:   c.Target,
			Duration: time.Duration(c.Duration) * time.Millisecond,
		})
	}
	return stages
}

// TotalDuration sums the stage durations.
func TotalDuration(stages []Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += s.Duration
	}
	return total
}

// TargetAt returns the desired virtual-user count at the given elapsed
// time, interpolating linearly inside each stage. Before the first stage
// boundary the ramp starts from startVUs; past the last stage the final
// target holds.
func TargetAt(stages []Stage, startVUs int, elapsed time.Duration) int {
	prev := startVUs
	var offset time.Duration
	for _, s := range stages {
		if elapsed < offset+s.Duration {
			if s.Duration <= 0 {
				return s.Target
			}
			progress := float64(elapsed-offset) / float64(s.Duration)
			return prev + int(progress*float64(s.Target-prev))
		}
		offset += s.Duration
		prev = s.Target
	}
	return prev
}
