package metrics

import (
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

// BoundsViolations counts samples where status or research overshoot [0,1].
// The model does not clamp, so a nonzero value flags numerical overshoot
// from large steps or perturbed parameters.
type BoundsViolations struct {
	name       string
	tolerance  float64
	violations int
}

func NewBoundsViolations(tolerance float64) *BoundsViolations {
	return &BoundsViolations{name: "bounds_violations", tolerance: tolerance}
}

func (b *BoundsViolations) Name() string { return b.name }

func (b *BoundsViolations) Observe(x sim.State, t float64) {
	for _, idx := range []int{career.IStatus, career.IResearch} {
		if idx >= len(x) {
			continue
		}
		if x[idx] < -b.tolerance || x[idx] > 1+b.tolerance {
			b.violations++
			break
		}
	}
}

func (b *BoundsViolations) Value() float64 {
	return float64(b.violations)
}

func (b *BoundsViolations) Reset() {
	b.violations = 0
}
