package metrics

import (
	"math"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

// LifetimePay accumulates the trapezoidal integral of pay over career time,
// the total amount earned across the simulated span.
type LifetimePay struct {
	name     string
	total    float64
	prevPay  float64
	prevTime float64
	samples  int
}

func NewLifetimePay() *LifetimePay {
	return &LifetimePay{name: "lifetime_pay"}
}

func (l *LifetimePay) Name() string { return l.name }

func (l *LifetimePay) Observe(x sim.State, t float64) {
	if len(x) <= career.IPay {
		return
	}
	pay := x[career.IPay]
	if l.samples > 0 {
		l.total += 0.5 * (pay + l.prevPay) * (t - l.prevTime)
	}
	l.prevPay = pay
	l.prevTime = t
	l.samples++
}

func (l *LifetimePay) Value() float64 {
	return l.total
}

func (l *LifetimePay) Reset() {
	l.total = 0
	l.prevPay = 0
	l.prevTime = 0
	l.samples = 0
}

// FinalPay tracks the most recently observed pay, which after a full solve
// is the pay at the end of the span.
type FinalPay struct {
	name string
	last float64
}

func NewFinalPay() *FinalPay {
	return &FinalPay{name: "final_pay"}
}

func (f *FinalPay) Name() string { return f.name }

func (f *FinalPay) Observe(x sim.State, t float64) {
	if len(x) > career.IPay {
		f.last = x[career.IPay]
	}
}

func (f *FinalPay) Value() float64 { return f.last }

func (f *FinalPay) Reset() { f.last = 0 }

// PeakStatus tracks the maximum status reached over the career.
type PeakStatus struct {
	name string
	peak float64
}

func NewPeakStatus() *PeakStatus {
	return &PeakStatus{name: "peak_status"}
}

func (p *PeakStatus) Name() string { return p.name }

func (p *PeakStatus) Observe(x sim.State, t float64) {
	if len(x) > career.IStatus {
		p.peak = math.Max(p.peak, x[career.IStatus])
	}
}

func (p *PeakStatus) Value() float64 { return p.peak }

func (p *PeakStatus) Reset() { p.peak = 0 }
