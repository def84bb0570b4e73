// Package viz renders trajectories and sweep grids as terminal plots. It
// consumes numeric simulation output only and imposes nothing back on the
// model.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/scenario"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sweep"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// TrajectoryPlots renders pay, status, and research as stacked time-series
// plots for one run.
func TrajectoryPlots(result *sim.Result) string {
	var b strings.Builder

	pay := result.Component(career.IPay)
	b.WriteString(graphStyle.Render(asciigraph.Plot(pay,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("pay vs career year"),
	)))
	b.WriteString("\n")

	b.WriteString(graphStyle.Render(asciigraph.PlotMany(
		[][]float64{result.Component(career.IStatus), result.Component(career.IResearch)},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
		asciigraph.Caption("status / research vs career year"),
	)))
	b.WriteString("\n")
	b.WriteString(Legend("blue: status", "green: research"))
	b.WriteString("\n")

	return b.String()
}

// ComparisonPlot overlays the pay series of every scenario, plus observed
// salary data when provided (interpolated onto the shared time grid).
func ComparisonPlot(c *scenario.Comparison, observed []scenario.SalaryPoint) string {
	series := make([][]float64, 0, len(c.Names)+1)
	legends := make([]string, 0, len(c.Names)+1)
	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta}

	for _, name := range c.Names {
		series = append(series, c.Pay(name))
		legends = append(legends, name)
	}
	if len(observed) > 0 {
		series = append(series, resample(observed, c.Times))
		legends = append(legends, "observed")
	}

	used := colors[:min(len(series), len(colors))]

	var b strings.Builder
	b.WriteString(graphStyle.Render(asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight+4),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(used...),
		asciigraph.Caption("pay vs career year"),
	)))
	b.WriteString("\n")

	colorNames := []string{"blue", "red", "green", "yellow", "magenta"}
	entries := make([]string, 0, len(legends))
	for i, l := range legends {
		entries = append(entries, fmt.Sprintf("%s: %s", colorNames[i%len(colorNames)], l))
	}
	b.WriteString(Legend(entries...))
	b.WriteString("\n")

	return b.String()
}

// SweepPlot renders one final-pay curve per perturbed coefficient.
func SweepPlot(g *sweep.Grid) string {
	var b strings.Builder
	for i, coeff := range g.Coefficients {
		b.WriteString(graphStyle.Render(asciigraph.Plot(g.FinalPay[i],
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("final pay vs %s factor [%.2f..%.2f]",
				coeff, g.Factors[0], g.Factors[len(g.Factors)-1])),
		)))
		b.WriteString("\n")
	}
	return b.String()
}

// resample linearly interpolates observed salary points onto the model's
// eval times, holding endpoints flat outside the observed range.
func resample(points []scenario.SalaryPoint, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = interp(points, t)
	}
	return out
}

func interp(points []scenario.SalaryPoint, t float64) float64 {
	if t <= points[0].Year {
		return points[0].Salary
	}
	last := points[len(points)-1]
	if t >= last.Year {
		return last.Salary
	}
	for i := 1; i < len(points); i++ {
		if t <= points[i].Year {
			lo, hi := points[i-1], points[i]
			frac := (t - lo.Year) / (hi.Year - lo.Year)
			return lo.Salary + frac*(hi.Salary-lo.Salary)
		}
	}
	return last.Salary
}
