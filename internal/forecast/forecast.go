// Package forecast projects a usage window forward to its reset instant.
package forecast

import (
	"time"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/api"
)

const (
	FiveHourWindow = 5 * time.Hour
	SevenDayWindow = 7 * 24 * time.Hour
)

type Projection struct {
	// ProjectedPct is the estimated utilization at window reset (0-100+).
	ProjectedPct float64
	// OnTrack is true if projected usage stays under 100% at reset.
	OnTrack bool
}

// Project extrapolates a window's current burn rate linearly to its reset.
// windowLen is the window's total duration (FiveHourWindow or SevenDayWindow).
func Project(period api.UsagePeriod, windowLen time.Duration) Projection {
	remaining := time.Until(period.ResetsAt)
	elapsed := windowLen - remaining

	if elapsed <= 0 || period.Utilization <= 0 {
		return Projection{ProjectedPct: period.Utilization, OnTrack: true}
	}

	rate := period.Utilization / elapsed.Seconds()
	projected := rate * windowLen.Seconds()

	return Projection{
		ProjectedPct: projected,
		OnTrack:      projected < 100,
	}
}

// Indicator returns a short status string for the projection.
func (p Projection) Indicator() string {
	switch {
	case p.ProjectedPct >= 100:
		return "over limit"
	case p.ProjectedPct >= 90:
		return "tight"
	default:
		return "on track"
	}
}
