package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/api"
)

func TestProjectHalfwayThroughWindow(t *testing.T) {
	// 40% used with half the window elapsed projects to 80% at reset.
	p := Project(api.UsagePeriod{
		Utilization: 40,
		ResetsAt:    time.Now().Add(FiveHourWindow / 2),
	}, FiveHourWindow)

	assert.InDelta(t, 80, p.ProjectedPct, 0.5)
	assert.True(t, p.OnTrack)
}

func TestProjectOverLimit(t *testing.T) {
	// 60% used with 80% of the window still ahead blows past 100.
	p := Project(api.UsagePeriod{
		Utilization: 60,
		ResetsAt:    time.Now().Add(4 * time.Hour),
	}, FiveHourWindow)

	assert.False(t, p.OnTrack)
	assert.Equal(t, "over limit", p.Indicator())
}

func TestProjectZeroUsage(t *testing.T) {
	p := Project(api.UsagePeriod{
		Utilization: 0,
		ResetsAt:    time.Now().Add(time.Hour),
	}, FiveHourWindow)

	assert.Zero(t, p.ProjectedPct)
	assert.True(t, p.OnTrack)
	assert.Equal(t, "on track", p.Indicator())
}

func TestProjectWindowNotStarted(t *testing.T) {
	// Reset further away than the window length means no elapsed time yet;
	// pass the current value through.
	p := Project(api.UsagePeriod{
		Utilization: 15,
		ResetsAt:    time.Now().Add(SevenDayWindow + time.Hour),
	}, SevenDayWindow)

	assert.Equal(t, 15.0, p.ProjectedPct)
	assert.True(t, p.OnTrack)
}

func TestIndicatorTight(t *testing.T) {
	assert.Equal(t, "tight", Projection{ProjectedPct: 95}.Indicator())
}
