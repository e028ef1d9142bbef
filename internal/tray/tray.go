//go:build tray

// Package tray runs the system-tray driver: a refresh loop that polls the
// core on the configured interval and mirrors its snapshots into the menu.
package tray

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fyne.io/systray"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/core"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/transcript"
)

func Run(s *core.State, credsPath string) int {
	systray.Run(func() { onReady(s, credsPath) }, func() {
		s.StopMonitor()
	})
	return 0
}

func onReady(s *core.State, credsPath string) {
	systray.SetTitle("claude")
	systray.SetTooltip("Claude usage and context monitor")

	mPlan := systray.AddMenuItem("Claude", "")
	mPlan.Disable()
	systray.AddSeparator()
	mFive := systray.AddMenuItem("5h:  --%", "")
	mFive.Disable()
	mSeven := systray.AddMenuItem("7d:  --%", "")
	mSeven.Disable()
	mCtx := systray.AddMenuItem("ctx: --%", "")
	mCtx.Disable()
	systray.AddSeparator()
	mRefresh := systray.AddMenuItem("Refresh Now", "")
	mQuit := systray.AddMenuItem("Quit", "")

	if err := s.LoadCredentials(credsPath); err != nil {
		log.Printf("load credentials: %v", err)
	}
	if err := s.StartMonitor(credsPath); err != nil {
		log.Printf("monitor: %v", err)
	}

	refresh := func() {
		// A changed credential file means a refreshed token; reload
		// before fetching so the next request carries it.
		if s.CredentialsChanged() {
			if err := s.LoadCredentials(credsPath); err != nil {
				log.Printf("reload credentials: %v", err)
			}
		}
		if err := s.FetchUsage(); err != nil {
			log.Printf("fetch usage: %v", err)
		}
		if err := s.ReadContext(); err != nil && !errors.Is(err, transcript.ErrNoTranscripts) {
			log.Printf("read context: %v", err)
		}
		render(s, mPlan, mFive, mSeven, mCtx)
	}

	refresh()

	interval := time.Duration(s.Config().UpdateInterval) * time.Second
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-mRefresh.ClickedCh:
				refresh()
			case <-mQuit.ClickedCh:
				ticker.Stop()
				systray.Quit()
				return
			}
		}
	}()
}

func render(s *core.State, mPlan, mFive, mSeven, mCtx *systray.MenuItem) {
	if info := s.CredentialsInfo(); info.Valid && info.PlanName != "" {
		mPlan.SetTitle("Claude " + info.PlanName)
	}

	usage := s.Usage()
	if usage.Valid {
		mFive.SetTitle(fmt.Sprintf("5h: %3.0f%%  resets %s", usage.FiveHourPct,
			formatDuration(time.Until(usage.FiveHourReset))))
		mSeven.SetTitle(fmt.Sprintf("7d: %3.0f%%  resets %s", usage.SevenDayPct,
			formatDuration(time.Until(usage.SevenDayReset))))
	} else {
		mFive.SetTitle("5h:  --%")
		mSeven.SetTitle("7d:  --%")
	}

	ctx := s.Context()
	if ctx.Valid {
		mCtx.SetTitle(fmt.Sprintf("ctx: %3.0f%% (%s)", ctx.ContextPct, shortModel(ctx.ModelName)))
	} else {
		mCtx.SetTitle("ctx: --%")
	}

	systray.SetTitle(title(s, usage, ctx))
}

// title condenses the worst window into the panel text with the level
// spelled out, since a text tray has no icon color to lean on.
func title(s *core.State, usage core.UsageSnapshot, ctx core.ContextSnapshot) string {
	if !usage.Valid {
		return "claude --"
	}
	worst := usage.FiveHourPct
	if usage.SevenDayPct > worst {
		worst = usage.SevenDayPct
	}
	t := fmt.Sprintf("5h:%.0f%% 7d:%.0f%%", usage.FiveHourPct, usage.SevenDayPct)
	if ctx.Valid {
		t += fmt.Sprintf(" ctx:%.0f%%", ctx.ContextPct)
	}
	if level := s.Classify(worst); level != core.LevelGreen {
		t += " [" + level.String() + "]"
	}
	return t
}

func shortModel(model string) string {
	if model == "" {
		return "unknown"
	}
	return model
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "now"
	}
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
