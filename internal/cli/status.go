// Package cli renders the current usage and context state in a terminal.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/api"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/core"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/forecast"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/transcript"
)

const barWidth = 20

const ansiReset = "\033[0m"

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
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

// ansiColor maps a classification level to a terminal color code.
func ansiColor(level core.Level) string {
	switch level {
	case core.LevelYellow:
		return "\033[33m"
	case core.LevelOrange:
		return "\033[38;5;208m"
	case core.LevelRed:
		return "\033[31m"
	default:
		return "\033[32m"
	}
}

func bar(pct float64) string {
	filled := int(math.Round(pct / 100 * barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func printColor(s *core.State) {
	usage := s.Usage()
	ctx := s.Context()

	if info := s.CredentialsInfo(); info.Valid && info.PlanName != "" {
		fmt.Printf("claude-status (%s)\n", info.PlanName)
	} else {
		fmt.Println("claude-status")
	}

	if usage.Valid {
		printWindow(s, "5h", usage.FiveHourPct, usage.FiveHourReset, forecast.FiveHourWindow)
		printWindow(s, "7d", usage.SevenDayPct, usage.SevenDayReset, forecast.SevenDayWindow)
	} else {
		fmt.Println("  usage: unavailable")
	}

	if ctx.Valid {
		c := ansiColor(s.Classify(ctx.ContextPct))
		model := ctx.ModelName
		if model == "" {
			model = "unknown model"
		}
		fmt.Printf("  ctx %s%s%s %3.0f%%  %s tokens  %s\n",
			c, bar(ctx.ContextPct), ansiReset, ctx.ContextPct,
			formatTokens(ctx.ContextTokens), model)
	} else {
		fmt.Println("  ctx: no transcripts")
	}
}

func printWindow(s *core.State, label string, pct float64, resetsAt time.Time, windowLen time.Duration) {
	c := ansiColor(s.Classify(pct))
	proj := forecast.Project(api.UsagePeriod{Utilization: pct, ResetsAt: resetsAt}, windowLen)
	fmt.Printf("  %s  %s%s%s %3.0f%%  resets %s  %s\n",
		label, c, bar(pct), ansiReset, pct,
		formatDuration(time.Until(resetsAt)), proj.Indicator())
}

func printPlain(s *core.State) {
	usage := s.Usage()
	ctx := s.Context()

	if usage.Valid {
		fmt.Printf("5h: %.0f%% (resets %s)  7d: %.0f%% (resets %s)\n",
			usage.FiveHourPct, formatDuration(time.Until(usage.FiveHourReset)),
			usage.SevenDayPct, formatDuration(time.Until(usage.SevenDayReset)))
	} else {
		fmt.Println("usage: unavailable")
	}
	if ctx.Valid {
		fmt.Printf("ctx: %.0f%% (%d/%d tokens)\n", ctx.ContextPct, ctx.ContextTokens, ctx.WindowSize)
	} else {
		fmt.Println("ctx: no transcripts")
	}
}

type jsonOutput struct {
	Plan    string                `json:"plan,omitempty"`
	Usage   *core.UsageSnapshot   `json:"usage,omitempty"`
	Context *core.ContextSnapshot `json:"context,omitempty"`
}

func printJSON(s *core.State) {
	out := jsonOutput{Plan: s.CredentialsInfo().PlanName}
	if usage := s.Usage(); usage.Valid {
		out.Usage = &usage
	}
	if ctx := s.Context(); ctx.Valid {
		out.Context = &ctx
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}

func formatTokens(n int64) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// Status runs one load-fetch-read cycle against a fresh core and prints
// the result. Returns a process exit code.
func Status(s *core.State, credsPath string, jsonMode, plainMode bool) int {
	if err := s.LoadCredentials(credsPath); err != nil {
		fmt.Fprintf(os.Stderr, "claude-status: %v\n", err)
		return 2
	}

	if err := s.FetchUsage(); err != nil {
		if errors.Is(err, api.ErrAuth) {
			fmt.Fprintln(os.Stderr, "claude-status: token rejected — open Claude Code to re-authenticate")
			return 2
		}
		fmt.Fprintf(os.Stderr, "claude-status: %v\n", err)
		return 1
	}

	// A missing transcript is normal on a machine with no sessions yet;
	// anything else is worth reporting.
	if err := s.ReadContext(); err != nil && !errors.Is(err, transcript.ErrNoTranscripts) {
		fmt.Fprintf(os.Stderr, "claude-status: %v\n", err)
	}

	if jsonMode {
		printJSON(s)
	} else if plainMode || !isTTY() {
		printPlain(s)
	} else {
		printColor(s)
	}
	return 0
}
