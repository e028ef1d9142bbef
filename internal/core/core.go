// Package core aggregates credentials, remote usage, context readings and
// the credential-file monitor behind one stateful facade. The host UI's
// refresh loop is the only expected caller; apart from the changed flag,
// nothing here is shared across goroutines.
package core

import (
	"errors"
	"time"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/api"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/config"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/credentials"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/monitor"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/transcript"
)

// ErrNoCredentials means a fetch was requested before credentials loaded.
var ErrNoCredentials = errors.New("no credentials loaded")

// Level is a display category for a percentage.
type Level int

const (
	LevelGreen Level = iota
	LevelYellow
	LevelOrange
	LevelRed
)

func (l Level) String() string {
	switch l {
	case LevelYellow:
		return "yellow"
	case LevelOrange:
		return "orange"
	case LevelRed:
		return "red"
	default:
		return "green"
	}
}

// Panel colors per level.
const (
	colorGreen  = "#5faf5f"
	colorYellow = "#d7af5f"
	colorOrange = "#d78700"
	colorRed    = "#d75f5f"
)

// State owns the last-known snapshots and the active monitor. All mutation
// goes through its methods.
type State struct {
	creds       *credentials.Credentials
	cfg         config.Config
	client      *api.Client
	mon         *monitor.Monitor
	lastUsage   *api.UsageData
	lastContext *transcript.ContextInfo
	changed     monitor.Flag
}

func New() *State {
	return &State{
		cfg:    config.Default(),
		client: api.NewClient(),
	}
}

// NewWithConfig starts from an explicit config instead of the defaults.
func NewWithConfig(cfg config.Config) *State {
	s := New()
	s.cfg = cfg
	s.client.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	return s
}

// CredentialsInfo is the owned snapshot of the loaded credentials exposed
// to the host UI. Valid is false until a load succeeds.
type CredentialsInfo struct {
	PlanName string
	Valid    bool
}

// UsageSnapshot is the owned snapshot of the last successful fetch.
type UsageSnapshot struct {
	FiveHourPct   float64   `json:"five_hour_pct"`
	SevenDayPct   float64   `json:"seven_day_pct"`
	FiveHourReset time.Time `json:"five_hour_reset"`
	SevenDayReset time.Time `json:"seven_day_reset"`
	Valid         bool      `json:"valid"`
}

// ContextSnapshot is the owned snapshot of the last successful context read.
type ContextSnapshot struct {
	ContextPct    float64 `json:"context_pct"`
	ContextTokens int64   `json:"context_tokens"`
	WindowSize    int64   `json:"context_window_size"`
	ModelName     string  `json:"model_name,omitempty"`
	Valid         bool    `json:"valid"`
}

// LoadCredentials loads and validates the credential file (empty path =
// default location). On failure the stored credentials are cleared.
func (s *State) LoadCredentials(path string) error {
	creds, err := credentials.Load(path)
	if err != nil {
		s.creds = nil
		return err
	}
	s.creds = creds
	return nil
}

func (s *State) CredentialsInfo() CredentialsInfo {
	if s.creds == nil {
		return CredentialsInfo{}
	}
	return CredentialsInfo{PlanName: s.creds.PlanName, Valid: true}
}

// FetchUsage blocks on one usage request with the stored token. On failure
// the usage snapshot is cleared so stale data is never served as fresh.
func (s *State) FetchUsage() error {
	if s.creds == nil {
		return ErrNoCredentials
	}
	usage, err := s.client.FetchUsage(s.creds.AccessToken)
	if err != nil {
		s.lastUsage = nil
		return err
	}
	s.lastUsage = usage
	return nil
}

func (s *State) Usage() UsageSnapshot {
	if s.lastUsage == nil {
		return UsageSnapshot{}
	}
	return UsageSnapshot{
		FiveHourPct:   s.lastUsage.FiveHour.Utilization,
		SevenDayPct:   s.lastUsage.SevenDay.Utilization,
		FiveHourReset: s.lastUsage.FiveHour.ResetsAt,
		SevenDayReset: s.lastUsage.SevenDay.ResetsAt,
		Valid:         true,
	}
}

// ReadContext blocks on a full scan of the latest session log. On failure
// the context snapshot is cleared.
func (s *State) ReadContext() error {
	info, err := transcript.ReadLatest()
	if err != nil {
		s.lastContext = nil
		return err
	}
	s.lastContext = info
	return nil
}

func (s *State) Context() ContextSnapshot {
	if s.lastContext == nil {
		return ContextSnapshot{}
	}
	return ContextSnapshot{
		ContextPct:    s.lastContext.ContextPct,
		ContextTokens: s.lastContext.ContextTokens,
		WindowSize:    s.lastContext.WindowSize,
		ModelName:     s.lastContext.ModelName,
		Valid:         true,
	}
}

// StartMonitor watches the credential file (empty path = default). An
// already-active monitor is torn down first; at most one watch is live.
func (s *State) StartMonitor(path string) error {
	s.StopMonitor()
	mon, err := monitor.Start(path, &s.changed)
	if err != nil {
		return err
	}
	s.mon = mon
	return nil
}

// StopMonitor tears down the active watch, if any.
func (s *State) StopMonitor() {
	if s.mon != nil {
		s.mon.Stop()
		s.mon = nil
	}
}

// CredentialsChanged reports whether the watched file changed since the
// last poll, clearing the flag.
func (s *State) CredentialsChanged() bool {
	return s.changed.TestAndClear()
}

func (s *State) Config() config.Config { return s.cfg }

func (s *State) SetUpdateInterval(seconds int) { s.cfg.UpdateInterval = seconds }

func (s *State) SetRequestTimeout(seconds int) {
	s.cfg.RequestTimeout = seconds
	s.client.Timeout = time.Duration(seconds) * time.Second
}

func (s *State) SetYellowThreshold(pct int) { s.cfg.YellowThreshold = pct }
func (s *State) SetOrangeThreshold(pct int) { s.cfg.OrangeThreshold = pct }
func (s *State) SetRedThreshold(pct int)    { s.cfg.RedThreshold = pct }

// Classify buckets a percentage against the configured thresholds. A value
// exactly on a threshold lands in the higher bucket.
func (s *State) Classify(pct float64) Level {
	switch {
	case pct < float64(s.cfg.YellowThreshold):
		return LevelGreen
	case pct < float64(s.cfg.OrangeThreshold):
		return LevelYellow
	case pct < float64(s.cfg.RedThreshold):
		return LevelOrange
	default:
		return LevelRed
	}
}

// Color returns the panel hex color for a percentage.
func (s *State) Color(pct float64) string {
	switch s.Classify(pct) {
	case LevelYellow:
		return colorYellow
	case LevelOrange:
		return colorOrange
	case LevelRed:
		return colorRed
	default:
		return colorGreen
	}
}
