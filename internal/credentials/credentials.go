// Package credentials loads the Claude Code OAuth credential file.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingOAuth means the file parsed but has no claudeAiOauth object.
	ErrMissingOAuth = errors.New("missing OAuth credentials in file")
	// ErrMissingToken means the OAuth object has no usable access token.
	ErrMissingToken = errors.New("missing access token")
)

// Credentials is the validated result of loading the credential file.
// Immutable once loaded; a reload produces a fresh value.
type Credentials struct {
	AccessToken string
	// PlanName is "Max" or "Pro" when the subscription type is recognized,
	// empty otherwise.
	PlanName string
}

type credentialsFile struct {
	ClaudeAiOauth *oauthSection `json:"claudeAiOauth"`
}

type oauthSection struct {
	AccessToken      string `json:"accessToken"`
	SubscriptionType string `json:"subscriptionType"`
}

const defaultRelPath = ".claude/.credentials.json"

// ExpandPath resolves a leading "~/" or a bare "~" to the user's home
// directory. Any other path is returned unchanged.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// DefaultPath returns the standard credential file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultRelPath
	}
	return filepath.Join(home, defaultRelPath)
}

// Load reads and validates the credential file. An empty path selects the
// default location; otherwise the path is used after ~ expansion. One
// attempt, no fallback sources.
func Load(path string) (*Credentials, error) {
	if path == "" {
		path = DefaultPath()
	} else {
		path = ExpandPath(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	if file.ClaudeAiOauth == nil {
		return nil, ErrMissingOAuth
	}
	if file.ClaudeAiOauth.AccessToken == "" {
		return nil, ErrMissingToken
	}

	return &Credentials{
		AccessToken: file.ClaudeAiOauth.AccessToken,
		PlanName:    planName(file.ClaudeAiOauth.SubscriptionType),
	}, nil
}

// planName maps a raw subscription identifier to a display tier.
// Matching is a case-sensitive substring check: "MAX_PLAN" is not a match.
func planName(subscription string) string {
	switch {
	case strings.Contains(subscription, "max"):
		return "Max"
	case strings.Contains(subscription, "pro"):
		return "Pro"
	default:
		return ""
	}
}
