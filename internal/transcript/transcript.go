// Package transcript derives context-window usage from Claude Code
// session logs.
package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoTranscripts means the projects root is absent or holds no session logs.
var ErrNoTranscripts = errors.New("no transcript files found")

// ContextWindowSize is the assumed model context window in tokens.
const ContextWindowSize = 200_000

// ContextInfo is a point-in-time reading of the active session's context
// consumption. Recomputed from scratch on every read.
type ContextInfo struct {
	// ContextPct is tokens over window size as a percentage, clamped to 100.
	ContextPct float64
	// ContextTokens is the raw token sum and may exceed the window.
	ContextTokens int64
	WindowSize    int64
	// ModelName is the last model seen in the log, empty if none appeared.
	ModelName string
}

// jsonRow is one line of a JSONL session log. Only the fields the
// aggregation needs; everything else in the record is ignored.
type jsonRow struct {
	Type    string          `json:"type"`
	Message *messageWrapper `json:"message"`
}

type messageWrapper struct {
	Model string      `json:"model"`
	Usage *usageBlock `json:"usage"`
}

// Absent counters decode as zero, which is exactly how they count.
type usageBlock struct {
	InputTokens              int64 `json:"input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

// DefaultProjectsRoot returns the directory Claude Code writes session
// logs under, one subdirectory per project.
func DefaultProjectsRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "projects")
	}
	return filepath.Join(home, ".claude", "projects")
}

// ReadLatest aggregates the most recently modified session log under the
// default projects root.
func ReadLatest() (*ContextInfo, error) {
	return ReadLatestIn(DefaultProjectsRoot())
}

// ReadLatestIn is ReadLatest against an explicit projects root.
func ReadLatestIn(root string) (*ContextInfo, error) {
	path, err := findLatestTranscript(root)
	if err != nil {
		return nil, err
	}
	return aggregateFile(path)
}

// findLatestTranscript picks the .jsonl file with the greatest mtime
// across all immediate project subdirectories.
func findLatestTranscript(root string) (string, error) {
	projects, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoTranscripts
		}
		return "", fmt.Errorf("read projects dir: %w", err)
	}

	var latestPath string
	var latestTime time.Time

	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		dir := filepath.Join(root, project.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".jsonl" {
				continue
			}
			info, err := f.Info()
			if err != nil {
				continue
			}
			if latestPath == "" || info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestPath = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestPath == "" {
		return "", ErrNoTranscripts
	}
	return latestPath, nil
}

// aggregateFile scans a session log line by line. An assistant record's
// usage block replaces the running total rather than adding to it: each
// assistant response reports the token count of the whole conversation
// context up to that point, so the last value wins. Lines that fail to
// decode are skipped so format drift never aborts the scan.
func aggregateFile(path string) (*ContextInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	defer f.Close()

	var tokens int64
	var model string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row jsonRow
		if err := json.Unmarshal(line, &row); err != nil {
			continue
		}
		if row.Type != "assistant" || row.Message == nil {
			continue
		}

		if row.Message.Model != "" {
			model = row.Message.Model
		}
		if u := row.Message.Usage; u != nil {
			tokens = u.InputTokens + u.CacheCreationInputTokens + u.CacheReadInputTokens
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	pct := float64(tokens) / float64(ContextWindowSize) * 100
	if pct > 100 {
		pct = 100
	}

	return &ContextInfo{
		ContextPct:    pct,
		ContextTokens: tokens,
		WindowSize:    ContextWindowSize,
		ModelName:     model,
	}, nil
}
