package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCreds(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandPath("~/a/b"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/x/y", ExpandPath("/x/y"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		contents  string
		wantErr   error
		wantToken string
		wantPlan  string
	}{
		{
			name:      "valid with max plan",
			contents:  `{"claudeAiOauth":{"accessToken":"sk-ant-oat01-xyz","subscriptionType":"claude_max_20x"}}`,
			wantToken: "sk-ant-oat01-xyz",
			wantPlan:  "Max",
		},
		{
			name:      "valid with pro plan",
			contents:  `{"claudeAiOauth":{"accessToken":"tok","subscriptionType":"claude_pro_2024"}}`,
			wantToken: "tok",
			wantPlan:  "Pro",
		},
		{
			name:      "uppercase subscription does not match",
			contents:  `{"claudeAiOauth":{"accessToken":"tok","subscriptionType":"MAX_PLAN"}}`,
			wantToken: "tok",
			wantPlan:  "",
		},
		{
			name:      "no subscription type",
			contents:  `{"claudeAiOauth":{"accessToken":"tok"}}`,
			wantToken: "tok",
			wantPlan:  "",
		},
		{
			name:     "missing oauth object",
			contents: `{"someOtherKey":{}}`,
			wantErr:  ErrMissingOAuth,
		},
		{
			name:     "empty access token",
			contents: `{"claudeAiOauth":{"accessToken":"","subscriptionType":"claude_pro"}}`,
			wantErr:  ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := Load(writeCreds(t, tt.contents))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, creds.AccessToken)
			assert.Equal(t, tt.wantPlan, creds.PlanName)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(writeCreds(t, `{"claudeAiOauth":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingOAuth)
	assert.Contains(t, err.Error(), "parse credentials")
}
