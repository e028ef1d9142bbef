//go:build !tray

package tray

import (
	"fmt"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/core"
)

func Run(s *core.State, credsPath string) int {
	fmt.Println("claude-status: tray mode not available in this build")
	fmt.Println("rebuild with: go build -tags tray ./cmd/claude-status")
	return 1
}
