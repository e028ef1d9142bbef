package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/autostart"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/cli"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/config"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/core"
	"github.com/jcurbo/xfce4-claude-status-plugin/internal/tray"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		return statusCmd(nil)
	}

	switch os.Args[1] {
	case "status":
		return statusCmd(os.Args[2:])
	case "watch":
		return watchCmd(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Println("claude-status " + Version)
		return 0
	case "help", "--help", "-h":
		printHelp()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "claude-status: unknown command %q\n", os.Args[1])
		printHelp()
		return 1
	}
}

func newState(configPath string) *core.State {
	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "claude-status: %v (using defaults)\n", err)
	}
	return core.NewWithConfig(cfg)
}

func statusCmd(args []string) int {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	jsonMode := fs.Bool("json", false, "output JSON")
	plainMode := fs.Bool("plain", false, "plain text (no color)")
	credsPath := fs.String("credentials", "", "credentials file (default ~/.claude/.credentials.json)")
	configPath := fs.String("config", "", "config file (default ~/.config/claude-status/config.yaml)")
	fs.Parse(args)

	return cli.Status(newState(*configPath), *credsPath, *jsonMode, *plainMode)
}

func watchCmd(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	install := fs.Bool("install", false, "enable launch at login")
	uninstall := fs.Bool("uninstall", false, "disable launch at login")
	credsPath := fs.String("credentials", "", "credentials file (default ~/.claude/.credentials.json)")
	configPath := fs.String("config", "", "config file (default ~/.config/claude-status/config.yaml)")
	interval := fs.Int("interval", 0, "refresh interval in seconds (overrides config)")
	fs.Parse(args)

	if *install {
		if err := autostart.Install(); err != nil {
			fmt.Fprintf(os.Stderr, "claude-status: %v\n", err)
			return 1
		}
		fmt.Println("claude-status will start at login")
		return 0
	}
	if *uninstall {
		if err := autostart.Uninstall(); err != nil {
			fmt.Fprintf(os.Stderr, "claude-status: %v\n", err)
			return 1
		}
		fmt.Println("claude-status autostart removed")
		return 0
	}

	s := newState(*configPath)
	if *interval > 0 {
		s.SetUpdateInterval(*interval)
	}
	return tray.Run(s, *credsPath)
}

func printHelp() {
	fmt.Fprintln(os.Stderr, `Usage: claude-status [command] [flags]

Commands:
  status    Show current usage and context (default)
  watch     Run as system tray indicator
  version   Show version
  help      Show this help

Status flags:
  --json           Output as JSON
  --plain          Plain text, no color codes
  --credentials    Credentials file path (~ expanded)
  --config         Config file path

Watch flags:
  --install        Enable launch at login
  --uninstall      Disable launch at login
  --credentials    Credentials file path (~ expanded)
  --config         Config file path
  --interval       Refresh interval in seconds`)
}
