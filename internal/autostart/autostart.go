// Package autostart installs the watch mode as a login item.
package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const desktopEntry = `[Desktop Entry]
Type=Application
Name=Claude Status
Comment=Claude usage and context monitor
Exec=%s watch
Terminal=false
X-GNOME-Autostart-enabled=true
`

const launchAgentLabel = "com.claude-status.watch"

const launchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>` + launchAgentLabel + `</string>
    <key>ProgramArguments</key>
    <array>
        <string>%s</string>
        <string>watch</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

func Install() error {
	bin, err := os.Executable()
	if err != nil {
		return err
	}
	bin, err = filepath.EvalSymlinks(bin)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case "linux":
		path, err := desktopPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(fmt.Sprintf(desktopEntry, bin)), 0644)
	case "darwin":
		path, err := plistPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(fmt.Sprintf(launchAgentPlist, bin)), 0644); err != nil {
			return err
		}
		return exec.Command("launchctl", "load", path).Run()
	default:
		return fmt.Errorf("autostart not supported on %s", runtime.GOOS)
	}
}

func Uninstall() error {
	switch runtime.GOOS {
	case "linux":
		path, err := desktopPath()
		if err != nil {
			return err
		}
		return removeIfPresent(path)
	case "darwin":
		path, err := plistPath()
		if err != nil {
			return err
		}
		exec.Command("launchctl", "unload", path).Run()
		return removeIfPresent(path)
	default:
		return fmt.Errorf("autostart not supported on %s", runtime.GOOS)
	}
}

func desktopPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", "claude-status.desktop"), nil
}

func plistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel+".plist"), nil
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
