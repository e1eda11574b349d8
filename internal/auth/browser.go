package auth

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// BrowserEnvVar names the environment variable that overrides the command
// used to open the consent URL.
const BrowserEnvVar = "BROWSER"

// OpenBrowser opens the given URL in the user's browser. The BROWSER
// environment variable takes precedence over the platform launcher. A
// launch failure is never fatal to the authorization flow; the caller logs
// it and surfaces the URL so a human can open it manually.
func OpenBrowser(url string) error {
	if override := os.Getenv(BrowserEnvVar); override != "" {
		parts := strings.Fields(override)
		args := append(parts[1:], url)
		return exec.Command(parts[0], args...).Start()
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	default:
		return fmt.Errorf("no browser launcher for %s", runtime.GOOS)
	}
}
