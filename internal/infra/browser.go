package infra

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/rs/zerolog/log"
)

// OpenAppWindow opens url in a chromeless Chrome app window, giving the
// server a desktop-application feel. Returns the connected browser so the
// caller can watch for the window closing. Falls back to the system browser
// when no Chrome binary is available.
func OpenAppWindow(url string) (*rod.Browser, error) {
	bin, has := launcher.LookPath()
	if !has {
		log.Warn().Msg("no chrome binary found, opening system browser instead")
		return nil, OpenSystemBrowser(url)
	}

	u, err := launcher.NewAppMode(url).
		Bin(bin).
		Leakless(false).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	return browser, nil
}

// WaitForBrowserClose blocks until the browser process goes away, detected
// by the control connection refusing calls. Used to treat "user closed the
// window" as an application quit.
func WaitForBrowserClose(browser *rod.Browser) {
	for {
		time.Sleep(time.Second)
		if _, err := browser.Pages(); err != nil {
			return
		}
	}
}

// OpenSystemBrowser opens url with the platform's default browser.
func OpenSystemBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
