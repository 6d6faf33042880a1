// ABOUTME: Opens a URL in the user's default web browser
// ABOUTME: Used to start the identity provider sign-in flow

package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command returns the platform launcher for url
func command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// Open launches the default browser without waiting for it to exit
func Open(url string) error {
	name, args := command(runtime.GOOS, url)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
