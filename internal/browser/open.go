// Package browser opens local paths in the platform file browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Open reveals the given directory in the platform file browser. The
// launched process is not waited on.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
