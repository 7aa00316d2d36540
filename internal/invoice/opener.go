package invoice

import (
	"os/exec"
	"runtime"
)

// Opener shows a rendered file to the operator.
type Opener interface {
	Open(path string) error
}

// NoopOpener never opens anything.
type NoopOpener struct{}

func (NoopOpener) Open(string) error { return nil }

// SystemOpener hands the file to the desktop's default viewer and does not
// wait for it.
type SystemOpener struct{}

func (SystemOpener) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
