package naming

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// FolderOpener shows a directory in the platform file browser.
type FolderOpener interface {
	Open(dir string) error
}

// OpenCommand returns the command that opens a path with the default application: open on Mac, xdg-open
// on Linux and the BSDs, explorer on Windows. It returns an empty string on other platforms.
func OpenCommand(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open"
	case "windows":
		return "explorer"
	default:
		return ""
	}
}

// SystemOpener opens folders with the platform command. It does not wait for the browser to exit.
type SystemOpener struct {
	goos  string
	start func(name string, args ...string) error
}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			go func() { _ = cmd.Wait() }()

			return nil
		},
	}
}

// Open opens dir. A missing directory or an unsupported platform is a no-op.
func (o *SystemOpener) Open(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	command := OpenCommand(o.goos)
	if command == "" {
		return nil
	}

	return errors.Wrapf(o.start(command, dir), "unable to open %s", dir)
}
