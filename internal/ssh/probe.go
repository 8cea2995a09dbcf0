package ssh

import (
	"fmt"
	"strings"
)

// OSType represents the detected remote operating system.
type OSType string

const (
	OSLinux   OSType = "linux"
	OSMacOS   OSType = "macos"
	OSBSD     OSType = "bsd"
	OSUnknown OSType = "unknown"
)

// DetectOS probes the remote system with uname.
func DetectOS(r Runner) (OSType, error) {
	out, err := r.RunCommand("uname -s")
	if err != nil {
		return OSUnknown, fmt.Errorf("detect remote OS: %w", err)
	}

	system := strings.TrimSpace(strings.ToLower(out))
	switch {
	case strings.Contains(system, "linux"):
		return OSLinux, nil
	case strings.Contains(system, "darwin"):
		return OSMacOS, nil
	case strings.HasSuffix(system, "bsd"):
		return OSBSD, nil
	}
	return OSUnknown, fmt.Errorf("unsupported remote OS %q", system)
}

// Writable reports whether the remote user can write path directly: either
// path is writable or it does not exist yet and its directory is.
func Writable(r Runner, path string) bool {
	q := shellQuote(path)
	_, err := r.RunCommand(fmt.Sprintf("test -w %s || { test ! -e %s && test -w %s; }", q, q, shellQuote(parentDir(path))))
	return err == nil
}

// HasSudo reports whether the remote user may run sudo without a password.
func HasSudo(r Runner) bool {
	_, err := r.RunCommand("sudo -n true")
	return err == nil
}
