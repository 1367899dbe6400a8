// Package validation checks policy values before they reach the renderer or
// a shell command line. Service names and file paths end up as arguments to
// systemctl and sshd, so injection characters are rejected here, once.
package validation

import (
	"fmt"
	"net"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Valid service name: alphanumeric, dash, underscore, dot, @ (templated
	// units), max 255 chars
	serviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.@-]{1,255}$`)

	// Dangerous characters that should never appear in values we exec with
	dangerousChars = []string{";", "|", "&", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r", " "}
)

// ValidatePort validates a TCP listen port.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d (must be 1-65535)", port)
	}
	return nil
}

// ValidateListenAddress validates a bind address. Only literal IPs are
// accepted; sshd resolves hostnames at startup but a policy that depends on
// DNS to bind is a misconfiguration waiting to happen.
func ValidateListenAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if net.ParseIP(addr) == nil {
		return fmt.Errorf("invalid listen address: %s (must be a literal IP)", addr)
	}
	return nil
}

// ValidateServiceName validates a systemd unit name.
func ValidateServiceName(name string) error {
	if name == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	if !serviceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid service name: %s (must be alphanumeric with -_.@)", name)
	}

	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("service name contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateFilePath validates an absolute file path (host key files, the
// managed config path).
func ValidateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if filepath.Clean(path) != path {
		return fmt.Errorf("path is not normalized: %s", path)
	}

	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %q", char)
		}
	}

	return nil
}
