package devserver

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DefaultURL is used when neither environment variable is set.
const DefaultURL = "http://localhost:1420"

// Environment variables consulted for the dev server URL, first set wins.
const (
	EnvServerURL = "MARGINALIA_DEV_SERVER_URL"
	EnvURL       = "MARGINALIA_DEV_URL"
)

// ErrInvalidURL reports a dev server URL without a usable host.
var ErrInvalidURL = errors.New("devserver: invalid dev server url")

// HostPort is a dial target derived from the dev server URL.
type HostPort struct {
	Host string
	Port uint16
}

// URLFromEnv returns the dev server URL from the environment. fallback replaces
// DefaultURL when non-empty.
func URLFromEnv(fallback string) string {
	for _, key := range []string{EnvServerURL, EnvURL} {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
	}
	if fallback != "" {
		return fallback
	}
	return DefaultURL
}

// ParseHostPort extracts host and port from a URL such as "http://localhost:1420/",
// "https://example.com" or "localhost:1420". The scheme only picks the default port.
func ParseHostPort(raw string) (HostPort, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return HostPort{}, ErrInvalidURL
	}

	port := uint16(80)
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		s, port = rest, 443
	} else if rest, ok := strings.CutPrefix(s, "http://"); ok {
		s = rest
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return HostPort{}, ErrInvalidURL
	}

	host := s
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		host = s[:i]
		if p, err := strconv.ParseUint(s[i+1:], 10, 16); err == nil {
			port = uint16(p)
		}
	}
	if host == "" {
		return HostPort{}, ErrInvalidURL
	}
	return HostPort{Host: host, Port: port}, nil
}

// Candidates lists the hosts to try. "localhost" also tries both loopback
// literals since some machines resolve it to only one address family.
func (hp HostPort) Candidates() []string {
	hosts := []string{hp.Host}
	if strings.EqualFold(hp.Host, "localhost") {
		hosts = append(hosts, "127.0.0.1", "::1")
	}
	return hosts
}
