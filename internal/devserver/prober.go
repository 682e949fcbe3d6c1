package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

const (
	DefaultAttempts    = 10
	DefaultDelay       = 200 * time.Millisecond
	DefaultDialTimeout = 250 * time.Millisecond
)

// ErrRetriesExhausted is returned by Wait when every attempt failed.
var ErrRetriesExhausted = errors.New("devserver: dev server not reachable")

// ConnectError is a failed attempt against every candidate address.
type ConnectError struct {
	Target HostPort
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("devserver: connect %s: %v", net.JoinHostPort(e.Target.Host, strconv.Itoa(int(e.Target.Port))), e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Prober checks that the frontend dev server accepts TCP connections.
// Nil hooks fall back to the net package and time.Sleep.
type Prober struct {
	URL         string
	Attempts    int
	Delay       time.Duration
	DialTimeout time.Duration

	// Hooks for tests.
	LookupHost func(ctx context.Context, host string) ([]string, error)
	Dial       func(ctx context.Context, network, address string) (net.Conn, error)
	Sleep      func(time.Duration)

	Log logger.Logger
}

// New returns a Prober for url with the fixed startup limits.
func New(url string, log logger.Logger) *Prober {
	return &Prober{
		URL:         url,
		Attempts:    DefaultAttempts,
		Delay:       DefaultDelay,
		DialTimeout: DefaultDialTimeout,
		LookupHost:  net.DefaultResolver.LookupHost,
		Sleep:       time.Sleep,
		Log:         log,
	}
}

// Probe makes a single attempt. It returns ErrInvalidURL for a malformed URL
// and a *ConnectError when no candidate address accepted a connection.
func (p *Prober) Probe(ctx context.Context) error {
	hp, err := ParseHostPort(p.URL)
	if err != nil {
		return err
	}
	return p.probe(ctx, hp)
}

func (p *Prober) probe(ctx context.Context, hp HostPort) error {
	port := strconv.Itoa(int(hp.Port))
	var lastErr error
	for _, host := range hp.Candidates() {
		addrs, err := p.lookup(ctx, host)
		if err != nil {
			lastErr = err
			continue
		}
		for _, addr := range addrs {
			conn, err := p.dial(ctx, net.JoinHostPort(addr, port))
			if err != nil {
				lastErr = err
				continue
			}
			_ = conn.Close()
			return nil
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no addresses")
	}
	return &ConnectError{Target: hp, Err: lastErr}
}

// Wait retries Probe up to Attempts times, sleeping Delay between failures.
// A malformed URL fails at once; retrying cannot fix it.
func (p *Prober) Wait(ctx context.Context) error {
	hp, err := ParseHostPort(p.URL)
	if err != nil {
		p.logf(p.logError, "dev server url %q: %v", p.URL, err)
		return err
	}

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = p.probe(ctx, hp); lastErr == nil {
			p.logf(p.logInfo, "dev server reachable at %s:%d (attempt %d)", hp.Host, hp.Port, attempt)
			return nil
		}
		p.logf(p.logDebug, "dev server attempt %d/%d: %v", attempt, attempts, lastErr)
		if attempt < attempts {
			p.sleep(p.Delay)
		}
	}
	p.logf(p.logError, "dev server not reachable after %d attempts", attempts)
	return fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

// Reachable reports whether a single attempt succeeds.
func (p *Prober) Reachable(ctx context.Context) bool {
	return p.Probe(ctx) == nil
}

// ReachableWithRetry reports whether the dev server came up within the retry budget.
func (p *Prober) ReachableWithRetry(ctx context.Context) bool {
	return p.Wait(ctx) == nil
}

func (p *Prober) lookup(ctx context.Context, host string) ([]string, error) {
	if p.LookupHost == nil {
		return net.DefaultResolver.LookupHost(ctx, host)
	}
	return p.LookupHost(ctx, host)
}

func (p *Prober) dial(ctx context.Context, address string) (net.Conn, error) {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if p.Dial != nil {
		return p.Dial(ctx, "tcp", address)
	}
	d := net.Dialer{Timeout: timeout}
	return d.DialContext(ctx, "tcp", address)
}

func (p *Prober) sleep(d time.Duration) {
	if p.Sleep == nil {
		time.Sleep(d)
		return
	}
	p.Sleep(d)
}

func (p *Prober) logDebug(msg string) { p.Log.Debug(msg) }
func (p *Prober) logInfo(msg string) { p.Log.Info(msg) }
func (p *Prober) logError(msg string) { p.Log.Error(msg) }

func (p *Prober) logf(level func(string), format string, args ...any) {
	if p.Log == nil {
		return
	}
	level(fmt.Sprintf(format, args...))
}
