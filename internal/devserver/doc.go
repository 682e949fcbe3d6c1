// Package devserver checks that the frontend development server is accepting
// connections before the desktop window is shown.
//
// The URL comes from MARGINALIA_DEV_SERVER_URL, then MARGINALIA_DEV_URL, then
// DefaultURL. Only the host and port matter: the scheme picks the default port
// (443 for https, 80 otherwise) and any path is ignored. For "localhost" the
// IPv4 and IPv6 loopback literals are tried as well.
//
// Wait makes up to DefaultAttempts attempts with a fixed DefaultDelay between
// them. There is no backoff and no cancellation; the worst case is about two
// seconds plus dial timeouts, spent before any window is visible.
package devserver
