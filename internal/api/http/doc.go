// Package http provides the optional status API of the home daemon.
//
// Routes:
//
//	GET  /health         liveness and D-Bus ownership
//	GET  /views          resolved backgrounds and the active set, read-only
//	PUT  /views/active   commit a new active set
//	GET  /metrics        Prometheus metrics
//
// Every /views request runs a full picker session, so those routes sit
// behind a global rate limit.
package http
