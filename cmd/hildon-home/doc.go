// Package main is the entry point for the hildon-home daemon.
//
// The daemon owns com.nokia.HildonHome on the session bus, keeps the crash
// stamp file while running and optionally serves the status API.
//
// Configuration (environment):
//   - HOME_STORE_BACKEND, HOME_STORE_PATH: views store (file, sqlite, memory)
//   - HOME_THEME_CURRENT, HOME_THEME_DEFAULT: theme background descriptors
//   - HOME_STAMP_FILE: crash stamp location
//   - HOME_DBUS_ENABLED: claim the bus name
//   - HOME_STATUS_ADDR: status API listen address, empty to disable
//   - LOG_LEVEL, LOG_DEV: logging
//
// Usage:
//
//	HOME_STATUS_ADDR=127.0.0.1:9464 LOG_DEV=true ./hildon-home
package main
