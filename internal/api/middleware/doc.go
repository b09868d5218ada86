// Package middleware provides the gin middleware of the status API.
package middleware
