// Package main is the home-views command line tool.
//
// It runs the same picker sessions as the desktop: show resolves every view
// without writing, set commits a selection non-interactively and pick opens
// a terminal picker where Enter commits and Esc leaves the configuration
// untouched.
package main
