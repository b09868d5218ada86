// Package config loads process configuration from the environment.
//
// Every field has a default, so an empty environment yields a working setup
// that reads the system theme descriptors and keeps the views configuration in
// $XDG_CONFIG_HOME/hildon-desktop/views.toml.
package config
