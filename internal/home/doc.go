// Package home holds the home process glue that sits around the view picker.
//
// Menu is the edit menu shown when the user long-presses the desktop: it runs
// the applet, shortcut, bookmark, background and contact dialogs and asks the
// desktop to open the view picker. The desktop itself is reached through
// Notifier, implemented over D-Bus in package dbus.
//
// Stamp manages the crash stamp file the session manager uses to detect an
// unclean exit.
package home
