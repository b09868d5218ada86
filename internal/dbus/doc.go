// Package dbus exposes the home process on the session bus.
//
// Service owns the com.nokia.HildonHome name and exports the edit menu at
// /com/nokia/HildonHome. It is constructed and started explicitly; there is
// no package-level connection. Desktop is the outbound proxy to the desktop
// compositor and implements home.Notifier.
package dbus
