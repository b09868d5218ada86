// Package theme reads theme background descriptors.
//
// A descriptor is a key/value text file with a "Desktop Entry" group whose
// X-File<n> keys name the background image of view n:
//
//	[Desktop Entry]
//	Type=Background Image
//	Name=Default
//	X-File1=/usr/share/backgrounds/default-1.png
//	X-File2=/usr/share/backgrounds/default-2.png
//
// A missing or unreadable file is an empty descriptor, never a hard failure.
package theme
