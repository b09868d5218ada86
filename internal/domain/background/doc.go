// Package background resolves the thumbnail shown for each home view.
//
// Resolution tries, in order and stopping at the first image that decodes:
//
//  1. the per-view override stored in configuration
//  2. the X-File<n> entry of the current theme descriptor
//  3. the X-File<n> entry of the default theme descriptor
//  4. a 125x75 opaque black placeholder
//
// Configuration read errors, missing descriptors and decode failures are
// collected as diagnostics on the Result and logged; none of them stops
// resolution.
package background
