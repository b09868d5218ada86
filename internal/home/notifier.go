package home

import "context"

// Notifier sends fire-and-forget requests to the desktop compositor.
type Notifier interface {
	// GrabPointer asks the desktop to take the pointer back after a dialog closes
	GrabPointer(ctx context.Context) error
	// ShowActivateViewsDialog asks the desktop to open the view picker
	ShowActivateViewsDialog(ctx context.Context) error
}
