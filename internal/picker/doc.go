// Package picker provides the multi-select view picker.
//
// List is the plain in-memory picker the views session fills and reads
// back. Model renders a List in the terminal with Bubble Tea, one card per
// view showing the thumbnail's average colour, and reports whether the user
// confirmed or dismissed it.
package picker
