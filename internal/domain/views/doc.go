// Package views manages which home views are active.
//
// A Session is one run of the "manage views" picker. It reads the stored
// active list, resolves a thumbnail per view, hands both to a Picker, and on
// confirmation writes the picker's selection back as an ordered list:
//
//	svc := views.NewService(views.ServiceConfig{Store: st, Logger: logger})
//	list := picker.NewList()
//	session, err := svc.Open(ctx, list)
//	if err != nil {
//	    return err
//	}
//	// ... user toggles items ...
//	written, err := session.Finish(ctx, views.OutcomeConfirmed)
//
// Nothing is written on dismissal, and the "first view active" repair made
// when no stored view is active stays in memory until the user confirms.
package views
