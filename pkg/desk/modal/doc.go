// Package modal provides a declarative modal dialog with hit regions for
// mouse support and keyboard focus handling.
//
// A modal is a title plus a stack of sections. Render measures each section
// after drawing it, so the hit regions registered for buttons always line up
// with what is on screen.
//
//	m := modal.New("Confirm Deletion", modal.WithVariant(modal.VariantDanger)).
//	    AddSection(modal.Text("Delete Jane Doe?")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Delete ", "delete", modal.BtnDanger()),
//	        modal.Btn(" Cancel ", "cancel"),
//	    ))
//
//	// In View():
//	box := m.Render(screenW, screenH, mouseHandler)
//	return modal.Overlay(background, box, screenW, screenH)
//
//	// In Update():
//	switch action, _ := m.HandleKey(keyMsg); action {
//	case "delete":
//	    ...
//	case "cancel", modal.ActionEscape:
//	    ...
//	}
//
// Built-in sections: Text, Spacer, Buttons, Custom, When.
//
// Clicks outside the box are reported as ActionBackdrop when the modal was
// built WithCloseOnBackdropClick(true).
package modal
