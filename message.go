package active

import "context"

// ActiveMessage is the contract every interactive message variant satisfies.
// The Registry owns conforming instances for their lifetime and calls into
// them from at most one goroutine at a time.
//
// A variant is an ordinary struct holding its feature state plus the owning
// user id captured at construction:
//
//	type ScoresList struct {
//	    Entries []ListEntry
//	    Pages   active.Pages
//	    Owner   string
//	}
type ActiveMessage interface {
	// BuildPage renders the current internal state into a page body. It must
	// be idempotent: two calls without an intervening mutation yield the same
	// page. A returned error is a render failure; the registry logs it and
	// reports a generic issue to the user instead of leaving the callback
	// hanging.
	BuildPage(ctx context.Context) (Render, error)

	// BuildComponents produces the controls appropriate to the current
	// state. It may rely on the same state as BuildPage but must not assume
	// BuildPage was just called.
	BuildComponents() []Row

	// HandleComponent routes a button or select-menu callback. Events from
	// non-owners and unrecognized custom ids return Ignore.
	HandleComponent(ctx context.Context, ev *ComponentEvent) ComponentResult

	// HandleModal routes a submitted form. Non-owner submissions are a
	// silent no-op. A field that is absent clears the corresponding stored
	// value; one that is present but unparseable leaves the prior value
	// untouched. The handler acknowledges the callback itself (typically
	// ModalEvent.Defer); the registry rebuilds the page afterwards.
	HandleModal(ctx context.Context, ev *ModalEvent) error
}
