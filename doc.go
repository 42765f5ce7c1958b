// Package active turns stateless, time-boxed Discord interaction callbacks
// (button clicks, select-menu choices, modal submissions) into per-message
// state machines that re-render a message in place.
//
// # Core Concepts
//
// An ActiveMessage is a chat message whose content is driven by server-held
// state. Each concrete variant implements the same four-method contract:
//
//   - BuildPage: current state -> renderable page body
//   - BuildComponents: current state -> interactive controls
//   - HandleComponent: route a button/menu callback
//   - HandleModal: route a submitted form
//
// Variants hold whatever feature state they need (filters, cached computed
// values, the owning user id); the engine never inspects it.
//
// # Dispatch
//
// The Registry owns every live ActiveMessage for its lifetime, keyed by the
// id of the rendered message. Inbound callbacks are routed to the owning
// instance; handlers return a ComponentResult that tells the registry what
// to do next:
//
//	func (p *ScoresList) HandleComponent(ctx context.Context, ev *active.ComponentEvent) active.ComponentResult {
//	    return active.HandlePaginationComponent(ctx, ev, p.Owner, false, &p.Pages)
//	}
//
// Callbacks for different messages run fully in parallel; callbacks for the
// same message are serialized, so handler code mutates its own state without
// locking. Unknown message or component ids are logged and dropped, never
// fatal: a stale rendered message must degrade gracefully.
//
// # Acknowledgment Timing
//
// The platform times out a callback that is not acknowledged within a small
// constant window. Handlers that do slow work before the next render (a
// network fetch, a heavy recomputation) must acknowledge first via
// ComponentEvent.Defer; the registry then delivers the render as an edit.
// Cheap mutations skip the defer and the render itself doubles as the
// acknowledgment. The Render.Deferred flag carries this decision from the
// variant to the registry, avoiding both double-acknowledging (a protocol
// violation) and never acknowledging (a user-visible timeout).
//
// # Ownership
//
// Every variant captures the invoking user's id at construction. Events from
// anyone else yield Ignore and leave state untouched; this is policy, not an
// error, so innocent clickers are not penalized and non-owners learn nothing
// about the controls.
//
// # Transport
//
// The engine talks to Discord through the small Platform capability set;
// package discord implements it on top of a discordgo session and signs
// component custom ids (lib/customid) so that ids from messages rendered by
// older builds are detected and dropped instead of misrouted.
package active
