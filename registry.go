package active

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultIdleTimeout is how long a registered message survives without any
// routed event before the registry tears it down.
const DefaultIdleTimeout = 2 * time.Minute

// expireEditTimeout bounds the best-effort edit that strips controls from an
// expired message.
const expireEditTimeout = 15 * time.Second

// Registry maps rendered message ids to the ActiveMessage instances driving
// them and replays callback events into those instances.
//
// Events for different messages proceed fully in parallel. Events for the
// same message are serialized: at most one handler is in flight per instance
// at any time, so handler code never needs its own locking.
//
//	reg := active.NewRegistry(platform, active.WithLogger(logger))
//	id, err := reg.Begin(ctx, channelID, msg)
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	platform Platform
	logger   *slog.Logger
	idle     time.Duration
	metrics  *Metrics
}

type entry struct {
	// mu serializes handlers and the expiry teardown for this message.
	mu sync.Mutex

	msg       ActiveMessage
	channelID string
	messageID string
	timer     *time.Timer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithIdleTimeout overrides DefaultIdleTimeout. A non-positive duration
// disables expiry entirely.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) { r.idle = d }
}

// WithMetrics registers engine collectors with reg and instruments the
// registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) { r.metrics = NewMetrics(reg) }
}

// NewRegistry creates an empty registry on top of the given platform.
func NewRegistry(platform Platform, opts ...Option) *Registry {
	r := &Registry{
		entries:  make(map[string]*entry),
		platform: platform,
		logger:   slog.Default(),
		idle:     DefaultIdleTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Begin renders msg, sends it to the channel, and registers it under the new
// message id. The returned id is the key later events route by.
func (r *Registry) Begin(ctx context.Context, channelID string, msg ActiveMessage) (string, error) {
	rend, err := msg.BuildPage(ctx)
	if err != nil {
		return "", fmt.Errorf("build initial page: %w", err)
	}

	messageID, err := r.platform.Send(ctx, channelID, rend, msg.BuildComponents())
	if err != nil {
		return "", fmt.Errorf("send initial message: %w", err)
	}

	if err := r.Track(channelID, messageID, msg); err != nil {
		return "", err
	}

	return messageID, nil
}

// Track registers an already-sent message, for flows where the platform
// adapter created the message itself (e.g. as an interaction response).
func (r *Registry) Track(channelID, messageID string, msg ActiveMessage) error {
	e := &entry{msg: msg, channelID: channelID, messageID: messageID}

	r.mu.Lock()

	if _, exists := r.entries[messageID]; exists {
		r.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrDuplicateMessage, messageID)
	}

	r.entries[messageID] = e

	if r.idle > 0 {
		e.timer = time.AfterFunc(r.idle, func() { r.expire(messageID) })
	}

	r.mu.Unlock()

	r.metrics.observeActive(1)

	return nil
}

// Remove drops the message without touching its rendered content, for when
// the message was deleted out from under the registry. It reports whether
// the id was registered.
func (r *Registry) Remove(messageID string) bool {
	e := r.take(messageID)
	if e == nil {
		return false
	}

	r.metrics.observeActive(-1)

	return true
}

// Len returns the number of currently registered messages.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// RouteComponent delegates a component event to the instance bound to its
// originating message. Unknown message ids are logged and dropped: stale
// messages must degrade gracefully, not fail.
func (r *Registry) RouteComponent(ctx context.Context, ev *ComponentEvent) {
	e := r.lookup(ev.MessageID)
	if e == nil {
		r.logger.Warn("component event for unknown message",
			"message_id", ev.MessageID, "custom_id", ev.CustomID)
		r.metrics.observeRouted(kindComponent, outcomeDropped)

		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The entry may have expired while this event waited its turn; its
	// handler must die silently rather than render onto a dead message.
	if !r.registered(ev.MessageID) {
		r.metrics.observeRouted(kindComponent, outcomeDropped)

		return
	}

	r.touch(e)

	res := e.msg.HandleComponent(ctx, ev)

	switch res.kind {
	case resultIgnore:
		r.metrics.observeRouted(kindComponent, outcomeIgnored)
	case resultErr:
		r.logger.Warn("component handler failed",
			"message_id", ev.MessageID, "custom_id", ev.CustomID, "err", res.err)
		r.metrics.observeRouted(kindComponent, outcomeError)
	case resultCreateModal:
		if err := ev.openModal(ctx, res.modal); err != nil {
			r.logger.Warn("failed to open modal",
				"message_id", ev.MessageID, "custom_id", res.modal.CustomID, "err", err)
			r.metrics.observeRouted(kindComponent, outcomeError)

			return
		}

		r.metrics.observeRouted(kindComponent, outcomeHandled)
	case resultBuildPage:
		if err := r.render(ctx, e, ev); err != nil {
			r.logger.Error("failed to render page",
				"message_id", ev.MessageID, "custom_id", ev.CustomID, "err", err)
			r.metrics.observeRouted(kindComponent, outcomeError)
			r.reportComponentFailure(ctx, ev)

			return
		}

		r.metrics.observeRouted(kindComponent, outcomeHandled)
	}
}

// RouteModal delegates a modal submission to the instance bound to its
// originating message and re-renders the page afterwards. Handler errors are
// recoverable: they are logged and the prior page state stays visible.
func (r *Registry) RouteModal(ctx context.Context, ev *ModalEvent) {
	e := r.lookup(ev.MessageID)
	if e == nil {
		r.logger.Warn("modal event for unknown message",
			"message_id", ev.MessageID, "custom_id", ev.CustomID)
		r.metrics.observeRouted(kindModal, outcomeDropped)

		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !r.registered(ev.MessageID) {
		r.metrics.observeRouted(kindModal, outcomeDropped)

		return
	}

	r.touch(e)

	if err := e.msg.HandleModal(ctx, ev); err != nil {
		r.logger.Warn("modal handler failed",
			"message_id", ev.MessageID, "custom_id", ev.CustomID, "err", err)
		r.metrics.observeRouted(kindModal, outcomeError)

		return
	}

	if err := r.renderModal(ctx, e, ev); err != nil {
		r.logger.Error("failed to render page after modal",
			"message_id", ev.MessageID, "custom_id", ev.CustomID, "err", err)
		r.metrics.observeRouted(kindModal, outcomeError)

		return
	}

	r.metrics.observeRouted(kindModal, outcomeHandled)
}

// render rebuilds the page and delivers it. An unacknowledged callback with
// an immediate render doubles as the acknowledgment; otherwise the render
// goes out as an edit, deferring first if the handler has not done so.
func (r *Registry) render(ctx context.Context, e *entry, ev *ComponentEvent) error {
	rend, err := e.msg.BuildPage(ctx)
	if err != nil {
		return fmt.Errorf("build page: %w", err)
	}

	rows := e.msg.BuildComponents()

	if !ev.Acked() && !rend.Deferred {
		if err := ev.update(ctx, rend, rows); err != nil {
			return fmt.Errorf("update message: %w", err)
		}

		return nil
	}

	if !ev.Acked() {
		if err := ev.Defer(ctx); err != nil {
			r.logger.Warn("failed to defer component", "message_id", e.messageID, "err", err)
		}
	}

	if err := r.platform.Edit(ctx, e.channelID, e.messageID, rend, rows); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}

	return nil
}

func (r *Registry) renderModal(ctx context.Context, e *entry, ev *ModalEvent) error {
	rend, err := e.msg.BuildPage(ctx)
	if err != nil {
		return fmt.Errorf("build page: %w", err)
	}

	rows := e.msg.BuildComponents()

	if !ev.Acked() && !rend.Deferred {
		if err := ev.update(ctx, rend, rows); err != nil {
			return fmt.Errorf("update message: %w", err)
		}

		return nil
	}

	if !ev.Acked() {
		if err := ev.Defer(ctx); err != nil {
			r.logger.Warn("failed to defer modal", "message_id", e.messageID, "err", err)
		}
	}

	if err := r.platform.Edit(ctx, e.channelID, e.messageID, rend, rows); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}

	return nil
}

// reportComponentFailure makes a best effort at not leaving the callback
// hanging after a render failure: the user sees a generic issue page rather
// than a platform timeout.
func (r *Registry) reportComponentFailure(ctx context.Context, ev *ComponentEvent) {
	if ev.Acked() {
		return
	}

	rend := NewRender(Page{Description: "Something went wrong, try again later"}, false)

	if err := ev.update(ctx, rend, nil); err != nil {
		r.logger.Warn("failed to report render failure", "message_id", ev.MessageID, "err", err)
	}
}

// expire tears down an idle message: the entry is dropped and the rendered
// message keeps its final page but loses its controls.
func (r *Registry) expire(messageID string) {
	e := r.take(messageID)
	if e == nil {
		return
	}

	r.metrics.observeActive(-1)
	r.metrics.observeExpired()

	// Wait out any in-flight handler so the strip-edit does not race it.
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), expireEditTimeout)
	defer cancel()

	rend, err := e.msg.BuildPage(ctx)
	if err != nil {
		r.logger.Debug("failed to build page for expiry", "message_id", messageID, "err", err)

		return
	}

	if err := r.platform.Edit(ctx, e.channelID, e.messageID, rend, nil); err != nil {
		r.logger.Debug("failed to strip components on expiry", "message_id", messageID, "err", err)
	}
}

func (r *Registry) lookup(messageID string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.entries[messageID]
}

func (r *Registry) registered(messageID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[messageID]

	return ok
}

// take removes and returns the entry, stopping its expiry timer.
func (r *Registry) take(messageID string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entries[messageID]
	if e == nil {
		return nil
	}

	delete(r.entries, messageID)

	if e.timer != nil {
		e.timer.Stop()
	}

	return e
}

func (r *Registry) touch(e *entry) {
	if e.timer != nil {
		e.timer.Reset(r.idle)
	}
}
