package active

import (
	"context"
	"strings"
)

// Acknowledger sends protocol acknowledgments for a single callback event.
// The platform adapter provides one per inbound interaction; the fake in
// testing.go records calls instead.
type Acknowledger interface {
	// Defer sends a lightweight "received" signal so the platform does not
	// time the callback out while the real response is prepared.
	Defer(ctx context.Context) error

	// Update acknowledges the callback by replacing the originating message.
	Update(ctx context.Context, rend Render, rows []Row) error

	// OpenModal acknowledges the callback by opening an input form.
	OpenModal(ctx context.Context, m *Modal) error
}

// ComponentEvent is a callback generated by a user activating a button or
// select menu on a rendered message.
type ComponentEvent struct {
	MessageID string
	ChannelID string
	UserID    string
	CustomID  string

	// Values holds the selected values when the component is a select menu.
	Values []string

	ack   Acknowledger
	acked bool
}

// NewComponentEvent creates a component event. The acknowledger is attached
// by the platform adapter (or a test fake).
func NewComponentEvent(messageID, channelID, userID, customID string, ack Acknowledger) *ComponentEvent {
	return &ComponentEvent{
		MessageID: messageID,
		ChannelID: channelID,
		UserID:    userID,
		CustomID:  customID,
		ack:       ack,
	}
}

// WithValues sets the select-menu values and returns the event.
func (e *ComponentEvent) WithValues(values ...string) *ComponentEvent {
	e.Values = values
	return e
}

// Defer acknowledges the callback without content. Handlers call this before
// slow work so the platform does not time out; calling it twice is a no-op
// rather than a protocol violation.
func (e *ComponentEvent) Defer(ctx context.Context) error {
	if e.acked {
		return nil
	}

	if err := e.ack.Defer(ctx); err != nil {
		return err
	}

	e.acked = true

	return nil
}

// Acked reports whether the callback has already been acknowledged.
func (e *ComponentEvent) Acked() bool { return e.acked }

func (e *ComponentEvent) update(ctx context.Context, rend Render, rows []Row) error {
	if err := e.ack.Update(ctx, rend, rows); err != nil {
		return err
	}

	e.acked = true

	return nil
}

func (e *ComponentEvent) openModal(ctx context.Context, m *Modal) error {
	if err := e.ack.OpenModal(ctx, m); err != nil {
		return err
	}

	e.acked = true

	return nil
}

// ModalField is one submitted text input of a modal.
type ModalField struct {
	CustomID string
	Value    string
}

// ModalEvent is a callback generated by a user submitting a modal form.
type ModalEvent struct {
	MessageID string
	ChannelID string
	UserID    string
	CustomID  string
	Fields    []ModalField

	ack   Acknowledger
	acked bool
}

// NewModalEvent creates a modal event.
func NewModalEvent(messageID, channelID, userID, customID string, fields []ModalField, ack Acknowledger) *ModalEvent {
	return &ModalEvent{
		MessageID: messageID,
		ChannelID: channelID,
		UserID:    userID,
		CustomID:  customID,
		Fields:    fields,
		ack:       ack,
	}
}

// Field returns the trimmed value of the named input. ok is false when the
// field is missing or empty, which handlers treat as "clear this value".
func (e *ModalEvent) Field(customID string) (value string, ok bool) {
	for _, f := range e.Fields {
		if f.CustomID != customID {
			continue
		}

		value = strings.TrimSpace(f.Value)

		return value, value != ""
	}

	return "", false
}

// FirstField returns the trimmed value of the modal's first input, for the
// common single-input form. ErrMissingInput is returned when the modal
// carried no inputs at all; an empty value is (value "", ok false, nil).
func (e *ModalEvent) FirstField() (value string, ok bool, err error) {
	if len(e.Fields) == 0 {
		return "", false, ErrMissingInput
	}

	value = strings.TrimSpace(e.Fields[0].Value)

	return value, value != "", nil
}

// Defer acknowledges the modal submission without content. Calling it twice
// is a no-op.
func (e *ModalEvent) Defer(ctx context.Context) error {
	if e.acked {
		return nil
	}

	if err := e.ack.Defer(ctx); err != nil {
		return err
	}

	e.acked = true

	return nil
}

// Acked reports whether the submission has already been acknowledged.
func (e *ModalEvent) Acked() bool { return e.acked }

func (e *ModalEvent) update(ctx context.Context, rend Render, rows []Row) error {
	if err := e.ack.Update(ctx, rend, rows); err != nil {
		return err
	}

	e.acked = true

	return nil
}
