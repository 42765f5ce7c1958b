package active

import (
	"context"
	"fmt"
	"sync"
)

// FakeMessage is one message as recorded by FakePlatform.
type FakeMessage struct {
	ChannelID string
	MessageID string
	Render    Render
	Rows      []Row
}

// FakePlatform is an in-memory Platform for tests. It records every Send and
// Edit and hands out sequential message ids.
//
//	fake := active.NewFakePlatform()
//	reg := active.NewRegistry(fake)
type FakePlatform struct {
	mu    sync.Mutex
	next  int
	Sent  []FakeMessage
	Edits []FakeMessage

	// SendErr and EditErr, when set, are returned by the respective calls.
	SendErr error
	EditErr error
}

// NewFakePlatform creates an empty fake.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{}
}

// Send records the message and returns a generated id of the form "msg-N".
func (f *FakePlatform) Send(_ context.Context, channelID string, rend Render, rows []Row) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return "", f.SendErr
	}

	f.next++
	id := fmt.Sprintf("msg-%d", f.next)
	f.Sent = append(f.Sent, FakeMessage{ChannelID: channelID, MessageID: id, Render: rend, Rows: rows})

	return id, nil
}

// Edit records the edit.
func (f *FakePlatform) Edit(_ context.Context, channelID, messageID string, rend Render, rows []Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EditErr != nil {
		return f.EditErr
	}

	f.Edits = append(f.Edits, FakeMessage{ChannelID: channelID, MessageID: messageID, Render: rend, Rows: rows})

	return nil
}

// LastEdit returns the most recent edit, or false when none happened.
func (f *FakePlatform) LastEdit() (FakeMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Edits) == 0 {
		return FakeMessage{}, false
	}

	return f.Edits[len(f.Edits)-1], true
}

// FakeAck is an in-memory Acknowledger for tests. It records how each event
// was acknowledged.
type FakeAck struct {
	mu       sync.Mutex
	Deferred int
	Updates  []FakeMessage
	Modals   []*Modal

	// DeferErr, UpdateErr and ModalErr, when set, are returned by the
	// respective calls.
	DeferErr  error
	UpdateErr error
	ModalErr  error
}

// NewFakeAck creates an empty fake.
func NewFakeAck() *FakeAck {
	return &FakeAck{}
}

// Defer records a deferred acknowledgment.
func (f *FakeAck) Defer(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeferErr != nil {
		return f.DeferErr
	}

	f.Deferred++

	return nil
}

// Update records an acknowledge-by-replace.
func (f *FakeAck) Update(_ context.Context, rend Render, rows []Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	f.Updates = append(f.Updates, FakeMessage{Render: rend, Rows: rows})

	return nil
}

// OpenModal records a modal response.
func (f *FakeAck) OpenModal(_ context.Context, m *Modal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ModalErr != nil {
		return f.ModalErr
	}

	f.Modals = append(f.Modals, m)

	return nil
}

// LastUpdate returns the most recent Update, or false when none happened.
func (f *FakeAck) LastUpdate() (FakeMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Updates) == 0 {
		return FakeMessage{}, false
	}

	return f.Updates[len(f.Updates)-1], true
}
