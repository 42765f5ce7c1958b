package active

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modalEvent(fields ...ModalField) *ModalEvent {
	return NewModalEvent("msg-1", "chan-1", "user", "form", fields, NewFakeAck())
}

func TestModalBuilder(t *testing.T) {
	modal := NewModal("sim_speed", "Specify a custom speed").
		Input(NewTextInput("sim_clock_rate", "Clock rate").WithPlaceholder("Number")).
		Input(NewTextInput("sim_bpm", "BPM").WithMaxLength(6))

	assert.Equal(t, "sim_speed", modal.CustomID)
	require.Len(t, modal.Inputs, 2)
	assert.Equal(t, "Number", modal.Inputs[0].Placeholder)
	assert.Equal(t, 6, modal.Inputs[1].MaxLength)
	assert.False(t, modal.Inputs[0].Required)
}

func TestFieldTrimsAndReportsEmpty(t *testing.T) {
	ev := modalEvent(
		ModalField{CustomID: "a", Value: "  150 "},
		ModalField{CustomID: "b", Value: "   "},
	)

	value, ok := ev.Field("a")
	assert.True(t, ok)
	assert.Equal(t, "150", value)

	_, ok = ev.Field("b")
	assert.False(t, ok)

	_, ok = ev.Field("missing")
	assert.False(t, ok)
}

func TestFirstField(t *testing.T) {
	value, ok, err := modalEvent(ModalField{CustomID: "a", Value: " x "}).FirstField()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", value)

	_, ok, err = modalEvent(ModalField{CustomID: "a", Value: ""}).FirstField()
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = modalEvent().FirstField()
	assert.True(t, IsMissingInput(err))
}

func TestParseIntField(t *testing.T) {
	ev := modalEvent(
		ModalField{CustomID: "good", Value: "150"},
		ModalField{CustomID: "bad", Value: "abc"},
		ModalField{CustomID: "empty", Value: ""},
	)

	n, outcome := ParseIntField(ev, "good")
	assert.Equal(t, ParseValue, outcome)
	assert.Equal(t, 150, n)

	_, outcome = ParseIntField(ev, "bad")
	assert.Equal(t, ParseInvalid, outcome)

	_, outcome = ParseIntField(ev, "empty")
	assert.Equal(t, ParseAbsent, outcome)

	_, outcome = ParseIntField(ev, "missing")
	assert.Equal(t, ParseAbsent, outcome)
}

func TestParseFloatField(t *testing.T) {
	ev := modalEvent(
		ModalField{CustomID: "good", Value: " 1.4 "},
		ModalField{CustomID: "bad", Value: "fast"},
	)

	f, outcome := ParseFloatField(ev, "good")
	assert.Equal(t, ParseValue, outcome)
	assert.Equal(t, 1.4, f)

	_, outcome = ParseFloatField(ev, "bad")
	assert.Equal(t, ParseInvalid, outcome)
}

func TestLenientFloat(t *testing.T) {
	ev := modalEvent(
		ModalField{CustomID: "good", Value: "9.5"},
		ModalField{CustomID: "bad", Value: "high"},
	)

	v := LenientFloat(ev, "good")
	require.NotNil(t, v)
	assert.Equal(t, 9.5, *v)

	assert.Nil(t, LenientFloat(ev, "bad"))
	assert.Nil(t, LenientFloat(ev, "missing"))
}

func TestComponentEventDeferIdempotent(t *testing.T) {
	ack := NewFakeAck()
	ev := NewComponentEvent("msg-1", "chan-1", "user", "btn", ack)

	require.NoError(t, ev.Defer(context.Background()))
	require.NoError(t, ev.Defer(context.Background()))

	assert.Equal(t, 1, ack.Deferred)
	assert.True(t, ev.Acked())
}
