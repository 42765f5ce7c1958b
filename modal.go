package active

import (
	"strconv"
	"strings"
)

// Modal is a short-lived form of labeled text inputs presented in response
// to a component event.
//
//	modal := active.NewModal("sim_acc", "Specify accuracy").
//	    Input(active.NewTextInput("sim_acc", "Accuracy").WithPlaceholder("Number"))
type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// NewModal creates a modal with the given custom id and title.
func NewModal(customID, title string) *Modal {
	return &Modal{CustomID: customID, Title: title}
}

// Input appends a text input to the modal.
func (m *Modal) Input(input TextInput) *Modal {
	m.Inputs = append(m.Inputs, input)
	return m
}

// TextInput is a single labeled text field of a modal. Inputs default to
// optional; an absent or empty submission means "clear this value".
type TextInput struct {
	CustomID    string
	Label       string
	Placeholder string
	Value       string
	Required    bool
	MaxLength   int
}

// NewTextInput creates an optional text input.
func NewTextInput(customID, label string) TextInput {
	return TextInput{CustomID: customID, Label: label}
}

// WithPlaceholder sets the placeholder text.
func (t TextInput) WithPlaceholder(placeholder string) TextInput {
	t.Placeholder = placeholder
	return t
}

// WithRequired marks the input as required.
func (t TextInput) WithRequired() TextInput {
	t.Required = true
	return t
}

// WithMaxLength limits the input length.
func (t TextInput) WithMaxLength(n int) TextInput {
	t.MaxLength = n
	return t
}

// ParseOutcome classifies a submitted modal field. Handlers switch on it so
// that a parse failure never corrupts existing state:
//
//	switch v, outcome := active.ParseIntField(ev, "sim_combo"); outcome {
//	case active.ParseAbsent:
//	    s.Data.Combo = nil
//	case active.ParseValue:
//	    s.Data.Combo = &v
//	case active.ParseInvalid:
//	    // keep the prior value
//	}
type ParseOutcome int

const (
	// ParseAbsent means the field was missing or empty: clear the stored value.
	ParseAbsent ParseOutcome = iota
	// ParseValue means the field parsed: apply it.
	ParseValue
	// ParseInvalid means the field was present but unparseable: log at debug
	// level and leave the prior value untouched.
	ParseInvalid
)

// ParseIntField parses the named field of a modal submission as an integer.
func ParseIntField(ev *ModalEvent, customID string) (int, ParseOutcome) {
	value, ok := ev.Field(customID)
	if !ok {
		return 0, ParseAbsent
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, ParseInvalid
	}

	return n, ParseValue
}

// ParseFloatField parses the named field of a modal submission as a float.
func ParseFloatField(ev *ModalEvent, customID string) (float64, ParseOutcome) {
	value, ok := ev.Field(customID)
	if !ok {
		return 0, ParseAbsent
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, ParseInvalid
	}

	return f, ParseValue
}

// LenientFloat parses the named field, collapsing both "absent" and
// "unparseable" into nil. Used by multi-field modals whose fields are all
// optional overrides, where a bad value simply unsets the override.
func LenientFloat(ev *ModalEvent, customID string) *float64 {
	f, outcome := ParseFloatField(ev, customID)
	if outcome != ParseValue {
		return nil
	}

	return &f
}
