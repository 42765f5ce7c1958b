package active

import "errors"

// Sentinel errors for engine operations.
var (
	ErrMissingInput     = errors.New("active: missing modal input")
	ErrDuplicateMessage = errors.New("active: message already registered")
)

// IsMissingInput checks if err means a modal arrived without any inputs.
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsDuplicateMessage checks if err is a message-id collision on Track.
func IsDuplicateMessage(err error) bool {
	return errors.Is(err, ErrDuplicateMessage)
}
