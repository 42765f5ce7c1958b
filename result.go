package active

// ComponentResult is returned from HandleComponent to tell the registry what
// to do with the callback.
//
//	return active.Ignore()            // not for you; drop silently
//	return active.ResultErr(err)      // recoverable failure; logged upstream
//	return active.BuildPage()         // re-render and replace the message
//	return active.CreateModal(modal)  // open an input form instead
type ComponentResult struct {
	kind  resultKind
	err   error
	modal *Modal
}

type resultKind int

const (
	resultIgnore resultKind = iota
	resultErr
	resultBuildPage
	resultCreateModal
)

// Ignore signals that the event is not for this handler: wrong user, or an
// unrecognized id in a benign way. The registry takes no further action.
func Ignore() ComponentResult {
	return ComponentResult{kind: resultIgnore}
}

// ResultErr signals a failure that is recoverable at the call site, such as
// a platform error while acknowledging. The registry logs it; it is not
// propagated as a program fault.
func ResultErr(err error) ComponentResult {
	return ComponentResult{kind: resultErr, err: err}
}

// BuildPage instructs the registry to re-render the message via the
// variant's BuildPage/BuildComponents and replace its content.
func BuildPage() ComponentResult {
	return ComponentResult{kind: resultBuildPage}
}

// CreateModal instructs the registry to open the given input form as the
// callback response instead of editing the message.
func CreateModal(m *Modal) ComponentResult {
	return ComponentResult{kind: resultCreateModal, modal: m}
}

// IsIgnore reports whether the result is Ignore.
func (r ComponentResult) IsIgnore() bool { return r.kind == resultIgnore }

// IsBuildPage reports whether the result requests a re-render.
func (r ComponentResult) IsBuildPage() bool { return r.kind == resultBuildPage }

// Err returns the error carried by a ResultErr, or nil.
func (r ComponentResult) Err() error { return r.err }

// Modal returns the modal carried by a CreateModal, or nil.
func (r ComponentResult) Modal() *Modal { return r.modal }
