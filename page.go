package active

// Page is the renderable body of an active message: an embed-shaped value
// the platform adapter translates into whatever the chat platform sends.
//
// Pages are plain data. Variants build them in BuildPage and never hold on
// to them; the registry treats two builds without an intervening mutation
// as interchangeable.
type Page struct {
	Title       string
	Description string
	URL         string
	Image       string
	Thumbnail   string
	Footer      string
	FooterIcon  string
	Fields      []Field
}

// Field is a single name/value pair on a page.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Render is the result of ActiveMessage.BuildPage: the page plus the
// acknowledgment bookkeeping the registry needs to deliver it.
//
// Deferred reports that the originating callback was (or will be)
// acknowledged separately, so the render must go out as a message edit
// rather than as the callback response. Variants that track a per-message
// defer flag consume it here:
//
//	deferred := s.deferNext
//	s.deferNext = false
//	return active.NewRender(page, deferred).WithContent("Simulated score:"), nil
type Render struct {
	Page     Page
	Content  string
	Deferred bool
}

// NewRender creates a render of the given page.
func NewRender(page Page, deferred bool) Render {
	return Render{Page: page, Deferred: deferred}
}

// WithContent sets the plain-text content shown alongside the page.
func (r Render) WithContent(content string) Render {
	r.Content = content
	return r
}

// ButtonStyle selects the visual style of a button.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Button is a clickable control with a stable custom id.
type Button struct {
	CustomID string
	Label    string
	Emoji    string
	Style    ButtonStyle
	Disabled bool
}

// SelectOption is one entry of a select menu.
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Default     bool
}

// SelectMenu is a single-choice dropdown control.
type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
	Disabled    bool
}

// Row is one horizontal row of controls. A row holds either buttons or a
// single select menu, mirroring the platform's layout constraint.
type Row struct {
	Buttons []Button
	Menu    *SelectMenu
}

// ButtonRow builds a row of buttons.
func ButtonRow(buttons ...Button) Row {
	return Row{Buttons: buttons}
}

// MenuRow builds a row holding a single select menu.
func MenuRow(menu SelectMenu) Row {
	return Row{Menu: &menu}
}
