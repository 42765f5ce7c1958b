package active

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// Custom ids of the stock pagination controls.
const (
	pagerFirstID  = "pagination_first"
	pagerBackID   = "pagination_back"
	pagerCustomID = "pagination_custom"
	pagerStepID   = "pagination_step"
	pagerLastID   = "pagination_last"

	pagerModalID = "pagination_page"
	pagerInputID = "page_input"
)

// Pages is pure index arithmetic over a fixed-size entry collection. The
// index is zero-based, always a multiple of the page size except implicitly
// on the final partial page, and stays within [0, amount) whenever the
// collection is non-empty. Mutations never wrap or error; they saturate at
// the boundaries.
type Pages struct {
	index   int
	perPage int
	amount  int
}

// NewPages creates a pager over amount entries shown perPage at a time,
// positioned on the first page. perPage must be at least 1.
func NewPages(perPage, amount int) Pages {
	if perPage < 1 {
		perPage = 1
	}

	if amount < 0 {
		amount = 0
	}

	return Pages{perPage: perPage, amount: amount}
}

// Index returns the zero-based offset of the current page's first entry.
func (p *Pages) Index() int { return p.index }

// PerPage returns the fixed page size.
func (p *Pages) PerPage() int { return p.perPage }

// Amount returns the total entry count.
func (p *Pages) Amount() int { return p.amount }

// CurrPage returns the 1-based current page number.
func (p *Pages) CurrPage() int { return p.index/p.perPage + 1 }

// LastPage returns the 1-based number of the final page, at least 1.
func (p *Pages) LastPage() int {
	last := (p.amount + p.perPage - 1) / p.perPage
	if last < 1 {
		last = 1
	}

	return last
}

// NextPage advances one page, saturating on the last page.
func (p *Pages) NextPage() { p.JumpTo(p.CurrPage() + 1) }

// PrevPage goes back one page, saturating on the first page.
func (p *Pages) PrevPage() { p.JumpTo(p.CurrPage() - 1) }

// JumpTo moves to the 1-based page number, clamped to [1, LastPage].
func (p *Pages) JumpTo(page int) {
	if page < 1 {
		page = 1
	}

	if last := p.LastPage(); page > last {
		page = last
	}

	p.index = (page - 1) * p.perPage
}

// EndIndex returns the exclusive end offset of the current page, for slicing
// the entry collection: entries[pages.Index():pages.EndIndex()].
func (p *Pages) EndIndex() int {
	end := p.index + p.perPage
	if end > p.amount {
		end = p.amount
	}

	return end
}

// Components builds the stock pagination control row: first, back, jump,
// step, last. Backward controls are disabled on the first page and forward
// controls on the last, so a click at the boundary is impossible rather
// than a saturating no-op.
func (p *Pages) Components() []Row {
	curr, last := p.CurrPage(), p.LastPage()

	return []Row{ButtonRow(
		Button{CustomID: pagerFirstID, Emoji: "⏮️", Style: ButtonSecondary, Disabled: curr == 1},
		Button{CustomID: pagerBackID, Emoji: "◀️", Style: ButtonSecondary, Disabled: curr == 1},
		Button{CustomID: pagerCustomID, Emoji: "*️⃣", Style: ButtonSecondary, Disabled: last == 1},
		Button{CustomID: pagerStepID, Emoji: "▶️", Style: ButtonSecondary, Disabled: curr == last},
		Button{CustomID: pagerLastID, Emoji: "⏭️", Style: ButtonSecondary, Disabled: curr == last},
	)}
}

// JumpModal builds the page-jump form opened by the jump button.
func JumpModal() *Modal {
	input := NewTextInput(pagerInputID, "Page number").WithPlaceholder("Number")

	return NewModal(pagerModalID, "Jump to a page").Input(input)
}

// HandlePaginationComponent is the shared HandleComponent implementation for
// paginated variants. It enforces ownership, routes the stock pagination
// custom ids, and — when deferRender is set because the variant's page
// builds are slow — acknowledges the callback before the registry starts
// building.
func HandlePaginationComponent(ctx context.Context, ev *ComponentEvent, owner string, deferRender bool, pages *Pages) ComponentResult {
	if ev.UserID != owner {
		return Ignore()
	}

	if ev.CustomID == pagerCustomID {
		return CreateModal(JumpModal())
	}

	if deferRender {
		if err := ev.Defer(ctx); err != nil {
			return ResultErr(fmt.Errorf("defer pagination component: %w", err))
		}
	}

	switch ev.CustomID {
	case pagerFirstID:
		pages.JumpTo(1)
	case pagerBackID:
		pages.PrevPage()
	case pagerStepID:
		pages.NextPage()
	case pagerLastID:
		pages.JumpTo(pages.LastPage())
	default:
		slog.Warn("unknown pagination component", "custom_id", ev.CustomID)

		return Ignore()
	}

	return BuildPage()
}

// HandlePaginationModal is the shared HandleModal implementation for
// paginated variants. An absent page number is a no-op; an unparseable one
// is logged at debug level and leaves the pager untouched.
func HandlePaginationModal(ctx context.Context, ev *ModalEvent, owner string, deferRender bool, pages *Pages) error {
	if ev.UserID != owner {
		return nil
	}

	if ev.CustomID != pagerModalID {
		slog.Warn("unknown pagination modal", "custom_id", ev.CustomID)

		return nil
	}

	if deferRender {
		if err := ev.Defer(ctx); err != nil {
			slog.Warn("failed to defer pagination modal", "err", err)
		}
	}

	if value, ok := ev.Field(pagerInputID); ok {
		page, err := strconv.Atoi(value)
		if err != nil {
			slog.Debug("failed to parse page number", "input", value)
		} else {
			pages.JumpTo(page)
		}
	}

	if err := ev.Defer(ctx); err != nil {
		slog.Warn("failed to defer pagination modal", "err", err)
	}

	return nil
}
