package impls

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okubot/active"
)

// Badge is one badge definition.
type Badge struct {
	ID          int
	Name        string
	Description string
	ImageURL    string
	AwardedAt   time.Time
}

// BadgeOwner is one user holding a badge.
type BadgeOwner struct {
	Username  string
	AwardedAt time.Time
}

// OwnersFunc fetches the owners of a badge. It is expected to hit the
// network, so badge navigation always defers before rendering.
type OwnersFunc func(ctx context.Context, badgeID int) ([]BadgeOwner, error)

// BadgesBrowser pages through badges one per page, fetching each badge's
// owner list lazily on first visit and memoizing it by page index.
type BadgesBrowser struct {
	owner      string
	badges     []Badge
	fetchOwner OwnersFunc

	owners map[int][]BadgeOwner
	pages  active.Pages
}

// NewBadgesBrowser creates a browser owned by the given user.
func NewBadgesBrowser(owner string, badges []Badge, fetch OwnersFunc) *BadgesBrowser {
	return &BadgesBrowser{
		owner:      owner,
		badges:     badges,
		fetchOwner: fetch,
		owners:     make(map[int][]BadgeOwner),
		pages:      active.NewPages(1, len(badges)),
	}
}

// BuildPage renders the current badge, fetching its owners if this is the
// first visit. A fetch failure fails the build; the prior page stays
// visible.
func (b *BadgesBrowser) BuildPage(ctx context.Context) (active.Render, error) {
	if len(b.badges) == 0 {
		return active.NewRender(active.Page{Description: "No badges found"}, false), nil
	}

	idx := b.pages.Index()
	badge := b.badges[idx]

	owners, ok := b.owners[idx]
	if !ok {
		fetched, err := b.fetchOwner(ctx, badge.ID)
		if err != nil {
			return active.Render{}, fmt.Errorf("fetch badge owners: %w", err)
		}

		b.owners[idx] = fetched
		owners = fetched
	}

	var sb strings.Builder
	for i, owner := range owners {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(owner.Username)
	}

	if len(owners) == 0 {
		sb.WriteString("Nobody")
	}

	page := active.Page{
		Title:       badge.Name,
		Description: badge.Description,
		Image:       badge.ImageURL,
		Fields: []active.Field{
			{Name: fmt.Sprintf("Owners (%d)", len(owners)), Value: sb.String()},
		},
		Footer: fmt.Sprintf("Badge %d/%d | First awarded %s",
			b.pages.CurrPage(), b.pages.LastPage(), badge.AwardedAt.Format("2006-01-02")),
	}

	return active.NewRender(page, true), nil
}

// BuildComponents returns the stock pagination row.
func (b *BadgesBrowser) BuildComponents() []active.Row {
	return b.pages.Components()
}

// HandleComponent routes the pagination controls, deferring first since the
// rebuild may fetch owners.
func (b *BadgesBrowser) HandleComponent(ctx context.Context, ev *active.ComponentEvent) active.ComponentResult {
	return active.HandlePaginationComponent(ctx, ev, b.owner, true, &b.pages)
}

// HandleModal routes the page-jump form.
func (b *BadgesBrowser) HandleModal(ctx context.Context, ev *active.ModalEvent) error {
	return active.HandlePaginationModal(ctx, ev, b.owner, true, &b.pages)
}
