package impls

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/okubot/active"
	"github.com/okubot/active/difficulty"
)

// Score is one recorded play on a map.
type Score struct {
	Map     *difficulty.Beatmap
	Mods    difficulty.Mods
	Acc     float64
	Combo   int
	Misses  int
	PP      float64
	Score   int
	EndedAt time.Time
	Lazer   bool
}

// ScoreEntry is a score enriched with its difficulty attributes. Attrs is
// nil when the map failed the suspicion check.
type ScoreEntry struct {
	Score
	Attrs *difficulty.Attributes
}

// SortOrder selects the criterion BuildScoreEntries sorts by. All orders
// sort best-first.
type SortOrder int

const (
	SortDate SortOrder = iota
	SortAcc
	SortCombo
	SortMisses
	SortPP
	SortStars
)

// BuildScoreEntries computes attributes for every score through the cache
// and sorts the result. Scores on the same map with the same mods share one
// calculation.
func BuildScoreEntries(cache *difficulty.Cache, scores []Score, order SortOrder) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, ScoreEntry{Score: s, Attrs: cache.Get(s.Map, s.Mods, s.Lazer)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]

		switch order {
		case SortAcc:
			return a.Acc > b.Acc
		case SortCombo:
			return a.Combo > b.Combo
		case SortMisses:
			return a.Misses < b.Misses
		case SortPP:
			return a.PP > b.PP
		case SortStars:
			return stars(a) > stars(b)
		default:
			return a.EndedAt.After(b.EndedAt)
		}
	})

	return entries
}

func stars(e *ScoreEntry) float64 {
	if e.Attrs == nil {
		return 0
	}

	return e.Attrs.Stars
}

// ScoresList is a paginated listing of score entries. Pages render from the
// precomputed entries, so navigation needs no deferred acknowledgment.
type ScoresList struct {
	owner   string
	title   string
	entries []ScoreEntry
	pages   active.Pages
}

// NewScoresList creates a listing owned by the given user.
func NewScoresList(owner, title string, entries []ScoreEntry, perPage int) *ScoresList {
	return &ScoresList{
		owner:   owner,
		title:   title,
		entries: entries,
		pages:   active.NewPages(perPage, len(entries)),
	}
}

// BuildPage renders the current page of entries.
func (l *ScoresList) BuildPage(context.Context) (active.Render, error) {
	var sb strings.Builder

	slice := l.entries[l.pages.Index():l.pages.EndIndex()]
	for i, e := range slice {
		fmt.Fprintf(&sb, "**%d.** %s | %.2f%% | %dx | %dmiss | %.0fpp",
			l.pages.Index()+i+1, e.Mods.String(), e.Acc, e.Combo, e.Misses, e.PP)

		if e.Attrs != nil {
			fmt.Fprintf(&sb, " | %.2f★", e.Attrs.Stars)
		}

		sb.WriteByte('\n')
	}

	if len(slice) == 0 {
		sb.WriteString("No scores found")
	}

	page := active.Page{
		Title:       l.title,
		Description: sb.String(),
		Footer:      fmt.Sprintf("Page %d/%d", l.pages.CurrPage(), l.pages.LastPage()),
	}

	return active.NewRender(page, false), nil
}

// BuildComponents returns the stock pagination row.
func (l *ScoresList) BuildComponents() []active.Row {
	return l.pages.Components()
}

// HandleComponent routes the pagination controls.
func (l *ScoresList) HandleComponent(ctx context.Context, ev *active.ComponentEvent) active.ComponentResult {
	return active.HandlePaginationComponent(ctx, ev, l.owner, false, &l.pages)
}

// HandleModal routes the page-jump form.
func (l *ScoresList) HandleModal(ctx context.Context, ev *active.ModalEvent) error {
	return active.HandlePaginationModal(ctx, ev, l.owner, false, &l.pages)
}
