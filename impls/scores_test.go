package impls

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okubot/active"
	"github.com/okubot/active/difficulty"
)

func testScores(n int) []Score {
	m := testMap()

	scores := make([]Score, 0, n)
	for i := 0; i < n; i++ {
		scores = append(scores, Score{
			Map:     m,
			Acc:     90 + float64(i)/2,
			Combo:   100 + i*10,
			Misses:  n - i,
			PP:      float64(100 + i*5),
			Score:   1_000_000 - i*1000,
			EndedAt: time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}

	return scores
}

func TestBuildScoreEntriesSharesCalculation(t *testing.T) {
	cache := difficulty.NewCache()

	entries := BuildScoreEntries(cache, testScores(12), SortPP)
	require.Len(t, entries, 12)

	// Same map, same mods: one memoized calculation serves all twelve.
	assert.Equal(t, 1, cache.Len())

	for _, e := range entries {
		assert.NotNil(t, e.Attrs)
	}
}

func TestBuildScoreEntriesOrders(t *testing.T) {
	cache := difficulty.NewCache()
	scores := testScores(5)

	byPP := BuildScoreEntries(cache, scores, SortPP)
	assert.Equal(t, 120.0, byPP[0].PP)

	byAcc := BuildScoreEntries(cache, scores, SortAcc)
	assert.Equal(t, 92.0, byAcc[0].Acc)

	byMisses := BuildScoreEntries(cache, scores, SortMisses)
	assert.Equal(t, 1, byMisses[0].Misses)

	byDate := BuildScoreEntries(cache, scores, SortDate)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), byDate[0].EndedAt)
}

func TestScoresListPagination(t *testing.T) {
	cache := difficulty.NewCache()
	entries := BuildScoreEntries(cache, testScores(12), SortDate)
	list := NewScoresList("owner", "Recent scores", entries, 5)

	fake := active.NewFakePlatform()
	reg := active.NewRegistry(fake, active.WithIdleTimeout(0))

	id, err := reg.Begin(context.Background(), "chan-1", list)
	require.NoError(t, err)
	require.Len(t, fake.Sent, 1)
	assert.Contains(t, fake.Sent[0].Render.Page.Footer, "Page 1/3")

	step := func(customID string) *active.FakeAck {
		ack := active.NewFakeAck()
		reg.RouteComponent(context.Background(), active.NewComponentEvent(id, "chan-1", "owner", customID, ack))

		return ack
	}

	// Fast pages respond with an update, not an edit.
	ack := step("pagination_step")
	update, ok := ack.LastUpdate()
	require.True(t, ok)
	assert.Contains(t, update.Render.Page.Footer, "Page 2/3")
	assert.Zero(t, ack.Deferred)
	assert.Empty(t, fake.Edits)

	ack = step("pagination_step")
	update, ok = ack.LastUpdate()
	require.True(t, ok)
	assert.Contains(t, update.Render.Page.Footer, "Page 3/3")

	// Forward navigation saturates on the last page.
	ack = step("pagination_step")
	update, ok = ack.LastUpdate()
	require.True(t, ok)
	assert.Contains(t, update.Render.Page.Footer, "Page 3/3")

	ack = step("pagination_first")
	update, ok = ack.LastUpdate()
	require.True(t, ok)
	assert.Contains(t, update.Render.Page.Footer, "Page 1/3")
}

func TestScoresListNonOwnerIgnored(t *testing.T) {
	cache := difficulty.NewCache()
	entries := BuildScoreEntries(cache, testScores(12), SortDate)
	list := NewScoresList("owner", "Recent scores", entries, 5)

	fake := active.NewFakePlatform()
	reg := active.NewRegistry(fake, active.WithIdleTimeout(0))

	id, err := reg.Begin(context.Background(), "chan-1", list)
	require.NoError(t, err)

	ack := active.NewFakeAck()
	reg.RouteComponent(context.Background(), active.NewComponentEvent(id, "chan-1", "intruder", "pagination_step", ack))

	assert.Empty(t, ack.Updates)
	assert.Empty(t, fake.Edits)
	assert.Equal(t, 1, list.pages.CurrPage())
}

func TestScoresListJumpModal(t *testing.T) {
	cache := difficulty.NewCache()
	entries := BuildScoreEntries(cache, testScores(12), SortDate)
	list := NewScoresList("owner", "Recent scores", entries, 5)

	fake := active.NewFakePlatform()
	reg := active.NewRegistry(fake, active.WithIdleTimeout(0))

	id, err := reg.Begin(context.Background(), "chan-1", list)
	require.NoError(t, err)

	// The jump button answers with a modal, before any acknowledgment.
	ack := active.NewFakeAck()
	reg.RouteComponent(context.Background(), active.NewComponentEvent(id, "chan-1", "owner", "pagination_custom", ack))
	require.Len(t, ack.Modals, 1)
	assert.Equal(t, "pagination_page", ack.Modals[0].CustomID)

	// Submitting the form jumps and re-renders through an edit, since the
	// modal handler acknowledges by deferring.
	modalAck := active.NewFakeAck()
	reg.RouteModal(context.Background(), active.NewModalEvent(id, "chan-1", "owner", "pagination_page",
		[]active.ModalField{{CustomID: "page_input", Value: "3"}}, modalAck))

	assert.Equal(t, 1, modalAck.Deferred)
	edit, ok := fake.LastEdit()
	require.True(t, ok)
	assert.Contains(t, edit.Render.Page.Footer, "Page 3/3")
	assert.Equal(t, 3, list.pages.CurrPage())
}

func TestScoresListRenderedRows(t *testing.T) {
	cache := difficulty.NewCache()
	entries := BuildScoreEntries(cache, testScores(7), SortDate)
	list := NewScoresList("owner", "Recent scores", entries, 5)

	rend, err := list.BuildPage(context.Background())
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		assert.Contains(t, rend.Page.Description, fmt.Sprintf("**%d.**", i))
	}

	assert.NotContains(t, rend.Page.Description, "**6.**")
}
