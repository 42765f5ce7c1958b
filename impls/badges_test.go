package impls

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okubot/active"
)

func testBadges() []Badge {
	return []Badge{
		{ID: 1, Name: "Contributor", Description: "Helped out", AwardedAt: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Tournament winner", Description: "Won a cup", AwardedAt: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestBadgesOwnersFetchedOnce(t *testing.T) {
	fetches := 0
	fetch := func(_ context.Context, badgeID int) ([]BadgeOwner, error) {
		fetches++

		return []BadgeOwner{{Username: "peppy"}}, nil
	}

	browser := NewBadgesBrowser("owner", testBadges(), fetch)

	_, err := browser.BuildPage(context.Background())
	require.NoError(t, err)
	_, err = browser.BuildPage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetches)

	browser.pages.NextPage()
	_, err = browser.BuildPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)

	// Coming back to a visited page reuses the memoized owners.
	browser.pages.PrevPage()
	_, err = browser.BuildPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestBadgesFetchErrorFailsBuild(t *testing.T) {
	fetch := func(context.Context, int) ([]BadgeOwner, error) {
		return nil, errors.New("api down")
	}

	browser := NewBadgesBrowser("owner", testBadges(), fetch)

	_, err := browser.BuildPage(context.Background())
	assert.Error(t, err)
}

func TestBadgesNavigationDefers(t *testing.T) {
	fetch := func(context.Context, int) ([]BadgeOwner, error) {
		return nil, nil
	}

	browser := NewBadgesBrowser("owner", testBadges(), fetch)

	ack := active.NewFakeAck()
	ev := active.NewComponentEvent("msg-1", "chan-1", "owner", "pagination_step", ack)
	res := browser.HandleComponent(context.Background(), ev)

	assert.True(t, res.IsBuildPage())
	assert.Equal(t, 1, ack.Deferred)
	assert.Equal(t, 2, browser.pages.CurrPage())
}

func TestBadgesPageContent(t *testing.T) {
	fetch := func(_ context.Context, badgeID int) ([]BadgeOwner, error) {
		if badgeID == 1 {
			return []BadgeOwner{{Username: "peppy"}, {Username: "rafis"}}, nil
		}

		return nil, nil
	}

	browser := NewBadgesBrowser("owner", testBadges(), fetch)

	rend, err := browser.BuildPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Contributor", rend.Page.Title)
	require.Len(t, rend.Page.Fields, 1)
	assert.Equal(t, "Owners (2)", rend.Page.Fields[0].Name)
	assert.Equal(t, "peppy, rafis", rend.Page.Fields[0].Value)
	assert.Contains(t, rend.Page.Footer, "Badge 1/2")

	browser.pages.NextPage()
	rend, err = browser.BuildPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nobody", rend.Page.Fields[0].Value)
}
