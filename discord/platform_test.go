package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okubot/active"
	"github.com/okubot/active/lib/customid"
)

func testPlatform() *Platform {
	return NewPlatform(nil, customid.New("test-secret"))
}

func TestEmbedConversion(t *testing.T) {
	page := active.Page{
		Title:       "Recent scores",
		Description: "top entries",
		URL:         "https://example.com",
		Image:       "https://example.com/img.png",
		Footer:      "Page 1/3",
		Fields: []active.Field{
			{Name: "Mods", Value: "HDDT", Inline: true},
		},
	}

	e := embed(page)
	assert.Equal(t, "Recent scores", e.Title)
	assert.Equal(t, "top entries", e.Description)
	require.NotNil(t, e.Image)
	assert.Equal(t, "https://example.com/img.png", e.Image.URL)
	assert.Nil(t, e.Thumbnail)
	require.NotNil(t, e.Footer)
	assert.Equal(t, "Page 1/3", e.Footer.Text)
	require.Len(t, e.Fields, 1)
	assert.True(t, e.Fields[0].Inline)
}

func TestComponentsSignCustomIDs(t *testing.T) {
	p := testPlatform()

	rows := []active.Row{active.ButtonRow(
		active.Button{CustomID: "pagination_step", Emoji: "▶️", Style: active.ButtonSecondary},
	)}

	converted, err := p.components(rows)
	require.NoError(t, err)
	require.Len(t, converted, 1)

	row, ok := converted[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)

	button, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.NotEqual(t, "pagination_step", button.CustomID)

	action, err := p.codec.Decode(button.CustomID)
	require.NoError(t, err)
	assert.Equal(t, "pagination_step", action)
}

func TestComponentsEmptyRowsStrip(t *testing.T) {
	p := testPlatform()

	converted, err := p.components(nil)
	require.NoError(t, err)
	require.NotNil(t, converted)
	assert.Empty(t, converted)
}

func TestComponentsMenuRow(t *testing.T) {
	p := testPlatform()

	rows := []active.Row{active.MenuRow(active.SelectMenu{
		CustomID: "sim_version",
		Options: []active.SelectOption{
			{Label: "Lazer", Value: "sim_lazer", Default: true},
			{Label: "Stable", Value: "sim_stable"},
		},
	})}

	converted, err := p.components(rows)
	require.NoError(t, err)

	row, ok := converted[0].(discordgo.ActionsRow)
	require.True(t, ok)

	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	require.Len(t, menu.Options, 2)
	assert.True(t, menu.Options[0].Default)

	action, err := p.codec.Decode(menu.CustomID)
	require.NoError(t, err)
	assert.Equal(t, "sim_version", action)
}

func TestModalFields(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "ignored",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "sim_clock_rate", Value: "1.4"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "sim_bpm", Value: ""},
			}},
		},
	}

	fields := modalFields(data)
	require.Len(t, fields, 2)
	assert.Equal(t, active.ModalField{CustomID: "sim_clock_rate", Value: "1.4"}, fields[0])
	assert.Equal(t, active.ModalField{CustomID: "sim_bpm", Value: ""}, fields[1])
}

func TestUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "123"}},
	}}
	assert.Equal(t, "123", userID(guild))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "456"},
	}}
	assert.Equal(t, "456", userID(dm))

	assert.Empty(t, userID(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}
