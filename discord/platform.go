// Package discord adapts the engine to Discord through a discordgo session:
// it implements the Platform on channel messages, acknowledges callbacks as
// interaction responses, and translates gateway interactions into engine
// events. Component custom ids cross the wire signed, so stale or tampered
// ids are rejected before they reach a handler.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/okubot/active"
	"github.com/okubot/active/lib/customid"
)

// Platform sends and edits channel messages through a discordgo session.
type Platform struct {
	session *discordgo.Session
	codec   *customid.Codec
}

// NewPlatform creates a Platform signing custom ids with the given codec.
func NewPlatform(session *discordgo.Session, codec *customid.Codec) *Platform {
	return &Platform{session: session, codec: codec}
}

// Send creates the message and returns its id.
func (p *Platform) Send(ctx context.Context, channelID string, rend active.Render, rows []active.Row) (string, error) {
	components, err := p.components(rows)
	if err != nil {
		return "", err
	}

	msg, err := p.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    rend.Content,
		Embeds:     []*discordgo.MessageEmbed{embed(rend.Page)},
		Components: components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	return msg.ID, nil
}

// Edit replaces the message content. A nil rows strips all components.
func (p *Platform) Edit(ctx context.Context, channelID, messageID string, rend active.Render, rows []active.Row) error {
	components, err := p.components(rows)
	if err != nil {
		return err
	}

	embeds := []*discordgo.MessageEmbed{embed(rend.Page)}

	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.Content = &rend.Content
	edit.Embeds = &embeds
	edit.Components = &components

	if _, err := p.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}

	return nil
}

func embed(page active.Page) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       page.Title,
		Description: page.Description,
		URL:         page.URL,
	}

	if page.Image != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: page.Image}
	}

	if page.Thumbnail != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: page.Thumbnail}
	}

	if page.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: page.Footer, IconURL: page.FooterIcon}
	}

	for _, f := range page.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	return e
}

// components converts the rows, signing every custom id. The empty non-nil
// slice returned for no rows makes an edit strip existing components rather
// than leave them untouched.
func (p *Platform) components(rows []active.Row) ([]discordgo.MessageComponent, error) {
	out := make([]discordgo.MessageComponent, 0, len(rows))

	for _, row := range rows {
		if row.Menu != nil {
			menu, err := p.selectMenu(*row.Menu)
			if err != nil {
				return nil, err
			}

			out = append(out, discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}})

			continue
		}

		buttons := make([]discordgo.MessageComponent, 0, len(row.Buttons))
		for _, b := range row.Buttons {
			button, err := p.button(b)
			if err != nil {
				return nil, err
			}

			buttons = append(buttons, button)
		}

		out = append(out, discordgo.ActionsRow{Components: buttons})
	}

	return out, nil
}

func (p *Platform) button(b active.Button) (discordgo.Button, error) {
	encoded, err := p.codec.Encode(b.CustomID)
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("encode custom id %q: %w", b.CustomID, err)
	}

	button := discordgo.Button{
		CustomID: encoded,
		Label:    b.Label,
		Style:    buttonStyle(b.Style),
		Disabled: b.Disabled,
	}

	if b.Emoji != "" {
		button.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
	}

	return button, nil
}

func (p *Platform) selectMenu(m active.SelectMenu) (discordgo.SelectMenu, error) {
	encoded, err := p.codec.Encode(m.CustomID)
	if err != nil {
		return discordgo.SelectMenu{}, fmt.Errorf("encode custom id %q: %w", m.CustomID, err)
	}

	menu := discordgo.SelectMenu{
		CustomID:    encoded,
		Placeholder: m.Placeholder,
		Disabled:    m.Disabled,
	}

	for _, opt := range m.Options {
		menu.Options = append(menu.Options, discordgo.SelectMenuOption{
			Label:       opt.Label,
			Value:       opt.Value,
			Description: opt.Description,
			Default:     opt.Default,
		})
	}

	return menu, nil
}

func buttonStyle(style active.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case active.ButtonSecondary:
		return discordgo.SecondaryButton
	case active.ButtonSuccess:
		return discordgo.SuccessButton
	case active.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}
