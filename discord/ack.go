package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/okubot/active"
	"github.com/okubot/active/lib/customid"
)

// interactionAck acknowledges one interaction through the usual response
// types: deferred update, in-place update, or modal.
type interactionAck struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	platform    *Platform
	codec       *customid.Codec
}

func (a *interactionAck) Defer(ctx context.Context) error {
	err := a.session.InteractionRespond(a.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("defer interaction: %w", err)
	}

	return nil
}

func (a *interactionAck) Update(ctx context.Context, rend active.Render, rows []active.Row) error {
	components, err := a.platform.components(rows)
	if err != nil {
		return err
	}

	err = a.session.InteractionRespond(a.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    rend.Content,
			Embeds:     []*discordgo.MessageEmbed{embed(rend.Page)},
			Components: components,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("update interaction: %w", err)
	}

	return nil
}

func (a *interactionAck) OpenModal(ctx context.Context, m *active.Modal) error {
	encoded, err := a.codec.Encode(m.CustomID)
	if err != nil {
		return fmt.Errorf("encode modal custom id %q: %w", m.CustomID, err)
	}

	// Text input ids stay plain: they never route anything, the modal's own
	// custom id does.
	rows := make([]discordgo.MessageComponent, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    in.CustomID,
				Label:       in.Label,
				Style:       discordgo.TextInputShort,
				Placeholder: in.Placeholder,
				Value:       in.Value,
				Required:    in.Required,
				MaxLength:   in.MaxLength,
			},
		}})
	}

	err = a.session.InteractionRespond(a.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   encoded,
			Title:      m.Title,
			Components: rows,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open modal: %w", err)
	}

	return nil
}
