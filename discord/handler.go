package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/okubot/active"
	"github.com/okubot/active/lib/customid"
)

// handlerTimeout bounds the handling of one gateway interaction.
const handlerTimeout = 30 * time.Second

// Handler translates gateway interactions into engine events and routes
// them through the registry. Register it with session.AddHandler.
type Handler struct {
	registry *active.Registry
	platform *Platform
	codec    *customid.Codec
	logger   *slog.Logger
}

// NewHandler creates a Handler over the registry and platform.
func NewHandler(registry *active.Registry, platform *Platform, codec *customid.Codec, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{registry: registry, platform: platform, codec: codec, logger: logger}
}

// HandleInteraction is the discordgo event handler for InteractionCreate.
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		h.handleComponent(ctx, s, i)
	case discordgo.InteractionModalSubmit:
		h.handleModal(ctx, s, i)
	}
}

func (h *Handler) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()

	action, err := h.codec.Decode(data.CustomID)
	if err != nil {
		h.logger.Warn("dropping component with bad custom id", "custom_id", data.CustomID, "err", err)

		return
	}

	if i.Message == nil {
		h.logger.Warn("component interaction without message", "custom_id", action)

		return
	}

	ack := &interactionAck{session: s, interaction: i.Interaction, platform: h.platform, codec: h.codec}

	ev := active.NewComponentEvent(i.Message.ID, i.ChannelID, userID(i), action, ack).
		WithValues(data.Values...)

	h.registry.RouteComponent(ctx, ev)
}

func (h *Handler) handleModal(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()

	action, err := h.codec.Decode(data.CustomID)
	if err != nil {
		h.logger.Warn("dropping modal with bad custom id", "custom_id", data.CustomID, "err", err)

		return
	}

	if i.Message == nil {
		h.logger.Warn("modal interaction without message", "custom_id", action)

		return
	}

	ack := &interactionAck{session: s, interaction: i.Interaction, platform: h.platform, codec: h.codec}

	ev := active.NewModalEvent(i.Message.ID, i.ChannelID, userID(i), action, modalFields(data), ack)

	h.registry.RouteModal(ctx, ev)
}

// modalFields flattens the submitted rows into engine fields. Rows arrive as
// action rows each wrapping a single text input.
func modalFields(data discordgo.ModalSubmitInteractionData) []active.ModalField {
	var fields []active.ModalField

	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}

		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if !ok {
				continue
			}

			fields = append(fields, active.ModalField{CustomID: input.CustomID, Value: input.Value})
		}
	}

	return fields
}

// userID extracts the invoking user's id, which lives in different places
// for guild and direct-message interactions.
func userID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}

	if i.User != nil {
		return i.User.ID
	}

	return ""
}
