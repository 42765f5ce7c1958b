package active

import "context"

// Platform is the capability surface the registry needs from the chat
// platform, beyond the per-event acknowledgments carried by the events
// themselves. Package discord implements it on a discordgo session; the
// fake in testing.go implements it for tests.
type Platform interface {
	// Send creates a new message in the channel and returns its id.
	Send(ctx context.Context, channelID string, rend Render, rows []Row) (messageID string, err error)

	// Edit replaces the content of a message that was already acknowledged.
	// Editing a message that no longer exists is reported as an error; the
	// registry treats it as best-effort.
	Edit(ctx context.Context, channelID, messageID string, rend Render, rows []Row) error
}
