package notifications

import "context"

// Message is something that can be rendered for each chat provider
type Message interface {
	AsSlackMessage() (*slackMessage, error)
	AsDiscordMessage() (*discordMessage, error)
}

// Provider delivers a message to a chat webhook.
// Implementations do not retry.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// DispatchError is returned when a provider could not deliver a message
type DispatchError struct {
	Provider string
	Err      error
}

func (e *DispatchError) Error() string {
	return "cannot send " + e.Provider + " notification: " + e.Err.Error()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
