package notifications

import "fmt"

type errorMessage struct {
	err error
}

// MessageFromError is the plain text notification sent when processing an event failed
func MessageFromError(err error) Message {
	return &errorMessage{
		err: err,
	}
}

func (em *errorMessage) AsSlackMessage() (*slackMessage, error) {
	return &slackMessage{
		Text: em.text(),
	}, nil
}

func (em *errorMessage) AsDiscordMessage() (*discordMessage, error) {
	return &discordMessage{
		Text: em.text(),
	}, nil
}

func (em *errorMessage) text() string {
	return fmt.Sprintf("Error: %s", em.err)
}
