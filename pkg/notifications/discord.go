package notifications

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// DiscordProvider executes a Discord webhook,
// ie: https://discord.com/api/webhooks/<id>/<token>
type DiscordProvider struct {
	WebhookURL string
	Client     *http.Client
}

type discordMessage struct {
	Text  string
	Embed *discordgo.MessageEmbed
}

func NewDiscordProvider(webhookURL string, client *http.Client) *DiscordProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &DiscordProvider{
		WebhookURL: webhookURL,
		Client:     client,
	}
}

func (d *DiscordProvider) Send(ctx context.Context, msg Message) error {
	webhookID, token, err := parseDiscordWebhook(d.WebhookURL)
	if err != nil {
		return &DispatchError{Provider: "discord", Err: err}
	}

	discordMessage, err := msg.AsDiscordMessage()
	if err != nil {
		return &DispatchError{Provider: "discord", Err: errors.Wrap(err, "cannot create discord message")}
	}

	session, err := discordgo.New("")
	if err != nil {
		return &DispatchError{Provider: "discord", Err: errors.Wrap(err, "error creating Discord session")}
	}
	session.Client = d.Client

	_, err = session.WebhookExecute(webhookID, token, false, asWebhookParams(discordMessage), discordgo.WithContext(ctx))
	if err != nil {
		return &DispatchError{Provider: "discord", Err: err}
	}
	return nil
}

func asWebhookParams(msg *discordMessage) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Content: msg.Text,
	}
	if msg.Embed != nil {
		params.Embeds = []*discordgo.MessageEmbed{msg.Embed}
	}
	return params
}

func parseDiscordWebhook(webhookURL string) (string, string, error) {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return "", "", errors.Wrap(err, "invalid discord webhook url")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}

	return "", "", errors.Errorf("discord webhook url must look like https://discord.com/api/webhooks/<id>/<token>")
}
