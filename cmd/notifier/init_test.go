package main

import (
	"testing"
	"time"

	"github.com/gimlet-io/cloudbuild-notifier/cmd/notifier/config"
	"github.com/gimlet-io/cloudbuild-notifier/pkg/notifications"
	"github.com/stretchr/testify/assert"
)

func Test_initNotifications(t *testing.T) {
	c := &config.Config{
		Notifications: config.Notifications{
			Provider:       "slack",
			WebhookURL:     "https://hooks.slack.com/services/T0/B0/xyz",
			TimeoutSeconds: 3,
		},
	}

	slack, ok := initNotifications(c).(*notifications.SlackProvider)
	assert.True(t, ok)
	assert.Equal(t, c.Notifications.WebhookURL, slack.WebhookURL)
	assert.Equal(t, 3*time.Second, slack.Client.Timeout)

	c.Notifications.Provider = "discord"
	_, ok = initNotifications(c).(*notifications.DiscordProvider)
	assert.True(t, ok)
}
