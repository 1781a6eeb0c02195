package main

import (
	"fmt"
	"net/http"
	"path"
	"runtime"
	"time"

	"github.com/gimlet-io/cloudbuild-notifier/cmd/notifier/config"
	"github.com/gimlet-io/cloudbuild-notifier/pkg/notifications"
	"github.com/sirupsen/logrus"
)

func initNotifications(config *config.Config) notifications.Provider {
	client := &http.Client{
		Timeout: time.Duration(config.Notifications.TimeoutSeconds) * time.Second,
	}

	if config.Notifications.Provider == "discord" {
		return notifications.NewDiscordProvider(config.Notifications.WebhookURL, client)
	}
	return notifications.NewSlackProvider(config.Notifications.WebhookURL, client)
}

// helper function configures the logging.
func initLogger(c *config.Config) {
	logrus.SetReportCaller(true)

	customFormatter := &logrus.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return "", fmt.Sprintf("[%s:%d]", filename, f.Line)
		},
	}
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)

	if c.Logging.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if c.Logging.Trace {
		logrus.SetLevel(logrus.TraceLevel)
	}
}
