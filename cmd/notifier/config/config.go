package config

import (
	"encoding/json"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	yaml2 "gopkg.in/yaml.v2"
	"gopkg.in/yaml.v3"
)

// Environ returns the settings from the environment,
// completed from CONFIG_FILE if one is set.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	if err != nil {
		return &cfg, err
	}

	if cfg.ConfigFile != "" {
		err = cfg.loadFile(cfg.ConfigFile)
	}
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Host == "" {
		c.Host = ":8080"
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9001"
	}
	if c.Notifications.Provider == "" {
		c.Notifications.Provider = "slack"
	}
	if c.Notifications.TimeoutSeconds == 0 {
		c.Notifications.TimeoutSeconds = 10
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	out, _ := yaml2.Marshal(c)
	return string(out)
}

type Config struct {
	Logging       Logging
	Host          string `envconfig:"HOST"`
	MetricsAddr   string `envconfig:"METRICS_ADDR"`
	ConfigFile    string `envconfig:"CONFIG_FILE"`
	Notifications Notifications

	// Repos is the repo allow-list, matched against the reponame part of
	// bitbucket_owner_reponame
	Repos []string `envconfig:"REPOS"`
	// Statuses is the status allow-list, the defaults apply when empty
	Statuses []string `envconfig:"GC_SLACK_STATUS"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug bool `envconfig:"DEBUG"`
	Trace bool `envconfig:"TRACE"`
}

type Notifications struct {
	Provider       string `envconfig:"NOTIFICATIONS_PROVIDER"`
	WebhookURL     string `envconfig:"SLACK_WEBHOOK_URL"`
	TimeoutSeconds int    `envconfig:"NOTIFICATIONS_TIMEOUT_SECONDS"`
}

// file is the config.json layout of earlier deployments
type file struct {
	WebhookURL string   `json:"SLACK_WEBHOOK_URL" yaml:"SLACK_WEBHOOK_URL"`
	Statuses   []string `json:"GC_SLACK_STATUS" yaml:"GC_SLACK_STATUS"`
	Repos      []string `json:"REPOS" yaml:"REPOS"`
}

// loadFile fills the values the environment left empty
func (c *Config) loadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "cannot read config file")
	}

	var f file
	err = json.Unmarshal(content, &f)
	if err != nil {
		err = yaml.Unmarshal(content, &f)
		if err != nil {
			return errors.Wrapf(err, "cannot parse config file %s", path)
		}
	}

	if c.Notifications.WebhookURL == "" {
		c.Notifications.WebhookURL = f.WebhookURL
	}
	if len(c.Statuses) == 0 {
		c.Statuses = f.Statuses
	}
	if len(c.Repos) == 0 {
		c.Repos = f.Repos
	}
	return nil
}

// Validate reports settings the notifier cannot start without
func (c *Config) Validate() error {
	if c.Notifications.WebhookURL == "" {
		return errors.New("please provide the SLACK_WEBHOOK_URL variable")
	}
	if c.Notifications.Provider != "slack" && c.Notifications.Provider != "discord" {
		return errors.Errorf("unknown notifications provider: %s", c.Notifications.Provider)
	}
	return nil
}
