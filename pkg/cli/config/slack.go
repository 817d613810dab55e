package config

import (
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	slackinfra "github.com/m-mizutani/gleaner/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for run notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("GLEANER_SLACK_WEBHOOK_URL"),
		},
	}
}

// Configure builds a notifier from the configuration, nil when no webhook
// URL is set
func (c *Slack) Configure() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slackinfra.New(c.WebhookURL)
}
