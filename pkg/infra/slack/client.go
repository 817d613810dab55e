package slack

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// timeRounding trims sub-millisecond noise from the reported duration
const timeRounding = time.Millisecond

type client struct {
	webhookURL string
}

// New creates a notifier that posts run summaries to a Slack incoming webhook
func New(webhookURL string) interfaces.Notifier {
	return &client{webhookURL: webhookURL}
}

func (c *client) Notify(ctx context.Context, run *model.HarvestRun) error {
	if err := slack.PostWebhookContext(ctx, c.webhookURL, buildMessage(run)); err != nil {
		return goerr.Wrap(err, "failed to post slack message", goerr.V("run_id", run.ID))
	}
	return nil
}

func buildMessage(run *model.HarvestRun) *slack.WebhookMessage {
	color := "good"
	text := fmt.Sprintf("Harvest run %s finished", run.ID)
	if run.Status == model.RunStatusFailed {
		color = "danger"
		text = fmt.Sprintf("Harvest run %s failed", run.ID)
	}

	fields := []slack.AttachmentField{
		{Title: "Attempted", Value: strconv.Itoa(run.Attempted), Short: true},
		{Title: "Succeeded", Value: strconv.Itoa(run.Succeeded), Short: true},
		{Title: "Failed", Value: strconv.Itoa(run.Failed), Short: true},
		{Title: "Stale", Value: strconv.Itoa(run.Stale), Short: true},
		{Title: "Duration", Value: run.Duration().Round(timeRounding).String(), Short: true},
	}
	if run.Destination != "" {
		fields = append(fields, slack.AttachmentField{
			Title: "Destination", Value: run.Destination,
		})
	}
	if run.Error != "" {
		fields = append(fields, slack.AttachmentField{
			Title: "Error", Value: run.Error,
		})
	}

	return &slack.WebhookMessage{
		Text: text,
		Attachments: []slack.Attachment{
			{
				Color:  color,
				Fields: fields,
			},
		},
	}
}
