package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SlackProvider posts to a Slack incoming webhook
type SlackProvider struct {
	WebhookURL string
	Client     *http.Client
}

type slackMessage struct {
	Text        string       `json:"text"`
	Mrkdwn      bool         `json:"mrkdwn,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	Color      string  `json:"color"`
	Title      string  `json:"title"`
	TitleLink  string  `json:"title_link"`
	Fields     []Field `json:"fields"`
	Footer     string  `json:"footer"`
	FooterIcon string  `json:"footer_icon"`
	Ts         int64   `json:"ts,omitempty"`
}

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short,omitempty"`
}

func NewSlackProvider(webhookURL string, client *http.Client) *SlackProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &SlackProvider{
		WebhookURL: webhookURL,
		Client:     client,
	}
}

func (s *SlackProvider) Send(ctx context.Context, msg Message) error {
	slackMessage, err := msg.AsSlackMessage()
	if err != nil {
		return &DispatchError{Provider: "slack", Err: errors.Wrap(err, "cannot create slack message")}
	}

	err = s.post(ctx, slackMessage)
	if err != nil {
		return &DispatchError{Provider: "slack", Err: err}
	}
	return nil
}

func (s *SlackProvider) post(ctx context.Context, msg *slackMessage) error {
	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(msg)
	if err != nil {
		return errors.Wrap(err, "cannot encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, b)
	if err != nil {
		return errors.Wrap(err, "cannot create request")
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := s.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not post to slack")
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	logrus.Debugf("Slack response: %s", string(body))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errors.Errorf("could not post to slack, status: %d, response: %s", res.StatusCode, string(body))
	}

	return nil
}
