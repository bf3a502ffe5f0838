package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// WebhookNotifier delivers owner alerts by POSTing JSON to an incoming
// webhook (the service owner points this at Slack, Discord, or their own
// relay). The webhook must already be configured on the receiving side.
type WebhookNotifier struct {
	WebhookURL string
	Client     *http.Client
}

var _ Notifier = (*WebhookNotifier)(nil)

type webhookBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// "text" mirror so Slack-style webhooks render something useful
	Text string `json:"text"`
}

func (n *WebhookNotifier) NotifyOwner(ctx context.Context, title, content string) error {
	body, err := json.Marshal(webhookBody{
		Title:   title,
		Content: content,
		Text:    title + "\n" + content,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("owner webhook POST failed. status=%d", resp.StatusCode)
	}
	return nil
}
