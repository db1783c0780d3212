package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

const (
	colorRed    = 0xE74C3C // drop of 20% or more
	colorOrange = 0xE67E22 // drop of 10-20%
	colorYellow = 0xF1C40F // smaller drops
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendDrop sends a single price drop as a Discord embed.
func (d *DiscordNotifier) SendDrop(ctx context.Context, drop domain.DropNotification) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(drop)},
	}
	return d.post(ctx, payload)
}

// SendBatchDrops sends multiple drops as a single Discord message.
func (d *DiscordNotifier) SendBatchDrops(
	ctx context.Context,
	drops []domain.DropNotification,
) error {
	embeds := make([]discordEmbed, 0, len(drops))

	// Discord allows max 10 embeds per message.
	limit := min(len(drops), 10)

	for i := range limit {
		embeds = append(embeds, buildEmbed(drops[i]))
	}

	if len(drops) > 10 {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more price drops", len(drops)-10),
			Color:       colorYellow,
			Description: "Export the history for the full list.",
		})
	}

	payload := discordWebhookPayload{Embeds: embeds}
	return d.post(ctx, payload)
}

func buildEmbed(drop domain.DropNotification) discordEmbed {
	return discordEmbed{
		Title: fmt.Sprintf("Price Drop: %s", drop.Title),
		Color: dropColor(drop.DropPercent),
		Fields: []discordEmbedField{
			{Name: "Product", Value: drop.ProductID, Inline: true},
			{Name: "Was", Value: fmt.Sprintf("%.2f", drop.PreviousPrice), Inline: true},
			{Name: "Now", Value: fmt.Sprintf("%.2f", drop.CurrentPrice), Inline: true},
			{Name: "Drop", Value: fmt.Sprintf("-%.1f%%", drop.DropPercent), Inline: true},
		},
	}
}

func dropColor(percent float64) int {
	switch {
	case percent >= 20:
		return colorRed
	case percent >= 10:
		return colorOrange
	default:
		return colorYellow
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
