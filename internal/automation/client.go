package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"disparo-dashboard/internal/config"
)

// Client posts business actions to the external n8n webhooks. The webhooks
// carry no authentication; each call is a single attempt with no retry.
type Client struct {
	Config     *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{Config: cfg, HTTPClient: &http.Client{}}
}

// WebhookResult is the loose response shape the n8n flows answer with.
// Every field is optional; Status carries an HTTP-status-like string.
type WebhookResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Success *bool  `json:"success"`
	QRCode  string `json:"qrcode"`
}

func (c *Client) postJSON(ctx context.Context, url string, body interface{}) (WebhookResult, bool, error) {
	var result WebhookResult

	jsonData, err := json.Marshal(body)
	if err != nil {
		return result, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return result, false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return result, false, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, false, err
	}

	httpOK := resp.StatusCode >= 200 && resp.StatusCode < 300

	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return result, httpOK, fmt.Errorf("invalid webhook response: %w", err)
		}
	}

	return result, httpOK, nil
}

// SendScheduleAction posts one card action to the scheduling endpoint.
// The endpoint is inconsistent about reporting success: some flows answer
// plain HTTP 2xx, others answer an HTTP error with a body status of "200".
// Both are accepted, matching what the flows actually do.
func (c *Client) SendScheduleAction(ctx context.Context, p SchedulePayload) error {
	result, httpOK, err := c.postJSON(ctx, c.Config.ScheduleWebhookURL, p)
	if err != nil {
		return err
	}
	if result.Status == "200" || httpOK {
		return nil
	}
	if result.Message != "" {
		return fmt.Errorf("schedule webhook: %s", result.Message)
	}
	return fmt.Errorf("schedule webhook returned status %q", result.Status)
}

// SendTemplateAction mirrors a template create/toggle/delete to the
// automation system.
func (c *Client) SendTemplateAction(ctx context.Context, p TemplatePayload) error {
	result, httpOK, err := c.postJSON(ctx, c.Config.TemplateWebhookURL, p)
	if err != nil {
		return err
	}
	if !httpOK {
		if result.Message != "" {
			return fmt.Errorf("template webhook: %s", result.Message)
		}
		return fmt.Errorf("template webhook rejected %s for template %s", p.ActionType, p.ID)
	}
	return nil
}

// SendContactImport forwards a decoded contact batch.
func (c *Client) SendContactImport(ctx context.Context, p ImportPayload) error {
	result, httpOK, err := c.postJSON(ctx, c.Config.ImportWebhookURL, p)
	if err != nil {
		return err
	}
	if !httpOK {
		if result.Message != "" {
			return fmt.Errorf("import webhook: %s", result.Message)
		}
		return fmt.Errorf("import webhook rejected file %s", p.Filename)
	}
	return nil
}

// ConnectInstance asks for a new WhatsApp session and returns the base64
// PNG pairing QR code.
func (c *Client) ConnectInstance(ctx context.Context, p InstancePayload) (string, error) {
	result, httpOK, err := c.postJSON(ctx, c.Config.InstanceWebhookURL, p)
	if err != nil {
		return "", err
	}
	if !httpOK {
		if result.Message != "" {
			return "", fmt.Errorf("instance webhook: %s", result.Message)
		}
		return "", fmt.Errorf("instance webhook rejected connection for %s", p.Name)
	}
	if result.QRCode == "" {
		if result.Message != "" {
			return "", fmt.Errorf("instance webhook: %s", result.Message)
		}
		return "", fmt.Errorf("instance webhook returned no QR code")
	}
	return result.QRCode, nil
}

// SendCadence pushes the sending-rate settings for an instance.
func (c *Client) SendCadence(ctx context.Context, p CadencePayload) error {
	result, httpOK, err := c.postJSON(ctx, c.Config.CadenceWebhookURL, p)
	if err != nil {
		return err
	}
	if !httpOK {
		if result.Message != "" {
			return fmt.Errorf("cadence webhook: %s", result.Message)
		}
		return fmt.Errorf("cadence webhook rejected settings for %s", p.Instancia)
	}
	return nil
}
