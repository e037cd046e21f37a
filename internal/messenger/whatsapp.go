package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WhatsAppWebhook delivers alerts through a WhatsApp gateway's webhook.
// The gateway enforces its own rate limit; pacing is the caller's job.
type WhatsAppWebhook struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *zap.Logger
}

type webhookRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewWhatsAppWebhook(endpoint, token string, logger *zap.Logger) (*WhatsAppWebhook, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("whatsapp webhook endpoint is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppWebhook{
		endpoint: endpoint,
		token:    strings.TrimSpace(token),
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}, nil
}

func (w *WhatsAppWebhook) Name() string {
	return "whatsapp"
}

func (w *WhatsAppWebhook) Send(ctx context.Context, address, body string) (SendResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return SendResult{}, fmt.Errorf("empty destination address")
	}

	payload, err := json.Marshal(webhookRequest{To: address, Body: body})
	if err != nil {
		return SendResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("whatsapp webhook: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return SendResult{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SendResult{}, fmt.Errorf("whatsapp webhook status %d", resp.StatusCode)
	}

	var out webhookResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			// Some gateways return bare 200s with no body.
			w.logger.Debug("unparseable webhook response", zap.ByteString("body", raw))
			return SendResult{Success: true}, nil
		}
		return SendResult{Success: out.Success, Message: out.Message}, nil
	}
	return SendResult{Success: true}, nil
}
