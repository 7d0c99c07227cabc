package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is the payload shape the transactional-email endpoint accepts.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// DeliveryError carries the endpoint's error payload back to the caller.
// Delivery is not retried here; the invite token stays valid for a manual
// resend.
type DeliveryError struct {
	Payload    string
	StatusCode int
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed with status %d: %s", e.StatusCode, e.Payload)
}

type client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewClient(endpoint, apiKey string) Mailer {
	return &client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

func (c *client) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Payload:    string(payload),
		}
	}

	return nil
}
