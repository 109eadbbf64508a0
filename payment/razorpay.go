package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay Orders API. Only order creation is needed:
// the browser drives the payment itself and posts the result back to us.
type Client struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		KeyID:      keyID,
		KeySecret:  keySecret,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GatewayOrder is the gateway's record of a pending payment intent.
// Amount is in minor currency units (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a payment intent with the gateway. Nothing is
// persisted locally at this point; an abandoned gateway order expires on
// its own.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var gwErr gatewayError
		if json.Unmarshal(body, &gwErr) == nil && gwErr.Error.Description != "" {
			return nil, fmt.Errorf("gateway error: %s", gwErr.Error.Description)
		}
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway returned empty order id")
	}

	return &order, nil
}
