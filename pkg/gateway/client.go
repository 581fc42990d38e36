package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"show-booking/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable marks transport failures and gateway 5xx responses.
	// The client already retried with backoff before surfacing it.
	ErrUnavailable = errors.New("payment gateway unavailable")

	// ErrOrderRejected marks a gateway-side validation failure. Retrying
	// with the same inputs will not help.
	ErrOrderRejected = errors.New("order creation rejected by gateway")
)

// Order is the handle the gateway returns for a created payment order.
type Order struct {
	ID         string `json:"id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	ReceiptRef string `json:"receipt"`
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Client talks to the external payment gateway REST API. It has no side
// effects on local state; an order is only a logical payment intent.
type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	secret     string
	maxRetries int
	log        *zap.Logger
}

func NewClient(config utils.GatewayConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    config.BaseURL,
		keyID:      config.KeyID,
		secret:     config.Secret,
		maxRetries: config.MaxRetries,
		log:        log.With(zap.String("component", "gateway")),
	}
}

// CreateOrder opens a payment order for the given amount in minor units.
// Transport errors and 5xx responses are retried with bounded exponential
// backoff; 4xx responses are terminal.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receiptRef string) (*Order, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receiptRef,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	var lastErr error
	backoff := 200 * time.Millisecond

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("create order: %w", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		order, retryable, err := c.postOrder(ctx, body)
		if err == nil {
			return order, nil
		}
		if !retryable {
			return nil, err
		}

		lastErr = err
		c.log.Warn("Gateway order attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("receipt_ref", receiptRef),
		)
	}

	return nil, fmt.Errorf("create order for receipt %s after %d attempts: %w", receiptRef, c.maxRetries+1, lastErr)
}

func (c *Client) postOrder(ctx context.Context, body []byte) (*Order, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: gateway returned %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("%w: status %d: %s", ErrOrderRejected, resp.StatusCode, respBody)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, false, fmt.Errorf("decode order response: %w", err)
	}
	if order.ID == "" {
		return nil, false, fmt.Errorf("%w: gateway returned no order id", ErrOrderRejected)
	}

	return &order, false, nil
}
