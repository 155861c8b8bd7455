// Package paymentprovider реализует клиент Stripe Checkout:
// создание платежной сессии для оформления подписки.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создает новый клиент Stripe.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCheckoutSession создает checkout-сессию.
// Stripe принимает тело в формате application/x-www-form-urlencoded.
func (c *Client) CreateCheckoutSession(ctx context.Context, reqParams CreateSessionRequest) (*CheckoutSession, error) {
	const op = "paymentprovider.CreateCheckoutSession"

	form := url.Values{}
	form.Set("mode", reqParams.Mode)
	form.Set("line_items[0][price]", reqParams.PriceID)
	form.Set("line_items[0][quantity]", strconv.Itoa(reqParams.Quantity))
	form.Set("success_url", reqParams.SuccessURL)
	form.Set("cancel_url", reqParams.CancelURL)
	if reqParams.CustomerEmail != "" {
		form.Set("customer_email", reqParams.CustomerEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%s: stripe: %s", op, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}
