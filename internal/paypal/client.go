// Package paypal is a minimal client for the PayPal checkout REST API:
// client-credentials OAuth, order create, order capture. Nothing else of the
// API surface is wrapped.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	APIBase  string
	ClientID string
	Secret   string
	HTTP     *http.Client
}

func NewClient(apiBase, clientID, secret string) *Client {
	return &Client{
		APIBase:  apiBase,
		ClientID: clientID,
		Secret:   secret,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// UpstreamError wraps a PayPal failure so handlers can map it to 502 without
// leaking credentials or raw upstream bodies to the caller.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("paypal %s: status %d: %s", e.Op, e.Status, e.Body)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken fetches a client-credentials OAuth token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.APIBase+"/v1/oauth2/token",
		strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Op: "oauth2/token", Status: resp.StatusCode, Body: string(body)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("paypal token decode: %w", err)
	}
	return tok.AccessToken, nil
}

type orderRequest struct {
	Intent             string        `json:"intent"`
	PurchaseUnits      []purchaseUnit `json:"purchase_units"`
	ApplicationContext *appContext    `json:"application_context,omitempty"`
}

type purchaseUnit struct {
	Amount amount `json:"amount"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type appContext struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// CreateOrder creates a CAPTURE-intent PayPal order for totalAmount and
// returns the approval URL the client must redirect the payer to.
func (c *Client) CreateOrder(ctx context.Context, totalAmount float64, currency, returnURL, cancelURL string) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount: amount{
				CurrencyCode: currency,
				Value:        strconv.FormatFloat(totalAmount, 'f', 2, 64),
			},
		}},
		ApplicationContext: &appContext{ReturnURL: returnURL, CancelURL: cancelURL},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBase+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal create order: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &UpstreamError{Op: "checkout/orders", Status: resp.StatusCode, Body: string(body)}
	}

	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return "", fmt.Errorf("paypal order decode: %w", err)
	}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href, nil
		}
	}
	return "", &UpstreamError{Op: "checkout/orders", Status: resp.StatusCode, Body: "no approval link in response"}
}

// CaptureOrder captures an approved PayPal order identified by the token the
// approval redirect carried, and returns the capture status ("COMPLETED" on
// success).
func (c *Client) CaptureOrder(ctx context.Context, paypalOrderID string) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.APIBase+"/v2/checkout/orders/"+paypalOrderID+"/capture", bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal capture: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &UpstreamError{Op: "checkout/orders/capture", Status: resp.StatusCode, Body: string(body)}
	}

	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return "", fmt.Errorf("paypal capture decode: %w", err)
	}
	return order.Status, nil
}
