// Package gateway talks to the Xendit payment gateway.
//
// Payment requests are created against the Payments API v3
// (POST /v3/payment_requests), whose request and response shapes
// (request_amount, channel_code, channel_properties, actions) are not modelled
// by the xendit-go SDK, so the call is made with net/http and the response body
// is kept verbatim for passthrough to the caller. Status lookups use the SDK.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultBaseURL    = "https://api.xendit.co"
	DefaultAPIVersion = "2024-11-11"
)

type PaymentRequest struct {
	ReferenceID       string            `json:"reference_id"`
	Type              string            `json:"type"`
	Country           string            `json:"country"`
	Currency          string            `json:"currency"`
	RequestAmount     int64             `json:"request_amount"`
	CaptureMethod     string            `json:"capture_method"`
	ChannelCode       string            `json:"channel_code"`
	ChannelProperties map[string]string `json:"channel_properties"`
	Description       string            `json:"description,omitempty"`
}

// NewPayRequest fills in the fixed parts of a one-off IDR payment.
func NewPayRequest(referenceID string, amount int64, channelCode string, properties map[string]string) PaymentRequest {
	return PaymentRequest{
		ReferenceID:       referenceID,
		Type:              "PAY",
		Country:           "ID",
		Currency:          "IDR",
		RequestAmount:     amount,
		CaptureMethod:     "AUTOMATIC",
		ChannelCode:       channelCode,
		ChannelProperties: properties,
	}
}

// Response is the raw gateway answer. Non-2xx answers are not errors at this
// layer; callers decide what a rejection means.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Client struct {
	baseURL    string
	secretKey  string
	apiVersion string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey, apiVersion string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		apiVersion: apiVersion,
		httpClient: httpClient,
	}
}

func (c *Client) CreatePaymentRequest(ctx context.Context, req PaymentRequest) (*Response, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/payment_requests", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	httpReq.SetBasicAuth(c.secretKey, "")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-version", c.apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send payment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
