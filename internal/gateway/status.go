package gateway

import (
	"context"
	"fmt"

	"github.com/xendit/xendit-go/v6"
)

// StatusClient reads payment request state through the xendit-go SDK.
type StatusClient struct {
	client *xendit.APIClient
}

func NewStatusClient(client *xendit.APIClient) *StatusClient {
	return &StatusClient{client: client}
}

func (c *StatusClient) PaymentRequestStatus(ctx context.Context, paymentRequestID string) (string, error) {
	paymentRequest, _, xerr := c.client.PaymentRequestApi.GetPaymentRequestByID(ctx, paymentRequestID).Execute()
	if xerr != nil {
		return "", fmt.Errorf("failed to get payment request %s: %s", paymentRequestID, xerr.Error())
	}
	return string(paymentRequest.GetStatus()), nil
}
