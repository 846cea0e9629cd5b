package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/farellandr/vakansik/internal/events"
	"github.com/farellandr/vakansik/internal/gateway"
	"github.com/farellandr/vakansik/internal/models"
)

const qrisResponse = `{
	"payment_request_id": "pr-123",
	"reference_id": "ignored",
	"status": "REQUIRES_ACTION",
	"actions": [{"type": "PRESENT_TO_CUSTOMER", "descriptor": "QR_STRING", "value": "00020101021226"}]
}`

func validInput(method string) CreatePaymentInput {
	return CreatePaymentInput{
		TripID:        "trip-1",
		TripDate:      "2024-12-25",
		JoinedUsers:   json.RawMessage(`[{"name":"Budi","phone_number":"08123"}]`),
		PaymentNumber: "08123",
		PaymentMethod: method,
		UserID:        "user-1",
	}
}

func requireRequestError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if reqErr.Status != status {
		t.Errorf("status = %d, want %d", reqErr.Status, status)
	}
	if message != "" && reqErr.Message != message {
		t.Errorf("message = %q, want %q", reqErr.Message, message)
	}
}

func TestCreatePaymentRequestQRIS(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Response = &gateway.Response{StatusCode: http.StatusCreated, Body: []byte(qrisResponse)}

	result, err := env.svc.CreatePaymentRequest(context.Background(), validInput("qris"))
	if err != nil {
		t.Fatalf("CreatePaymentRequest: %v", err)
	}

	order := env.orders.Order(result.OrderID)
	if order == nil {
		t.Fatal("order was not stored")
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want PENDING", order.Status)
	}
	if order.AmountIDR != 150000 {
		t.Errorf("amount_idr = %d, want 150000", order.AmountIDR)
	}
	if order.ChannelCode != ChannelQRIS {
		t.Errorf("channel_code = %s, want QRIS", order.ChannelCode)
	}
	if order.PaymentRequestID == nil || *order.PaymentRequestID != "pr-123" {
		t.Errorf("payment_request_id = %v, want pr-123", order.PaymentRequestID)
	}

	if env.gateway.Calls() != 1 {
		t.Fatalf("gateway calls = %d, want 1", env.gateway.Calls())
	}
	req := env.gateway.Requests[0]
	if req.ReferenceID != result.OrderID {
		t.Errorf("reference_id = %s, want %s", req.ReferenceID, result.OrderID)
	}
	if req.RequestAmount != 150000 || req.Currency != "IDR" || req.Country != "ID" || req.Type != "PAY" {
		t.Errorf("unexpected gateway request %+v", req)
	}
	if len(req.ChannelProperties) != 1 || req.ChannelProperties["display_name"] != "Vakansik" {
		t.Errorf("channel_properties = %v", req.ChannelProperties)
	}

	if result.Response["order_id"] != result.OrderID {
		t.Errorf("response order_id = %v, want %s", result.Response["order_id"], result.OrderID)
	}
	actions, ok := result.Response["actions"].([]interface{})
	if !ok || len(actions) != 1 {
		t.Errorf("response actions = %v", result.Response["actions"])
	}

	if got := env.publisher.Types(); len(got) != 1 || got[0] != events.TypeOrderCreated {
		t.Errorf("published events = %v", got)
	}
}

func TestCreatePaymentRequestGatewayRejects(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Response = &gateway.Response{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"error_code":"API_VALIDATION_ERROR","message":"invalid mobile number"}`),
	}

	_, err := env.svc.CreatePaymentRequest(context.Background(), validInput("qris"))
	requireRequestError(t, err, http.StatusBadRequest, `{"error_code":"API_VALIDATION_ERROR","message":"invalid mobile number"}`)

	if len(env.orders.Orders) != 1 {
		t.Fatalf("orders stored = %d, want 1", len(env.orders.Orders))
	}
	for _, order := range env.orders.Orders {
		if order.Status != models.OrderStatusFailed {
			t.Errorf("status = %s, want FAILED", order.Status)
		}
		if order.ErrorMessage == nil || *order.ErrorMessage == "" {
			t.Error("error_message not recorded")
		}
	}

	got := env.publisher.Types()
	if len(got) != 2 || got[1] != events.TypeOrderFailed {
		t.Errorf("published events = %v", got)
	}
}

func TestCreatePaymentRequestGatewayUnreachable(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Err = errors.New("dial tcp: connection refused")

	_, err := env.svc.CreatePaymentRequest(context.Background(), validInput("ovo"))
	requireRequestError(t, err, http.StatusBadGateway, "")

	for _, order := range env.orders.Orders {
		if order.Status != models.OrderStatusFailed {
			t.Errorf("status = %s, want FAILED", order.Status)
		}
	}
}

func TestCreatePaymentRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreatePaymentInput)
		message string
	}{
		{"missing user", func(in *CreatePaymentInput) { in.UserID = "" }, "Missing user_id"},
		{"missing trip", func(in *CreatePaymentInput) { in.TripID = "" }, "Missing required fields"},
		{"missing date", func(in *CreatePaymentInput) { in.TripDate = "" }, "Missing required fields"},
		{"no guests", func(in *CreatePaymentInput) { in.JoinedUsers = nil }, "Missing required fields"},
		{"empty guests", func(in *CreatePaymentInput) { in.JoinedUsers = json.RawMessage(`[]`) }, "Missing required fields"},
		{"guests not a list", func(in *CreatePaymentInput) { in.JoinedUsers = json.RawMessage(`{"name":"Budi"}`) }, "Missing required fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := validInput("qris")
			tt.mutate(&in)

			_, err := env.svc.CreatePaymentRequest(context.Background(), in)
			requireRequestError(t, err, http.StatusBadRequest, tt.message)

			if env.orders.Creates != 0 || env.gateway.Calls() != 0 {
				t.Error("validation failure must not have side effects")
			}
		})
	}
}

func TestCreatePaymentRequestTripNotFound(t *testing.T) {
	env := newTestEnv(t)
	in := validInput("qris")
	in.TripID = "trip-404"

	_, err := env.svc.CreatePaymentRequest(context.Background(), in)
	requireRequestError(t, err, http.StatusNotFound, "Trip not found")

	if env.orders.Creates != 0 || env.gateway.Calls() != 0 {
		t.Error("unknown trip must not have side effects")
	}
}

func TestCreatePaymentRequestCatalogError(t *testing.T) {
	env := newTestEnv(t)
	env.trips.Err = errors.New("connection reset")

	_, err := env.svc.CreatePaymentRequest(context.Background(), validInput("qris"))
	requireRequestError(t, err, http.StatusInternalServerError, "connection reset")
}

func TestCreatePaymentRequestInsertFailureSkipsGateway(t *testing.T) {
	env := newTestEnv(t)
	env.orders.CreateErr = errors.New("duplicate key")

	_, err := env.svc.CreatePaymentRequest(context.Background(), validInput("qris"))
	requireRequestError(t, err, http.StatusInternalServerError, "Failed to create order: duplicate key")

	if env.gateway.Calls() != 0 {
		t.Error("gateway must not be called when the order insert fails")
	}
}

func TestCreatePaymentRequestEnrichmentFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Response = &gateway.Response{StatusCode: http.StatusOK, Body: []byte(qrisResponse)}
	env.orders.AttachErr = errors.New("timeout")

	result, err := env.svc.CreatePaymentRequest(context.Background(), validInput("qris"))
	if err != nil {
		t.Fatalf("CreatePaymentRequest: %v", err)
	}

	order := env.orders.Order(result.OrderID)
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want PENDING", order.Status)
	}
	if order.PaymentRequestID != nil {
		t.Error("payment_request_id should not be set when the attach fails")
	}
	if result.Response["payment_request_id"] != "pr-123" {
		t.Errorf("response = %v", result.Response)
	}
}

func TestCreatePaymentRequestUnparsableResponse(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Response = &gateway.Response{StatusCode: http.StatusOK, Body: []byte("<html>ok</html>")}

	_, err := env.svc.CreatePaymentRequest(context.Background(), validInput("qris"))
	requireRequestError(t, err, http.StatusInternalServerError, "Failed to parse payment response.")

	for _, order := range env.orders.Orders {
		if order.Status != models.OrderStatusPending {
			t.Errorf("status = %s, want PENDING", order.Status)
		}
	}
}

func TestCreatePaymentRequestAmountFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Response = &gateway.Response{StatusCode: http.StatusOK, Body: []byte(`{"payment_request_id":"pr-9"}`)}

	// A client-supplied amount is not part of the input at all; the
	// catalog price is the only source.
	result, err := env.svc.CreatePaymentRequest(context.Background(), validInput("shopee"))
	if err != nil {
		t.Fatalf("CreatePaymentRequest: %v", err)
	}
	if got := env.orders.Order(result.OrderID).AmountIDR; got != 150000 {
		t.Errorf("amount_idr = %d, want 150000", got)
	}
	if env.gateway.Requests[0].ChannelCode != ChannelShopeePay {
		t.Errorf("channel_code = %s", env.gateway.Requests[0].ChannelCode)
	}
}
