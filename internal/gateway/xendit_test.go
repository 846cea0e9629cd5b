package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatePaymentRequest(t *testing.T) {
	var got PaymentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v3/payment_requests" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "xnd_secret" || pass != "" {
			t.Errorf("basic auth = %q/%q/%v", user, pass, ok)
		}
		if v := r.Header.Get("api-version"); v != DefaultAPIVersion {
			t.Errorf("api-version = %q", v)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"payment_request_id":"pr-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "xnd_secret", "", server.Client())
	req := NewPayRequest("order-1", 150000, "QRIS", map[string]string{"display_name": "Vakansik"})

	resp, err := client.CreatePaymentRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("CreatePaymentRequest: %v", err)
	}
	if !resp.OK() || resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"payment_request_id":"pr-1"}` {
		t.Errorf("body = %s", resp.Body)
	}

	if got.ReferenceID != "order-1" || got.RequestAmount != 150000 || got.ChannelCode != "QRIS" {
		t.Errorf("request = %+v", got)
	}
	if got.Type != "PAY" || got.Country != "ID" || got.Currency != "IDR" || got.CaptureMethod != "AUTOMATIC" {
		t.Errorf("fixed fields = %+v", got)
	}
	if got.ChannelProperties["display_name"] != "Vakansik" {
		t.Errorf("channel_properties = %v", got.ChannelProperties)
	}
}

func TestCreatePaymentRequestRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code":"API_VALIDATION_ERROR"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "xnd_secret", "2024-11-11", server.Client())
	resp, err := client.CreatePaymentRequest(context.Background(), NewPayRequest("order-1", 1000, "OVO", nil))
	if err != nil {
		t.Fatalf("a rejection is not a transport error: %v", err)
	}
	if resp.OK() || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"error_code":"API_VALIDATION_ERROR"}` {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestCreatePaymentRequestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "xnd_secret", "", nil)
	if _, err := client.CreatePaymentRequest(context.Background(), NewPayRequest("order-1", 1000, "OVO", nil)); err == nil {
		t.Error("expected a transport error")
	}
}
