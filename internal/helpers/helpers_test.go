package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCallbackTokenMatches(t *testing.T) {
	tests := []struct {
		received, expected string
		want               bool
	}{
		{"secret", "secret", true},
		{"secret", "Secret", false},
		{"secre", "secret", false},
		{"", "secret", false},
		{"", "", false},
		{"secret", "", false},
	}

	for _, tt := range tests {
		if got := CallbackTokenMatches(tt.received, tt.expected); got != tt.want {
			t.Errorf("CallbackTokenMatches(%q, %q) = %v, want %v", tt.received, tt.expected, got, tt.want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" a@x.com, ,b@x.com,")
	if len(got) != 2 || got[0] != "a@x.com" || got[1] != "b@x.com" {
		t.Errorf("SplitCSV = %v", got)
	}
	if SplitCSV("") != nil {
		t.Error("empty input should yield nil")
	}
}

func TestRespondWithText(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondWithText(c, http.StatusUnauthorized, "")

	if w.Code != http.StatusUnauthorized || w.Body.String() != "Unauthorized" {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondWithError(c, http.StatusNotFound, "Order not found.")

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Error != "Not Found" || resp.Message != "Order not found." {
		t.Errorf("response = %+v", resp)
	}
}
