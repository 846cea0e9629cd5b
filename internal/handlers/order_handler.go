package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/vakansik/internal/gateway"
	"github.com/farellandr/vakansik/internal/helpers"
	"github.com/farellandr/vakansik/internal/middleware"
	"github.com/farellandr/vakansik/internal/models"
	"github.com/farellandr/vakansik/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// GetOrder is polled by the app while it waits for the payment webhook.
func GetOrder(c *gin.Context) {
	order, ok := ownedOrder(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 order.ID,
		"trip_id":            order.TripID,
		"trip_date":          order.TripDate,
		"amount_idr":         order.AmountIDR,
		"status":             order.Status,
		"channel_code":       order.ChannelCode,
		"payment_request_id": order.PaymentRequestID,
		"actions":            gateway.Actions(order.XenditResponse),
		"created_at":         order.CreatedAt,
		"updated_at":         order.UpdatedAt,
	})
}

func GetOrderQR(c *gin.Context) {
	order, ok := ownedOrder(c)
	if !ok {
		return
	}

	action, found := gateway.FindAction(order.XenditResponse, gateway.DescriptorQRString)
	if !found || action.Value == "" {
		helpers.RespondWithError(c, http.StatusNotFound, "Order has no QR code.")
		return
	}

	png, err := qrcode.Encode(action.Value, qrcode.Medium, qrImageSize)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to render QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func ownedOrder(c *gin.Context) (*models.Order, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return nil, false
	}

	svc := middleware.GetPaymentService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not configured.")
		return nil, false
	}

	order, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to load order.")
		return nil, false
	}

	if order.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You do not have access to this order.")
		return nil, false
	}

	return order, true
}

// Health pings the database.
func Health(ping func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(); err != nil {
			helpers.RespondWithError(c, http.StatusServiceUnavailable, "Database unavailable.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
