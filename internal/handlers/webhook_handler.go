package handlers

import (
	"fmt"
	"net/http"

	"github.com/farellandr/vakansik/internal/helpers"
	"github.com/farellandr/vakansik/internal/middleware"
	"github.com/farellandr/vakansik/internal/payments"
	"github.com/gin-gonic/gin"
)

const CallbackTokenHeader = "x-callback-token"

func PaymentWebhook(c *gin.Context) {
	svc := middleware.GetPaymentService(c)
	if svc == nil {
		helpers.RespondWithText(c, http.StatusInternalServerError, "Payment service not configured")
		return
	}

	if !svc.Authorized(c.GetHeader(CallbackTokenHeader)) {
		helpers.RespondWithText(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var evt payments.WebhookEvent
	if err := c.ShouldBindJSON(&evt); err != nil {
		helpers.RespondWithText(c, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	result, err := svc.HandleWebhook(c.Request.Context(), evt)
	if err != nil {
		respondWithRequestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order %s status updated to %s", result.OrderID, result.Status),
	})
}
