package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/vakansik/internal/helpers"
	"github.com/farellandr/vakansik/internal/middleware"
	"github.com/farellandr/vakansik/internal/payments"
	"github.com/gin-gonic/gin"
)

func CreatePaymentRequest(c *gin.Context) {
	var input payments.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helpers.RespondWithText(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	svc := middleware.GetPaymentService(c)
	if svc == nil {
		helpers.RespondWithText(c, http.StatusInternalServerError, "Payment service not configured")
		return
	}

	result, err := svc.CreatePaymentRequest(c.Request.Context(), input)
	if err != nil {
		respondWithRequestError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Response)
}

func respondWithRequestError(c *gin.Context, err error) {
	var reqErr *payments.RequestError
	if errors.As(err, &reqErr) {
		helpers.RespondWithText(c, reqErr.Status, reqErr.Message)
		return
	}
	helpers.RespondWithText(c, http.StatusInternalServerError, err.Error())
}
