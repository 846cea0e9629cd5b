package middleware

import (
	"github.com/farellandr/vakansik/internal/payments"
	"github.com/gin-gonic/gin"
)

func PaymentsMiddleware(svc *payments.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("payments", svc)
		c.Next()
	}
}

func GetPaymentService(c *gin.Context) *payments.Service {
	svc, exists := c.Get("payments")
	if !exists {
		return nil
	}
	return svc.(*payments.Service)
}
