package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithText writes a plain-text error body, the shape the mobile client
// shows verbatim in its payment error dialog.
func RespondWithText(c *gin.Context, statusCode int, message string) {
	if message == "" {
		message = HTTPStatusText(statusCode)
	}
	c.String(statusCode, message)
}
