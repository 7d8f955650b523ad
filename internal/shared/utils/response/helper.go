package response

import "github.com/gin-gonic/gin"

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Fail writes an error envelope. details carries field-level validation
// errors when present.
func Fail(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Errors:  details,
	})
}
