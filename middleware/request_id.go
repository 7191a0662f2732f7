package middleware

import (
	"hotelsite/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tạo request id nếu chưa có và gán vào context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constants.CtxRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)

		c.Next()
	}
}
