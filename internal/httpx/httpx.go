package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// RequestID tags each request with the caller's X-Request-ID or a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, detail string) {
	if detail == "" {
		detail = "Request failed"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Detail:    detail,
		RequestID: c.GetString(RequestIDKey),
	})
}
