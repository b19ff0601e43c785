package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request.id"
	maxRequestIDLen = 128
)

// GetRequestID returns the id assigned to the request by the request id middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger returns logger annotated with the request id and uri.
func RequestLogger(c *gin.Context, logger logrus.FieldLogger) logrus.FieldLogger {
	return logger.WithFields(logrus.Fields{
		"requestId": GetRequestID(c),
		"uri":       GetRequestURI(c),
	})
}

// NewRequestIDMiddleware keeps an incoming X-Request-ID or generates a new one,
// and echoes it in the response.
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
