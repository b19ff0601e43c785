package middleware

import (
	"github.com/gin-gonic/gin"
)

const requestURIKey = "request.uri"

func GetRequestURI(c *gin.Context) string {
	requestURI, ok := c.Get(requestURIKey)
	if ok {
		return requestURI.(string)
	}
	return c.Request.URL.RequestURI()
}

func NewRequestURIMiddleware() gin.HandlerFunc {
	return requestURIMiddleware{}.build()
}

type requestURIMiddleware struct {
}

func (r requestURIMiddleware) build() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestURIKey, r.getScheme(c)+c.Request.Host+c.Request.URL.RequestURI())
		c.Next()
	}
}

func (r requestURIMiddleware) getScheme(c *gin.Context) string {
	if c.Request.Host == "" {
		return ""
	}
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https://"
	}
	return "http://"
}
