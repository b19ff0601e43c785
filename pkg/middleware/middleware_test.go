package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRequestIDMiddleware(), NewRequestURIMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":  GetRequestID(c),
			"uri": GetRequestURI(c),
		})
	})
	return router
}

func TestRequestURIMiddleware(t *testing.T) {
	router := newTestRouter()
	var tests = []struct {
		name    string
		target  string
		proto   string
		wantURI string
	}{
		{"plain http", "http://meetnow.local/test?x=1", "", "http://meetnow.local/test?x=1"},
		{"behind tls proxy", "http://meetnow.local/test", "https", "https://meetnow.local/test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.target, nil)
			if tt.proto != "" {
				request.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)
			assert.Equal(t, 200, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"uri":"`+tt.wantURI+`"`)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newTestRouter()

	t.Run("keeps incoming id", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/test", nil)
		request.Header.Set(RequestIDHeader, "req-1")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, "req-1", recorder.Header().Get(RequestIDHeader))
		assert.Contains(t, recorder.Body.String(), `"id":"req-1"`)
	})

	t.Run("generates id", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/test", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		_, err := uuid.Parse(recorder.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/test", nil)
		request.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLen+1))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		_, err := uuid.Parse(recorder.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})
}
