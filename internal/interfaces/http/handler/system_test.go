package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSystemHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSystemHandler()
	router := gin.New()
	router.GET("/system/info", h.GetSystemInfo)
	router.GET("/system/ping", h.Ping)

	t.Run("info", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/system/info", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "FreshLink Backend API")
	})

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/system/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})
}
