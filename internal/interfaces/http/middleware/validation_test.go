package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlink/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	// Verify the validator is configured
	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type checkoutInput struct {
		ContactName   string `json:"contact_name" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required,oneof=pay_now invoice"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/checkout", func(c *gin.Context) {
		var req checkoutInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns field details for invalid input", func(t *testing.T) {
		body := strings.NewReader(`{"payment_method": "barter"}`)
		req := httptest.NewRequest("POST", "/checkout", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Len(t, resp.Error.Details, 2)

		// Field names come from json tags, not Go field names
		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "contact_name")
		assert.Contains(t, fields, "payment_method")
	})

	t.Run("passes valid input through", func(t *testing.T) {
		body := strings.NewReader(`{"contact_name": "Dana", "payment_method": "pay_now"}`)
		req := httptest.NewRequest("POST", "/checkout", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Required string `binding:"required"`
		Email    string `binding:"email"`
		Min      string `binding:"min=5"`
		Max      string `binding:"max=10"`
		UUID     string `binding:"uuid"`
		OneOf    string `binding:"oneof=pay_now invoice"`
		URL      string `binding:"url"`
	}

	v := validator.New()

	tests := []struct {
		field    string
		expected string
	}{
		{"Required", "This field is required"},
		{"Email", "Invalid email format"},
		{"Min", "Must be at least 5 characters"},
		{"UUID", "Invalid UUID format"},
		{"OneOf", "Must be one of: pay_now invoice"},
		{"URL", "Invalid URL format"},
	}

	obj := input{Email: "invalid", Min: "ab", UUID: "invalid", OneOf: "barter", URL: "invalid"}
	err := v.Struct(obj)
	require.Error(t, err)
	validationErrs := err.(validator.ValidationErrors)

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, e := range validationErrs {
				if e.Field() == tt.field {
					assert.Equal(t, tt.expected, getValidationMessage(e))
					return
				}
			}
			t.Fatalf("no validation error recorded for field %s", tt.field)
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("handles validator.ValidationErrors", func(t *testing.T) {
		type input struct {
			WholesalerName string `json:"wholesaler_name" binding:"required"`
		}

		router := gin.New()
		router.POST("/requests", func(c *gin.Context) {
			var req input
			if err := c.ShouldBindJSON(&req); err != nil {
				HandleValidationError(c, err)
				return
			}
		})

		body := strings.NewReader(`{}`)
		req := httptest.NewRequest("POST", "/requests", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}
