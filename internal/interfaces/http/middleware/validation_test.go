package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestDecimalValidation(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type Input struct {
		Amount string `json:"amount" binding:"required,decimal_positive"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var input Input
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid amount", `{"amount": "150.25"}`, http.StatusOK},
		{"integer amount", `{"amount": "500"}`, http.StatusOK},
		{"zero rejected", `{"amount": "0"}`, http.StatusBadRequest},
		{"negative rejected", `{"amount": "-10"}`, http.StatusBadRequest},
		{"non-numeric rejected", `{"amount": "abc"}`, http.StatusBadRequest},
		{"missing rejected", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
