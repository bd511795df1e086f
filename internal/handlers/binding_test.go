package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindFixture struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindFixture
		expectError bool
	}{
		{
			name:     "wrapped product payload",
			key:      "product",
			body:     `{"product": {"name": "Tomato Seeds", "price": 150}}`,
			expected: bindFixture{Name: "Tomato Seeds", Price: 150},
		},
		{
			name:     "flat payload",
			key:      "product",
			body:     `{"name": "Hand Trowel", "price": 220.5}`,
			expected: bindFixture{Name: "Hand Trowel", Price: 220.5},
		},
		{
			name:     "wrapper key absent falls back to flat",
			key:      "product",
			body:     `{"other": "value", "name": "Drip Kit", "price": 999}`,
			expected: bindFixture{Name: "Drip Kit", Price: 999},
		},
		{
			name:     "different wrapper key",
			key:      "order",
			body:     `{"order": {"name": "Bulk Seeds", "price": 75}}`,
			expected: bindFixture{Name: "Bulk Seeds", Price: 75},
		},
		{
			name:        "flat payload with wrong field type",
			key:         "product",
			body:        `{"name": "Sprayer", "price": "invalid"}`,
			expectError: true,
		},
		{
			name:        "wrapped payload with wrong field type",
			key:         "product",
			body:        `{"product": {"name": "Sprayer", "price": "invalid"}}`,
			expectError: true,
		},
		{
			name:        "wrapper key present but not an object",
			key:         "product",
			body:        `{"product": "some string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindFixture
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
