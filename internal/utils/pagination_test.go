package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePageRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		want  PageRequest
	}{
		{"defaults", "", PageRequest{Page: 1, Limit: 20}},
		{"explicit", "?page=3&limit=10", PageRequest{Page: 3, Limit: 10}},
		{"limit clamped", "?limit=500", PageRequest{Page: 1, Limit: 50}},
		{"malformed", "?page=abc&limit=-4", PageRequest{Page: 1, Limit: 20}},
		{"page zero", "?page=0", PageRequest{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/my-clocklogs"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePageRequest(c, 20, 50))
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, PageRequest{Limit: 20}.Offset())
}

func TestNewPageInfo(t *testing.T) {
	assert.Equal(t, PageInfo{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, NewPageInfo(PageRequest{Page: 2, Limit: 2}, 5))
	assert.Equal(t, int64(0), NewPageInfo(PageRequest{Page: 1, Limit: 20}, 0).TotalPages)
}
