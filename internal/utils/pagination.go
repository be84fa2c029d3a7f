package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageRequest selects one 1-based page of a listing.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows before the page.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// PageInfo is the pagination block of a listing response.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ParsePageRequest reads ?page and ?limit. Missing or malformed values fall
// back to page 1 and defaultLimit; a limit above maxLimit is clamped.
func ParsePageRequest(c *gin.Context, defaultLimit, maxLimit int) PageRequest {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil || limit < 1:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}

	return PageRequest{Page: page, Limit: limit}
}

// NewPageInfo describes req within a listing of total rows.
func NewPageInfo(req PageRequest, total int64) PageInfo {
	info := PageInfo{Page: req.Page, Limit: req.Limit, Total: total}
	if req.Limit > 0 {
		info.TotalPages = (total + int64(req.Limit) - 1) / int64(req.Limit)
	}
	return info
}
