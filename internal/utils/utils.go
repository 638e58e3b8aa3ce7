package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPaginationParams parses page/pageSize query params. Page size is capped
// at 50, matching what the dashboard ever requests.
func GetPaginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}

	return page, pageSize
}
