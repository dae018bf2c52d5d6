package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
