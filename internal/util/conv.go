package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}

// QueryInt reads an integer query parameter, falling back to def when absent.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError(name, "must be an integer")
	}
	return v, nil
}
