package handler

import (
	"github.com/gin-gonic/gin"

	"turnout/backend/pkg/response"
)

// MustGetBrigadeID safely extracts the brigade_id the auth middleware
// injected. On ok=false a 401 has already been written and the caller
// should return.
func MustGetBrigadeID(c *gin.Context) (string, bool) {
	v, exists := c.Get("brigade_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
