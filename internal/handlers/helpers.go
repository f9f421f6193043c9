package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultUserScope = "anonymous@demo.com"

// userScope resolves the caller's data scope from the X-User-Email header.
// Requests without the header share the demo scope.
func userScope(c *gin.Context) string {
	email := strings.TrimSpace(c.GetHeader("X-User-Email"))
	if email == "" {
		return defaultUserScope
	}
	return email
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
