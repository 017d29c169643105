// utils/respond.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError sends a uniform error JSON body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
