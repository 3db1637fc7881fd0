package api

import (
	"net/http"

	"habitquest/pkg/auth"
	"habitquest/pkg/logger"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated identity placed on the context by the
// auth middleware. A missing or mistyped value is a wiring bug, reported as a
// 500 and aborting the request.
func currentUser(c *gin.Context) (*auth.TelegramUserData, bool) {
	log := logger.Logger()

	userData, exists := c.Get(auth.ContextUserKey)
	if !exists {
		log.Error("telegram user data not found in context")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}

	user, ok := userData.(*auth.TelegramUserData)
	if !ok {
		log.Error("invalid type assertion for telegram user data")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}

	return user, true
}
