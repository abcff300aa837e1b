package middleware

import (
	"net/http"
	"strconv"

	"github.com/epeers/varstress/internal/models"
	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// ValidateUser is a stubbed authentication middleware that extracts the run
// owner from the X-User-ID header. Requests without the header run anonymously
// (owner 0); a malformed header is rejected.
func ValidateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetHeader("X-User-ID")
		if userIDStr == "" {
			c.Next()
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "X-User-ID must be a positive integer",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the user ID from the context
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(int64), true
}

// RequireSelf allows a request only when the authenticated user matches the
// :user_id path parameter.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "authentication required",
			})
			return
		}
		if strconv.FormatInt(userID, 10) != c.Param("user_id") {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "forbidden",
				Message: "runs of other users are not visible",
			})
			return
		}
		c.Next()
	}
}
