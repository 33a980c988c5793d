package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the context.
const userIDKey = contextKey("userID")

// organizationIDKey is the key used to store the caller's organization ID.
const organizationIDKey = contextKey("organizationID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetOrganizationIDFromContext retrieves the caller's organization ID from
// the Gin context. Every tenant-scoped route depends on this value.
func GetOrganizationIDFromContext(c *gin.Context) (string, bool) {
	orgVal, exists := c.Get(string(organizationIDKey))
	if !exists {
		orgVal := c.Request.Context().Value(organizationIDKey)
		if orgVal != nil {
			return orgVal.(string), true
		}
		return "", false
	}

	orgID, ok := orgVal.(string)
	if !ok {
		return "", false
	}
	return orgID, true
}
