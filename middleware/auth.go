package middleware

import (
	"strings"

	"hotelsite/constants"
	"hotelsite/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication
func AuthMiddleware(secret []byte, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := GetUserFromToken(tokenString, secret)
		if err != nil {
			response.Unauthorized(c)
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(roles, userRole) {
			response.Forbidden(c)
			return
		}

		// Lưu thông tin user vào context
		c.Set(constants.CtxUserID, userID)
		c.Set(constants.CtxUserRole, userRole)
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(constants.CtxUserRole)
		if !exists {
			response.Unauthorized(c)
			return
		}

		role, _ := userRole.(int)
		if !hasRole(roles, role) {
			response.Forbidden(c)
			return
		}

		c.Next()
	}
}

func hasRole(roles []int, role int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
