package middleware

import (
	"fmt"

	"hotelsite/errors"

	"github.com/dgrijalva/jwt-go"
)

// GetUserFromToken verifies an HS256 token and returns the userinfo.userid and
// userinfo.role claims.
func GetUserFromToken(tokenString string, secret []byte) (uint, int, error) {
	if len(secret) == 0 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Token verification is not configured", nil)
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
	}

	claimsMap, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot read token claims", nil)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "User info missing from token", nil)
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "User id missing from token", nil)
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Role missing from token", nil)
	}

	return uint(userID), int(role), nil
}
