package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseBearer(c *gin.Context, secret string) (string, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("authorization header missing")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("invalid token claims")
	}
	return userID, nil
}

// RequireAuth rejects requests without a valid access token and sets
// user_id in the context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseBearer(c, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// IdentifyUser sets user_id when a valid token is present but lets
// guests through. Cart routes use this so guest and user requests share
// one code path.
func IdentifyUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := parseBearer(c, secret); err == nil {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
