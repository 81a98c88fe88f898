package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"packquote/internal/core/apperror"
	appcontext "packquote/internal/core/context"
)

// Auth verifies the HS256 bearer token and places the authenticated
// user into the request context. Identity management itself lives in
// an external service; this only consumes its tokens.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid token")
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			unauthorized(c, "token carries no subject")
			return
		}
		userName, _ := claims["name"].(string)

		ctx := appcontext.WithUser(c.Request.Context(), userID, userName)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	appErr := apperror.NewUnauthorized(message)
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(appErr))
}
