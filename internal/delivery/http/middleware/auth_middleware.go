package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/auth"
	"job-tracker-api/pkg/logger"
)

// AuthMiddleware requires a bearer token: HS256 signed with secret, or RS256
// verified against jwks. Either may be unset. The token subject is exposed as
// UserID on the gin and request contexts.
func AuthMiddleware(secret string, jwks *auth.Provider) gin.HandlerFunc {
	key := []byte(secret)
	methods := []string{}
	if secret != "" {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if jwks != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header required", string(apperror.KindUnauthorized))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok && secret != "" {
				return key, nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok && jwks != nil {
				return jwks.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}, jwt.WithValidMethods(methods))
		if err != nil || !token.Valid {
			logger.Log.Debug("token validation failed", "error", err, "request_id", c.GetString("RequestID"))
			response.Abort(c, http.StatusUnauthorized, "Invalid token", string(apperror.KindUnauthorized))
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Abort(c, http.StatusUnauthorized, "Invalid claims", string(apperror.KindUnauthorized))
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyUserID, sub))
		c.Next()
	}
}
