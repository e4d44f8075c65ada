package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AuthRequired resolves the current user from a Bearer header or the
// session cookie and puts userID/userEmail in the context. Anonymous
// requests never reach the handler: browser routes bounce to the login
// page with a notice, API routes get a 401.
func AuthRequired(redirectToLogin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Token Extraction
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		// Check Cookie (fallback)
		if tokenString == "" {
			cookie, err := c.Cookie("rentbook_jwt")
			if err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortUnauthenticated(c, redirectToLogin)
			return
		}

		// 2. Validation
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})

		if err != nil || !token.Valid {
			abortUnauthenticated(c, redirectToLogin)
			return
		}

		// 3. Claims Extraction
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthenticated(c, redirectToLogin)
			return
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				abortUnauthenticated(c, redirectToLogin)
				return
			}
		}

		// JWT numbers decode as float64
		userID, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthenticated(c, redirectToLogin)
			return
		}

		c.Set("userID", int64(userID))
		c.Set("userEmail", claims["email"])
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, redirectToLogin bool) {
	if redirectToLogin {
		c.Redirect(http.StatusSeeOther, "/login?notice=You+must+be+logged+in")
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
}

// UserID reads the id AuthRequired stored in the context.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get("userID")
	userID, _ := id.(int64)
	return userID
}
