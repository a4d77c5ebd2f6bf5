// middlewares/auth_middleware.go
package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/mayaaank/MyCanteen-sub000/config"
	"github.com/mayaaank/MyCanteen-sub000/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// CallerContext is the per-request identity every handler works from.
// It is resolved once here; nothing downstream reads session state.
type CallerContext struct {
	UserID uint
	Email  string
	Role   string
}

func (cc CallerContext) IsAdmin() bool {
	return cc.Role == models.RoleAdmin
}

func CallerFrom(c *gin.Context) (CallerContext, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return CallerContext{}, false
	}
	cc, ok := v.(CallerContext)
	return cc, ok
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		secret := []byte(os.Getenv("JWT_SECRET"))
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		cc := CallerContext{}
		if v, ok := claims["userId"].(float64); ok {
			cc.UserID = uint(v)
		}
		cc.Email, _ = claims["email"].(string)
		cc.Role, _ = claims["role"].(string)

		// Tokens minted before the role claim existed: resolve from the DB.
		if cc.UserID == 0 || cc.Role == "" {
			if cc.Email == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "email claim missing"})
				return
			}
			var user models.User
			if err := config.DB.Where("email = ?", cc.Email).First(&user).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			cc.UserID = user.ID
			cc.Role = user.Role
		}

		c.Set(callerKey, cc)
		c.Set("userID", cc.UserID)
		c.Set("email", cc.Email)

		c.Next()
	}
}

// AdminMiddleware sits after AuthMiddleware on admin-only route groups.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !cc.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
