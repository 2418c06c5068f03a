package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth returns a middleware that protects mutating registry routes
// with HTTP basic auth. The password is compared against a bcrypt hash so
// the plaintext never lives in config. Returns nil when no credentials
// are configured, which leaves the routes open.
func BasicAuth(username, passwordHash string) gin.HandlerFunc {
	if username == "" || passwordHash == "" {
		return nil
	}

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || user != username {
			unauthorized(c)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)); err != nil {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// HashPassword generates a bcrypt hash suitable for the admin config
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="app-pinger"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
