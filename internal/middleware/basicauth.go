package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
	"github.com/nitiprint/nitiprint-api/pkg/response"
)

// AdminCredentials holds the single admin account protecting the back office.
// PasswordHash, when set, takes precedence over the plaintext Password.
type AdminCredentials struct {
	User         string
	Password     string
	PasswordHash string
}

// BasicAuth protects admin routes with HTTP basic authentication.
func BasicAuth(creds AdminCredentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !creds.match(user, pass) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a AdminCredentials) match(user, pass string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) != 1 {
		return false
	}
	if a.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(pass)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(a.Password)) == 1
}
