package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func basicAuthRouter(creds AdminCredentials) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", BasicAuth(creds), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doBasicAuth(r http.Handler, user, pass string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBasicAuthPlaintext(t *testing.T) {
	router := basicAuthRouter(AdminCredentials{User: "admin", Password: "secret"})

	require.Equal(t, http.StatusOK, doBasicAuth(router, "admin", "secret").Code)
	require.Equal(t, http.StatusUnauthorized, doBasicAuth(router, "admin", "wrong").Code)
	require.Equal(t, http.StatusUnauthorized, doBasicAuth(router, "other", "secret").Code)
}

func TestBasicAuthMissingHeader(t *testing.T) {
	router := basicAuthRouter(AdminCredentials{User: "admin", Password: "secret"})

	resp := doBasicAuth(router, "", "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Header().Get("WWW-Authenticate"), "Basic")
}

func TestBasicAuthBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	router := basicAuthRouter(AdminCredentials{User: "admin", PasswordHash: string(hash)})

	require.Equal(t, http.StatusOK, doBasicAuth(router, "admin", "secret").Code)
	require.Equal(t, http.StatusUnauthorized, doBasicAuth(router, "admin", "wrong").Code)
}

func TestBasicAuthHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	require.NoError(t, err)
	router := basicAuthRouter(AdminCredentials{User: "admin", Password: "plain", PasswordHash: string(hash)})

	require.Equal(t, http.StatusUnauthorized, doBasicAuth(router, "admin", "plain").Code)
	require.Equal(t, http.StatusOK, doBasicAuth(router, "admin", "hashed").Code)
}
