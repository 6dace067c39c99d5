package middleware

import (
	"bible_trivia_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.7:5000"
	require.Equal(t, "ip:10.0.0.7", ByUser(c))

	c.Set("user", &util.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "ruth"}})
	require.Equal(t, "user:ruth", ByUser(c))
}
