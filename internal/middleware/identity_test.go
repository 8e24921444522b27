package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftgy-backend/internal/middleware"
	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/utils"
)

func identityRouter(secret string) (*gin.Engine, *models.CallerIdentity) {
	gin.SetMode(gin.TestMode)
	seen := &models.CallerIdentity{}
	router := gin.New()
	router.GET("/probe", middleware.IdentityRequired(secret), func(c *gin.Context) {
		if identity := middleware.IdentityFrom(c); identity != nil {
			*seen = *identity
		}
		c.Status(http.StatusOK)
	})
	return router, seen
}

func TestIdentityRequiredExtractsCaller(t *testing.T) {
	router, seen := identityRouter("s3cret")

	token, err := utils.GenerateIdentityToken("user-42", "jordan@corp.com", "s3cret", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-42", seen.Identifier)
	assert.Equal(t, "jordan@corp.com", seen.Email)
}

func TestIdentityRequiredRejectsBadTokens(t *testing.T) {
	router, _ := identityRouter("s3cret")

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	wrongSecret, err := utils.GenerateIdentityToken("user-42", "", "other", 5)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+wrongSecret)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
