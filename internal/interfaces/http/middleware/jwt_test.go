package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

func testJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-do-not-use",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) (string, uuid.UUID) {
	customerID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		CustomerID: customerID,
		Email:      "asha@example.com",
		Role:       role,
	})
	require.NoError(t, err)
	return pair.AccessToken, customerID
}

func authTestRouter(svc *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(svc, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		customerID, _ := GetJWTCustomerID(c)
		c.JSON(http.StatusOK, gin.H{"customer_id": customerID.String()})
	})
	r.GET("/me", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := testJWTService(time.Hour)
	token, customerID := issueToken(t, svc, auth.RoleCustomer)

	w := doRequest(authTestRouter(svc), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), customerID.String())
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	svc := testJWTService(time.Hour)

	w := doRequest(authTestRouter(svc), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	svc := testJWTService(time.Hour)
	token, _ := issueToken(t, svc, auth.RoleCustomer)

	w := doRequest(authTestRouter(svc), "Token "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)
	token, _ := issueToken(t, svc, auth.RoleCustomer)

	w := doRequest(authTestRouter(svc), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_RefreshTokenRejectedOnAccessRoute(t *testing.T) {
	svc := testJWTService(time.Hour)
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		CustomerID: uuid.New(),
		Email:      "asha@example.com",
	})
	require.NoError(t, err)

	w := doRequest(authTestRouter(svc), "Bearer "+pair.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAdmin_AllowsAdminRole(t *testing.T) {
	svc := testJWTService(time.Hour)
	token, _ := issueToken(t, svc, auth.RoleAdmin)

	w := doRequest(authTestRouter(svc, RequireAdmin()), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_RejectsCustomerRole(t *testing.T) {
	svc := testJWTService(time.Hour)
	token, _ := issueToken(t, svc, auth.RoleCustomer)

	w := doRequest(authTestRouter(svc, RequireAdmin()), "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := testJWTService(time.Hour)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", OptionalJWTAuthMiddleware(svc), func(c *gin.Context) {
		if id, ok := GetJWTCustomerID(c); ok {
			c.JSON(http.StatusOK, gin.H{"customer_id": id.String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer_id": nil})
	})

	// anonymous request passes through
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// garbage token also passes through, just without claims
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// valid token surfaces the customer ID
	token, customerID := issueToken(t, svc, auth.RoleCustomer)
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), customerID.String())
}
