package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, role string, expiresAt time.Time) string {
	t.Helper()

	claims := domain.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, jsoniter.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr.Code
}

func TestAuthMiddleware(t *testing.T) {
	log.SetupTestLogger()
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name           string
		secret         string
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Token válido",
			secret:         testSecret,
			header:         "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, domain.RoleOperator, future),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Sem header",
			secret:         testSecret,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrMissingToken,
		},
		{
			name:           "Header sem Bearer",
			secret:         testSecret,
			header:         "Token abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrMissingToken,
		},
		{
			name:           "Assinatura com outro segredo",
			secret:         testSecret,
			header:         "Bearer " + signToken(t, "outro", jwt.SigningMethodHS256, domain.RoleOperator, future),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Algoritmo diferente de HS256",
			secret:         testSecret,
			header:         "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, domain.RoleOperator, future),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Token expirado",
			secret:         testSecret,
			header:         "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, domain.RoleOperator, time.Now().Add(-time.Hour)),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:           "Segredo não configurado rejeita tudo",
			secret:         "",
			header:         "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, domain.RoleOperator, future),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/dataset/refresh", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.secret)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeCode(t, rec))
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name           string
		role           string
		authenticated  bool
		expectedStatus int
	}{
		{name: "Operador autorizado", role: domain.RoleOperator, authenticated: true, expectedStatus: http.StatusOK},
		{name: "Viewer sem permissão", role: domain.RoleViewer, authenticated: true, expectedStatus: http.StatusForbidden},
		{name: "Sem claims no contexto", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RoleMiddleware(domain.RoleOperator)(okHandler())
			if tt.authenticated {
				handler = AuthMiddleware(testSecret)(handler)
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/admin/dataset/status", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256, tt.role, future))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("Bloqueia depois do burst", func(t *testing.T) {
		handler := RateLimit(0.001, 2)(okHandler())

		codes := make([]int, 0, 3)
		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Cada cliente tem o próprio limite", func(t *testing.T) {
		handler := RateLimit(0.001, 1)(okHandler())

		serve := func(remoteAddr string) int {
			req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
			req.RemoteAddr = remoteAddr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusOK, serve("10.0.0.1:5000"))
		assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:5001"), "mesma origem em outra porta")
		assert.Equal(t, http.StatusOK, serve("10.0.0.2:5000"))
		assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.2:5000"))
	})

	t.Run("Remove clientes ociosos", func(t *testing.T) {
		limiters := newClientLimiters(0.001, 1)
		current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		limiters.now = func() time.Time { return current }

		assert.True(t, limiters.allow("10.0.0.1"))
		assert.True(t, limiters.allow("10.0.0.2"))
		assert.False(t, limiters.allow("10.0.0.1"))
		assert.Equal(t, 2, limiters.len())

		current = current.Add(clientIdleTTL)
		assert.True(t, limiters.allow("10.0.0.3"))
		assert.Equal(t, 1, limiters.len())
	})

	t.Run("RPS zero desabilita o limite", func(t *testing.T) {
		handler := RateLimit(0, 0)(okHandler())

		for range 50 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	tests := []struct {
		name          string
		origin        string
		expectedAllow string
	}{
		{name: "Origem permitida", origin: "http://localhost:3000", expectedAllow: "http://localhost:3000"},
		{name: "Origem desconhecida", origin: "http://evil.example", expectedAllow: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/v1/predictions", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var correlationID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health/live", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, correlationID)
	assert.Equal(t, correlationID, rec.Header().Get(CorrelationIDHeader))
}

func TestRecoverMiddleware(t *testing.T) {
	handler := RecoverMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeCode(t, rec))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500 µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "20 ms", formatDuration(20*time.Millisecond))
	assert.Equal(t, "1.50 s", formatDuration(1500*time.Millisecond))
}
