package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/apperror"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	return r
}

func decodeError(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var envelope struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := setupRouter()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("quotation", "q1"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w.Body.Bytes())
	assert.Equal(t, apperror.CodeNotFound, body["code"])
	assert.NotEmpty(t, w.Header().Get(TraceHeader))
}

func TestErrorHandlerHidesInternalCause(t *testing.T) {
	r := setupRouter()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("password=hunter2 leaked"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w.Body.Bytes())
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestRecoveryConvertsPanic(t *testing.T) {
	r := setupRouter()
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestTracePropagatesSuppliedID(t *testing.T) {
	r := setupRouter()
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(TraceHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(TraceHeader))
}
