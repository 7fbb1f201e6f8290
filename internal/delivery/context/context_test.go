package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newEchoContext()

	generated := GetRequestID(c)
	assert.Len(t, generated, 36)

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	ctx := WithRequestID(context.Background(), "req-2")
	assert.Equal(t, "req-2", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestLogger(t *testing.T) {
	fallback := slog.Default()
	assert.Nil(t, GetLogger(context.Background()))
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	scoped := slog.Default().With("request_id", "req-1")
	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestClaim(t *testing.T) {
	c := newEchoContext()

	_, ok := GetClaim(c)
	assert.False(t, ok)

	SetClaim(c, entity.SessionClaim{UserID: 7, Role: entity.RoleAdmin})
	claim, ok := GetClaim(c)
	assert.True(t, ok)
	assert.Equal(t, entity.SessionClaim{UserID: 7, Role: entity.RoleAdmin}, claim)

	SetClaim(c, entity.SessionClaim{})
	_, ok = GetClaim(c)
	assert.False(t, ok)
}
