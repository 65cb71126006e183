package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	applog "cottoncare/internal/log"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(nil) })
	return logs
}

func TestAuthEventsAreLogged(t *testing.T) {
	logs := observeLogs(t)
	ta := newTestApp(t)
	sid := newSID()

	ta.do(t, jsonReq("POST", "/api/v1/auth/login", sid, map[string]string{"email": "user@example.com", "password": "bad"}))
	ta.login(t, sid, "user@example.com")

	fails := logs.FilterMessage("auth.login.fail").All()
	require.Len(t, fails, 1)
	assert.Equal(t, "security", fails[0].ContextMap()["kind"])

	ok := logs.FilterMessage("auth.login.success").All()
	require.Len(t, ok, 1)
	assert.Equal(t, "audit", ok[0].ContextMap()["kind"])
	assert.Equal(t, "user002", ok[0].ContextMap()["user_id"])
}

func TestAdminDeniedAndOrderAuditLogged(t *testing.T) {
	logs := observeLogs(t)
	ta := newTestApp(t)
	sid := newSID()
	ta.login(t, sid, "user@example.com")

	resp := ta.do(t, jsonReq("GET", "/api/v1/admin/users", sid, nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, logs.FilterMessage("access.denied.admin").All(), 1)

	ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "prod2", "quantity": 1}))
	resp = ta.do(t, jsonReq("POST", "/api/v1/checkout", sid, checkoutBody))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	placed := logs.FilterMessage("order.place").All()
	require.Len(t, placed, 1)
	assert.NotEmpty(t, placed[0].ContextMap()["req_id"])
}
