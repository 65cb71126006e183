package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireUserRedirectsWithTarget(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.do(t, jsonReq("GET", "/api/v1/orders", newSID(), nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fapi%2Fv1%2Forders", resp.Header.Get("Location"))
}

func TestAdminRoutes(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.do(t, jsonReq("GET", "/api/v1/admin/orders", newSID(), nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode, "anonymous users go to login")

	user := newSID()
	ta.login(t, user, "user@example.com")
	resp = ta.do(t, jsonReq("GET", "/api/v1/admin/orders", user, nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "access restricted")

	admin := newSID()
	ta.login(t, admin, "admin@example.com")
	resp = ta.do(t, jsonReq("GET", "/api/v1/admin/orders", admin, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Orders []struct {
			ID string `json:"id"`
		} `json:"orders"`
	}
	decode(t, resp, &out)
	assert.Len(t, out.Orders, 4)
}

func TestOrderVisibleOnlyToOwnerOrAdmin(t *testing.T) {
	ta := newTestApp(t)

	owner := newSID()
	ta.login(t, owner, "user@example.com")
	resp := ta.do(t, jsonReq("GET", "/api/v1/orders/ORD11223", owner, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// ORD67890 belongs to another customer
	resp = ta.do(t, jsonReq("GET", "/api/v1/orders/ORD67890", owner, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	admin := newSID()
	ta.login(t, admin, "admin@example.com")
	resp = ta.do(t, jsonReq("GET", "/api/v1/orders/ORD67890", admin, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminProductAndStatusManagement(t *testing.T) {
	ta := newTestApp(t)
	admin := newSID()
	ta.login(t, admin, "admin@example.com")

	resp := ta.do(t, jsonReq("POST", "/api/v1/admin/products", admin, map[string]any{
		"name": "Sulfur Dust", "description": "Contact fungicide.", "price": 9.5,
		"images": []string{"https://placehold.co/600x600.png"}, "suitableFor": []string{"Powdery mildew"},
		"category": "Chemical", "stock": 5,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p struct {
		ID string `json:"id"`
	}
	decode(t, resp, &p)

	resp = ta.do(t, jsonReq("PUT", "/api/v1/admin/products/"+p.ID, admin, map[string]any{"price": -2}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = ta.do(t, jsonReq("PUT", "/api/v1/admin/products/"+p.ID, admin, map[string]any{"stock": 7}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.do(t, jsonReq("DELETE", "/api/v1/admin/products/"+p.ID, admin, nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ta.do(t, jsonReq("GET", "/api/v1/products/"+p.ID, admin, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ta.do(t, jsonReq("POST", "/api/v1/admin/orders/ORD11223/status", admin, map[string]string{"status": "Shipped"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ta.do(t, jsonReq("POST", "/api/v1/admin/orders/ORD67890/status", admin, map[string]string{"status": "Processing"}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = ta.do(t, jsonReq("POST", "/api/v1/admin/orders/ORD11223/status", admin, map[string]string{"status": "Lost"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.do(t, jsonReq("GET", "/api/v1/admin/users", admin, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, bodyString(t, resp), "passwordHash")
}
