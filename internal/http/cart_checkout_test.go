package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cottoncare/internal/services"
)

var checkoutBody = map[string]any{
	"shippingAddress": map[string]string{
		"fullName": "Jo Farmer", "addressLine1": "12 Gin Road", "city": "Lubbock",
		"state": "TX", "zipCode": "79401", "phoneNumber": "8065550100",
	},
	"billingSameAsShipping": true,
	"paymentMethod":         "creditCard",
	"paymentDetails": map[string]string{
		"cardNumber": "4111111111111111", "expiryDate": "12/29", "cvc": "123", "nameOnCard": "Jo Farmer",
	},
}

func TestProductsFilterAndFallback(t *testing.T) {
	ta := newTestApp(t)
	var out struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	decode(t, ta.do(t, jsonReq("GET", "/api/v1/products?disease=Aphids", newSID(), nil)), &out)
	assert.Len(t, out.Products, 2)

	decode(t, ta.do(t, jsonReq("GET", "/api/v1/products?disease=Healthy", newSID(), nil)), &out)
	assert.Len(t, out.Products, 6, "no match falls back to the whole catalog")

	resp := ta.do(t, jsonReq("GET", "/api/v1/products/prod404", newSID(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "no longer available")
}

func TestCartFlow(t *testing.T) {
	ta := newTestApp(t)
	sid := newSID()

	var v services.CartView
	decode(t, ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "prod1", "quantity": 2})), &v)
	assert.Equal(t, 2, v.ItemCount)

	decode(t, ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "prod1", "quantity": 2})), &v)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 4, v.Items[0].Quantity)
	require.NotEmpty(t, v.Notices)
	assert.Equal(t, services.NoticeUpdated, v.Notices[0].Kind)

	decode(t, ta.do(t, jsonReq("PATCH", "/api/v1/cart/items/prod1", sid, map[string]any{"quantity": 500})), &v)
	assert.Equal(t, 50, v.Items[0].Quantity)
	require.NotEmpty(t, v.Notices)
	assert.Equal(t, services.NoticeStockLimit, v.Notices[0].Kind)

	decode(t, ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "prod4", "quantity": 1})), &v)
	assert.Equal(t, services.NoticeStockLimit, v.Notices[0].Kind, "prod4 is out of stock")

	decode(t, ta.do(t, jsonReq("DELETE", "/api/v1/cart/items/prod1", sid, nil)), &v)
	assert.Empty(t, v.Items)

	resp := ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "nope", "quantity": 1}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ta.do(t, jsonReq("PATCH", "/api/v1/cart/items/prod1", sid, map[string]any{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutFlow(t *testing.T) {
	ta := newTestApp(t)
	sid := newSID()

	resp := ta.do(t, jsonReq("POST", "/api/v1/checkout", sid, checkoutBody))
	assert.Equal(t, http.StatusFound, resp.StatusCode, "checkout needs a signed-in user")

	ta.login(t, sid, "user@example.com")
	resp = ta.do(t, jsonReq("POST", "/api/v1/checkout", sid, checkoutBody))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "empty cart")

	resp = ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "prod3", "quantity": 1}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.do(t, jsonReq("POST", "/api/v1/checkout", sid, checkoutBody))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var r services.Receipt
	decode(t, resp, &r)
	assert.Equal(t, 7.99, r.Shipping)
	assert.InDelta(t, 25.99, r.Total, 0.001)

	var hist struct {
		Orders []struct {
			ID string `json:"id"`
		} `json:"orders"`
	}
	decode(t, ta.do(t, jsonReq("GET", "/api/v1/orders", sid, nil)), &hist)
	require.NotEmpty(t, hist.Orders)
	assert.Equal(t, r.Order.ID, hist.Orders[0].ID)

	var v services.CartView
	decode(t, ta.do(t, jsonReq("GET", "/api/v1/cart", sid, nil)), &v)
	assert.Empty(t, v.Items)
}

func TestCheckoutValidationErrors(t *testing.T) {
	ta := newTestApp(t)
	sid := newSID()
	ta.login(t, sid, "user@example.com")
	ta.do(t, jsonReq("POST", "/api/v1/cart/items", sid, map[string]any{"productId": "prod3", "quantity": 1}))

	bad := map[string]any{
		"shippingAddress":       map[string]string{"fullName": "J", "zipCode": "7"},
		"billingSameAsShipping": true,
		"paymentMethod":         "creditCard",
	}
	resp := ta.do(t, jsonReq("POST", "/api/v1/checkout", sid, bad))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, resp, &out)
	assert.Contains(t, out.Fields, "shippingAddress.fullName")
	assert.Contains(t, out.Fields, "shippingAddress.zipCode")
	assert.Contains(t, out.Fields, "paymentDetails")
}
