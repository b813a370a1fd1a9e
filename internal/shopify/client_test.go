package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// newTestClient points a Client at a fake GraphQL endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:     srv.URL,
		AccessToken: "test-token",
		HTTPClient:  srv.Client(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// graphqlOK writes a {"data": ...} envelope.
func graphqlOK(t *testing.T, w http.ResponseWriter, data string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"data":` + data + `}`)); err != nil {
		t.Errorf("writing response: %v", err)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New(Config{AccessToken: "t"}); err == nil {
		t.Error("New() without domain: error = nil")
	}
	if _, err := New(Config{StoreDomain: "example.myshopify.com"}); err == nil {
		t.Error("New() without access token: error = nil")
	}
}

func TestProducts_FlattensListing(t *testing.T) {
	var gotRequest graphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Storefront-Access-Token"); got != "test-token" {
			t.Errorf("access token header = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&gotRequest)
		graphqlOK(t, w, `{"products":{"edges":[
			{"node":{
				"id":"gid://shopify/Product/1","title":"Tee","handle":"tee",
				"description":"Soft cotton.",
				"priceRange":{"minVariantPrice":{"amount":"19.99","currencyCode":"USD"}},
				"images":{"edges":[{"node":{"url":"https://cdn/tee-1.jpg"}},{"node":{"url":"https://cdn/tee-2.jpg"}}]},
				"variants":{"edges":[{"node":{"id":"gid://shopify/ProductVariant/11","title":"M","price":{"amount":"19.99","currencyCode":"USD"},"availableForSale":true}}]}
			}},
			{"node":{
				"id":"gid://shopify/Product/2","title":"Mug","handle":"mug",
				"description":"",
				"priceRange":{"minVariantPrice":{"amount":"9.00","currencyCode":"USD"}},
				"images":{"edges":[]},
				"variants":{"edges":[{"node":{"id":"gid://shopify/ProductVariant/21","title":"Default","price":{"amount":"9.00","currencyCode":"USD"},"availableForSale":false}}]}
			}}
		]}}`)
	})

	products, err := c.Products(context.Background(), 20)
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if gotRequest.Variables["first"] != float64(20) {
		t.Errorf("first variable = %v, want 20", gotRequest.Variables["first"])
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}

	tee := products[0]
	if tee.NumericID != 1 {
		t.Errorf("NumericID = %d, want 1", tee.NumericID)
	}
	if tee.Price != "$19.99" {
		t.Errorf("Price = %q, want $19.99", tee.Price)
	}
	if tee.PriceMinor != 1999 {
		t.Errorf("PriceMinor = %d, want 1999", tee.PriceMinor)
	}
	if tee.Image != "https://cdn/tee-1.jpg" {
		t.Errorf("Image = %q, want first image", tee.Image)
	}
	if !tee.InStock {
		t.Error("InStock = false, want true")
	}

	mug := products[1]
	if mug.NumericID != 2 {
		t.Errorf("NumericID = %d, want 2", mug.NumericID)
	}
	if mug.InStock {
		t.Error("InStock = true for product with no sellable variants")
	}
	if mug.Description != "No description available." {
		t.Errorf("Description = %q, want placeholder", mug.Description)
	}
}

func TestProducts_DefaultsPageSize(t *testing.T) {
	var gotRequest graphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotRequest)
		graphqlOK(t, w, `{"products":{"edges":[]}}`)
	})

	if _, err := c.Products(context.Background(), 0); err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if gotRequest.Variables["first"] != float64(50) {
		t.Errorf("first variable = %v, want 50", gotRequest.Variables["first"])
	}
}

func TestProductByHandle_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"product":null}`)
	})

	p, err := c.ProductByHandle(context.Background(), "gone")
	if err != nil {
		t.Fatalf("ProductByHandle() error = %v", err)
	}
	if p != nil {
		t.Errorf("ProductByHandle() = %+v, want nil", p)
	}
}

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		status     int
		wantStatus int
	}{
		{http.StatusUnauthorized, 401},
		{http.StatusForbidden, 401},
		{http.StatusTooManyRequests, 429},
		{http.StatusInternalServerError, 502},
		{http.StatusBadGateway, 502},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})

		_, err := c.Shop(context.Background())
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: error = %v, want APIError", tt.status, err)
		}
		if apiErr.StatusCode != tt.wantStatus {
			t.Errorf("status %d: mapped to %d, want %d", tt.status, apiErr.StatusCode, tt.wantStatus)
		}
	}
}

func TestDo_GraphQLErrorsSurfaceMessages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"Throttled"},{"message":"Field is invalid"}]}`))
	})

	_, err := c.Shop(context.Background())
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 502 {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
	if apiErr.Message != "Throttled, Field is invalid" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestCreateCustomer_TakenEmail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customerCreate":{"customer":null,"customerUserErrors":[
			{"field":["input","email"],"message":"Email has already been taken","code":"TAKEN"}
		]}}`)
	})

	_, err := c.CreateCustomer(context.Background(), storefront.CustomerInput{
		FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "password1",
	})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	want := "This email is already registered. Please use a different email or try logging in."
	if apiErr.Message != want {
		t.Errorf("Message = %q, want %q", apiErr.Message, want)
	}
}

func TestCreateCustomer_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customerCreate":{"customer":{
			"id":"gid://shopify/Customer/1","firstName":"Jo","lastName":"Doe","email":"jo@example.com"
		},"customerUserErrors":[]}}`)
	})

	customer, err := c.CreateCustomer(context.Background(), storefront.CustomerInput{
		FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if customer.Email != "jo@example.com" || customer.FirstName != "Jo" {
		t.Errorf("customer = %+v", customer)
	}
}

func TestCreateAccessToken_BadCredentialsIs401(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customerAccessTokenCreate":{"customerAccessToken":null,"customerUserErrors":[
			{"field":null,"message":"Unidentified customer","code":"UNIDENTIFIED_CUSTOMER"}
		]}}`)
	})

	_, err := c.CreateAccessToken(context.Background(), "jo@example.com", "wrong")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Message != "Unidentified customer" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestCreateAccessToken_ParsesExpiry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customerAccessTokenCreate":{"customerAccessToken":{
			"accessToken":"tok-123","expiresAt":"2026-10-01T00:00:00Z"
		},"customerUserErrors":[]}}`)
	})

	token, err := c.CreateAccessToken(context.Background(), "jo@example.com", "password1")
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}
	if token.Token != "tok-123" {
		t.Errorf("Token = %q", token.Token)
	}
	if token.ExpiresAt.Year() != 2026 || token.ExpiresAt.Month() != 10 {
		t.Errorf("ExpiresAt = %v", token.ExpiresAt)
	}
}

func TestCustomer_InvalidTokenIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customer":null}`)
	})

	customer, err := c.Customer(context.Background(), "expired-token")
	if err != nil {
		t.Fatalf("Customer() error = %v", err)
	}
	if customer != nil {
		t.Errorf("Customer() = %+v, want nil", customer)
	}
}

func TestAddresses_FlagsDefault(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customer":{
			"defaultAddress":{"id":"gid://shopify/MailingAddress/2"},
			"addresses":{"edges":[
				{"node":{"id":"gid://shopify/MailingAddress/1","address1":"1 First St"}},
				{"node":{"id":"gid://shopify/MailingAddress/2","address1":"2 Second St"}}
			]}
		}}`)
	})

	addresses, err := c.Addresses(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Addresses() error = %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("len = %d, want 2", len(addresses))
	}
	if addresses[0].IsDefault {
		t.Error("addresses[0].IsDefault = true")
	}
	if !addresses[1].IsDefault {
		t.Error("addresses[1].IsDefault = false, want true")
	}
}

func TestOrder_ReconcilesNumericSuffix(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customer":{"orders":{"edges":[
			{"node":{"id":"gid://shopify/Order/1001?key=abc","name":"#1001","orderNumber":1001,
				"processedAt":"2026-01-05T10:00:00Z",
				"totalPrice":{"amount":"50.00","currencyCode":"USD"},
				"subtotalPrice":{"amount":"45.00","currencyCode":"USD"},
				"totalTax":{"amount":"5.00","currencyCode":"USD"},
				"totalShippingPrice":{"amount":"0.00","currencyCode":"USD"},
				"lineItems":{"edges":[]}}},
			{"node":{"id":"gid://shopify/Order/1002?key=def","name":"#1002","orderNumber":1002,
				"processedAt":"2026-01-06T10:00:00Z",
				"totalPrice":{"amount":"20.00","currencyCode":"USD"},
				"subtotalPrice":{"amount":"20.00","currencyCode":"USD"},
				"totalTax":{"amount":"0.00","currencyCode":"USD"},
				"totalShippingPrice":{"amount":"0.00","currencyCode":"USD"},
				"lineItems":{"edges":[]}}}
		]}}}`)
	})

	// Different query suffix than the stored ID; trailing digits still match.
	order, err := c.Order(context.Background(), "tok", "gid://shopify/Order/1002?utm_source=email")
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if order == nil {
		t.Fatal("Order() = nil, want match")
	}
	if order.Order.OrderNumber != 1002 {
		t.Errorf("OrderNumber = %d, want 1002", order.Order.OrderNumber)
	}
	if order.SubtotalPrice != "20.00" {
		t.Errorf("SubtotalPrice = %q, want 20.00", order.SubtotalPrice)
	}
}

func TestOrder_NoMatchIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		graphqlOK(t, w, `{"customer":{"orders":{"edges":[]}}}`)
	})

	order, err := c.Order(context.Background(), "tok", "gid://shopify/Order/999")
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if order != nil {
		t.Errorf("Order() = %+v, want nil", order)
	}
}

func TestOrder_AmbiguousMatchWarns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two orders whose IDs end in the same digit run.
		graphqlOK(t, w, `{"customer":{"orders":{"edges":[
			{"node":{"id":"gid://shopify/Order/77?key=a","name":"#77","orderNumber":77,
				"processedAt":"2026-01-05T10:00:00Z",
				"totalPrice":{"amount":"10.00","currencyCode":"USD"},
				"subtotalPrice":{"amount":"10.00","currencyCode":"USD"},
				"totalTax":{"amount":"0.00","currencyCode":"USD"},
				"totalShippingPrice":{"amount":"0.00","currencyCode":"USD"},
				"lineItems":{"edges":[]}}},
			{"node":{"id":"gid://shopify/Draft/77?key=b","name":"#78","orderNumber":78,
				"processedAt":"2026-01-06T10:00:00Z",
				"totalPrice":{"amount":"20.00","currencyCode":"USD"},
				"subtotalPrice":{"amount":"20.00","currencyCode":"USD"},
				"totalTax":{"amount":"0.00","currencyCode":"USD"},
				"totalShippingPrice":{"amount":"0.00","currencyCode":"USD"},
				"lineItems":{"edges":[]}}}
		]}}}`)
	}))
	defer srv.Close()

	var logBuf bytes.Buffer
	c, err := New(Config{
		BaseURL:     srv.URL,
		AccessToken: "test-token",
		HTTPClient:  srv.Client(),
		Logger:      slog.New(slog.NewTextHandler(&logBuf, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	order, err := c.Order(context.Background(), "tok", "order-77")
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if order == nil {
		t.Fatal("Order() = nil, want first match")
	}
	if order.Order.OrderNumber != 77 {
		t.Errorf("OrderNumber = %d, want first candidate 77", order.Order.OrderNumber)
	}
	if !strings.Contains(logBuf.String(), "ambiguous order identifier") {
		t.Errorf("log output missing ambiguity warning: %q", logBuf.String())
	}
}

func TestCreateCart_SendsLinesAndBuyerIdentity(t *testing.T) {
	var gotRequest graphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotRequest)
		graphqlOK(t, w, `{"cartCreate":{"cart":{
			"id":"gid://shopify/Cart/c1","checkoutUrl":"https://shop/checkouts/c1",
			"totalQuantity":2,"cost":{"totalAmount":{"amount":"39.98","currencyCode":"USD"}}
		},"userErrors":[]}}`)
	})

	checkout, err := c.CreateCart(context.Background(), &storefront.CreateCartRequest{
		Lines: []storefront.CartLine{{VariantID: "gid://shopify/ProductVariant/11", Quantity: 2}},
		Customer: &storefront.CustomerInfo{
			Email:     "jo@example.com",
			FirstName: "Jo",
			City:      "Portland",
			// Address2 left empty: must not appear in attributes.
		},
	})
	if err != nil {
		t.Fatalf("CreateCart() error = %v", err)
	}
	if checkout.WebURL != "https://shop/checkouts/c1" {
		t.Errorf("WebURL = %q", checkout.WebURL)
	}

	input := gotRequest.Variables["input"].(map[string]any)

	lines := input["lines"].([]any)
	line := lines[0].(map[string]any)
	if line["merchandiseId"] != "gid://shopify/ProductVariant/11" || line["quantity"] != float64(2) {
		t.Errorf("line = %v", line)
	}

	buyer := input["buyerIdentity"].(map[string]any)
	if buyer["email"] != "jo@example.com" {
		t.Errorf("buyerIdentity = %v", buyer)
	}

	attrs := input["attributes"].([]any)
	keys := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m := a.(map[string]any)
		keys[m["key"].(string)] = m["value"].(string)
	}
	if keys["_customer_first_name"] != "Jo" {
		t.Errorf("_customer_first_name = %q", keys["_customer_first_name"])
	}
	if keys["_shipping_city"] != "Portland" {
		t.Errorf("_shipping_city = %q", keys["_shipping_city"])
	}
	if _, ok := keys["_shipping_address2"]; ok {
		t.Error("empty attribute _shipping_address2 was sent")
	}
}

func TestCreateCart_Validation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached upstream despite invalid input")
	})

	tests := []struct {
		name string
		req  *storefront.CreateCartRequest
	}{
		{"nil request", nil},
		{"empty lines", &storefront.CreateCartRequest{}},
		{"missing variant", &storefront.CreateCartRequest{Lines: []storefront.CartLine{{Quantity: 1}}}},
		{"zero quantity", &storefront.CreateCartRequest{Lines: []storefront.CartLine{{VariantID: "v1"}}}},
	}
	for _, tt := range tests {
		_, err := c.CreateCart(context.Background(), tt.req)
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
			t.Errorf("%s: error = %v, want 400 APIError", tt.name, err)
		}
	}
}

func TestDeleteAccessToken(t *testing.T) {
	var gotRequest graphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotRequest)
		graphqlOK(t, w, `{"customerAccessTokenDelete":{"deletedAccessToken":"tok","userErrors":[]}}`)
	})

	if err := c.DeleteAccessToken(context.Background(), "tok"); err != nil {
		t.Fatalf("DeleteAccessToken() error = %v", err)
	}
	if gotRequest.Variables["customerAccessToken"] != "tok" {
		t.Errorf("variables = %v", gotRequest.Variables)
	}
}
