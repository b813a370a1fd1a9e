package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// newTestHandler builds a Handler over the mock for direct tool-handler calls.
func newTestHandler(t *testing.T, api *storefront.Mock) *Handler {
	t.Helper()
	return New(api, slog.New(slog.DiscardHandler), model.Shop{
		Name:    "Fallback Store",
		LogoURL: "https://cdn/logo.png",
	})
}

func TestMCPSearchProducts(t *testing.T) {
	var gotFirst int
	h := newTestHandler(t, &storefront.Mock{
		ProductsFunc: func(ctx context.Context, first int) ([]model.Product, error) {
			gotFirst = first
			return []model.Product{{ID: "p1", Handle: "tee", Name: "Tee"}}, nil
		},
	})

	_, out, err := h.mcpSearchProducts(context.Background(), nil, SearchProductsInput{First: 5})
	if err != nil {
		t.Fatalf("mcpSearchProducts() error = %v", err)
	}
	if gotFirst != 5 {
		t.Errorf("first = %d, want 5", gotFirst)
	}
	if len(out.Products) != 1 || out.Products[0].Handle != "tee" {
		t.Errorf("products = %+v", out.Products)
	}
}

func TestMCPSearchProducts_EmptyIsArrayNotNull(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{})

	_, out, err := h.mcpSearchProducts(context.Background(), nil, SearchProductsInput{})
	if err != nil {
		t.Fatalf("mcpSearchProducts() error = %v", err)
	}
	if out.Products == nil {
		t.Error("products = nil, want []")
	}
}

func TestMCPGetProduct_RequiresHandle(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{})

	_, _, err := h.mcpGetProduct(context.Background(), nil, GetProductInput{})
	if err == nil {
		t.Error("mcpGetProduct() error = nil, want handle error")
	}
}

func TestMCPGetProduct_NotFound(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{
		ProductByHandleFunc: func(ctx context.Context, handle string) (*model.Product, error) {
			return nil, nil
		},
	})

	_, _, err := h.mcpGetProduct(context.Background(), nil, GetProductInput{Handle: "gone"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not-found error", err)
	}
}

func TestMCPGetProduct(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{
		ProductByHandleFunc: func(ctx context.Context, handle string) (*model.Product, error) {
			return &model.Product{ID: "p1", Handle: handle, Name: "Tee"}, nil
		},
	})

	_, product, err := h.mcpGetProduct(context.Background(), nil, GetProductInput{Handle: "tee"})
	if err != nil {
		t.Fatalf("mcpGetProduct() error = %v", err)
	}
	if product.Handle != "tee" {
		t.Errorf("product = %+v", product)
	}
}

func TestMCPGetShop_LogoAlwaysFromConfig(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{
		ShopFunc: func(ctx context.Context) (*model.Shop, error) {
			return &model.Shop{Name: "Upstream Name", LogoURL: "https://upstream/logo.png"}, nil
		},
	})

	_, shop, err := h.mcpGetShop(context.Background(), nil, GetShopInput{})
	if err != nil {
		t.Fatalf("mcpGetShop() error = %v", err)
	}
	if shop.Name != "Upstream Name" {
		t.Errorf("Name = %q, want upstream name", shop.Name)
	}
	if shop.LogoURL != "https://cdn/logo.png" {
		t.Errorf("LogoURL = %q, want configured logo", shop.LogoURL)
	}
}

func TestMCPGetShop_FallbackOnUpstreamError(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{
		ShopFunc: func(ctx context.Context) (*model.Shop, error) {
			return nil, model.NewUpstreamError(errors.New("boom"))
		},
	})

	// Same degradation as GET /shop: a working answer, never an error.
	_, shop, err := h.mcpGetShop(context.Background(), nil, GetShopInput{})
	if err != nil {
		t.Fatalf("mcpGetShop() error = %v", err)
	}
	if shop.Name != "Fallback Store" || shop.LogoURL != "https://cdn/logo.png" {
		t.Errorf("shop = %+v, want configured fallback", shop)
	}
}

func TestMCPCreateCheckout_RequiresLineItems(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{})

	_, _, err := h.mcpCreateCheckout(context.Background(), nil, CreateCheckoutInput{})
	if err == nil {
		t.Error("mcpCreateCheckout() error = nil, want lineItems error")
	}
}

func TestMCPCreateCheckout(t *testing.T) {
	var gotReq *storefront.CreateCartRequest
	h := newTestHandler(t, &storefront.Mock{
		CreateCartFunc: func(ctx context.Context, req *storefront.CreateCartRequest) (*model.Checkout, error) {
			gotReq = req
			return &model.Checkout{ID: "c1", WebURL: "https://shop/checkouts/c1"}, nil
		},
	})

	_, checkout, err := h.mcpCreateCheckout(context.Background(), nil, CreateCheckoutInput{
		LineItems: []storefront.CartLine{{VariantID: "v1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("mcpCreateCheckout() error = %v", err)
	}
	if checkout.WebURL != "https://shop/checkouts/c1" {
		t.Errorf("checkout = %+v", checkout)
	}
	if len(gotReq.Lines) != 1 || gotReq.Lines[0].VariantID != "v1" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestMCPCreateCheckout_DefaultsCountry(t *testing.T) {
	var gotReq *storefront.CreateCartRequest
	h := newTestHandler(t, &storefront.Mock{
		CreateCartFunc: func(ctx context.Context, req *storefront.CreateCartRequest) (*model.Checkout, error) {
			gotReq = req
			return &model.Checkout{ID: "c1"}, nil
		},
	})

	_, _, err := h.mcpCreateCheckout(context.Background(), nil, CreateCheckoutInput{
		LineItems: []storefront.CartLine{{VariantID: "v1", Quantity: 1}},
		Customer:  &storefront.CustomerInfo{Email: "jo@example.com"},
	})
	if err != nil {
		t.Fatalf("mcpCreateCheckout() error = %v", err)
	}
	// Same default as POST /checkout/create.
	if gotReq.Customer == nil || gotReq.Customer.Country != "US" {
		t.Errorf("customer = %+v, want country defaulted to US", gotReq.Customer)
	}
}

func TestMCPCreateCheckout_CountryPreserved(t *testing.T) {
	var gotReq *storefront.CreateCartRequest
	h := newTestHandler(t, &storefront.Mock{
		CreateCartFunc: func(ctx context.Context, req *storefront.CreateCartRequest) (*model.Checkout, error) {
			gotReq = req
			return &model.Checkout{ID: "c1"}, nil
		},
	})

	_, _, err := h.mcpCreateCheckout(context.Background(), nil, CreateCheckoutInput{
		LineItems: []storefront.CartLine{{VariantID: "v1", Quantity: 1}},
		Customer:  &storefront.CustomerInfo{Email: "jo@example.com", Country: "CA"},
	})
	if err != nil {
		t.Fatalf("mcpCreateCheckout() error = %v", err)
	}
	if gotReq.Customer.Country != "CA" {
		t.Errorf("country = %q, want CA", gotReq.Customer.Country)
	}
}

func TestMCPError_HidesInternalDetails(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{
		ProductsFunc: func(ctx context.Context, first int) ([]model.Product, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	})

	_, _, err := h.mcpSearchProducts(context.Background(), nil, SearchProductsInput{})
	if err == nil {
		t.Fatal("error = nil, want internal error")
	}
	if strings.Contains(err.Error(), "connection refused") {
		t.Errorf("transport detail leaked: %v", err)
	}
}

func TestMCPError_KeepsAPIErrorMessage(t *testing.T) {
	h := newTestHandler(t, &storefront.Mock{
		ProductsFunc: func(ctx context.Context, first int) ([]model.Product, error) {
			return nil, model.NewRateLimitError()
		},
	})

	_, _, err := h.mcpSearchProducts(context.Background(), nil, SearchProductsInput{})
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("error = %v, want rate-limit message", err)
	}
}
