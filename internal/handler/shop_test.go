package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

func TestShop_LogoAlwaysFromConfig(t *testing.T) {
	mux := newTestMux(t, &storefront.Mock{
		ShopFunc: func(ctx context.Context) (*model.Shop, error) {
			return &model.Shop{Name: "Upstream Name", LogoURL: "https://upstream/logo.png"}, nil
		},
	})

	rec := doRequest(t, mux, http.MethodGet, "/shop", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var shop model.Shop
	decodeBody(t, rec, &shop)
	if shop.Name != "Upstream Name" {
		t.Errorf("Name = %q, want upstream name", shop.Name)
	}
	if shop.LogoURL != "https://cdn/logo.png" {
		t.Errorf("LogoURL = %q, want configured logo", shop.LogoURL)
	}
}

func TestShop_FallbackOnUpstreamError(t *testing.T) {
	mux := newTestMux(t, &storefront.Mock{
		ShopFunc: func(ctx context.Context) (*model.Shop, error) {
			return nil, model.NewUpstreamError(errors.New("boom"))
		},
	})

	rec := doRequest(t, mux, http.MethodGet, "/shop", "", "")
	// The page chrome must render even when the upstream is down.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var shop model.Shop
	decodeBody(t, rec, &shop)
	if shop.Name != "Fallback Store" {
		t.Errorf("Name = %q, want configured fallback", shop.Name)
	}
}

func TestContact_Success(t *testing.T) {
	mux := newTestMux(t, &storefront.Mock{})

	rec := doRequest(t, mux, http.MethodPost, "/contact", "",
		`{"name":"Jo","email":"jo@example.com","subject":"Hello","message":"Hi there"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK bool `json:"ok"`
	}
	decodeBody(t, rec, &resp)
	if !resp.OK {
		t.Errorf("response = %+v", resp)
	}
}

func TestContact_Validation(t *testing.T) {
	mux := newTestMux(t, &storefront.Mock{})

	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{"name":"Jo","email":"jo@example.com","subject":"Hello"}`},
		{"whitespace only", `{"name":"  ","email":"jo@example.com","subject":"Hi","message":"x"}`},
		{"bad email", `{"name":"Jo","email":"not-an-email","subject":"Hi","message":"x"}`},
	}
	for _, tt := range tests {
		rec := doRequest(t, mux, http.MethodPost, "/contact", "", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}
