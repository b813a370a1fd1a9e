// MCP transport handler using the official MCP Go SDK.
// Exposes catalog browsing and checkout hand-off as MCP tools so agents can
// shop the store without scraping the REST surface.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"storefront-api/internal/model"
	"storefront-api/internal/storefront"
)

// === MCP Tool Input/Output Types ===

// SearchProductsInput is the input schema for the search_products tool.
type SearchProductsInput struct {
	First int `json:"first,omitempty" jsonschema:"maximum number of products to return"`
}

// SearchProductsOutput wraps the product list for the tool result.
type SearchProductsOutput struct {
	Products []model.Product `json:"products"`
}

// GetProductInput is the input schema for the get_product tool.
type GetProductInput struct {
	Handle string `json:"handle" jsonschema:"product URL handle,required"`
}

// GetShopInput is the (empty) input schema for the get_shop tool.
type GetShopInput struct{}

// CreateCheckoutInput is the input schema for the create_checkout tool.
type CreateCheckoutInput struct {
	LineItems []storefront.CartLine    `json:"lineItems" jsonschema:"variant and quantity pairs,required"`
	Customer  *storefront.CustomerInfo `json:"customerInfo,omitempty" jsonschema:"optional buyer identity for checkout prefill"`
}

// NewMCPServer creates an MCP server with storefront tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "storefront-api",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Storefront operations. Browse the catalog with " +
				"search_products and get_product, then create_checkout to get a " +
				"hosted checkout URL. Payment happens on the hosted page, not here.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_products",
		Description: "List products in the store catalog with prices, variants, and availability.",
	}, h.mcpSearchProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get a single product by its URL handle, including all variants.",
	}, h.mcpGetProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shop",
		Description: "Get store name and branding.",
	}, h.mcpGetShop)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_checkout",
		Description: "Create a checkout from variant IDs and quantities. Returns a hosted checkout URL to complete payment in a browser.",
	}, h.mcpCreateCheckout)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpSearchProducts(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, *SearchProductsOutput, error) {
	products, err := h.api.Products(ctx, input.First)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return nil, &SearchProductsOutput{Products: products}, nil
}

func (h *Handler) mcpGetProduct(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetProductInput,
) (*mcp.CallToolResult, *model.Product, error) {
	if input.Handle == "" {
		return nil, nil, fmt.Errorf("handle is required")
	}

	product, err := h.api.ProductByHandle(ctx, input.Handle)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	if product == nil {
		return nil, nil, fmt.Errorf("product not found: %s", input.Handle)
	}
	return nil, product, nil
}

func (h *Handler) mcpGetShop(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetShopInput,
) (*mcp.CallToolResult, *model.Shop, error) {
	shop, err := h.api.Shop(ctx)
	if err != nil || shop == nil {
		// Same fallback behavior as GET /shop.
		fallback := h.fallbackShop
		return nil, &fallback, nil
	}
	shop.LogoURL = h.fallbackShop.LogoURL
	return nil, shop, nil
}

func (h *Handler) mcpCreateCheckout(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CreateCheckoutInput,
) (*mcp.CallToolResult, *model.Checkout, error) {
	if len(input.LineItems) == 0 {
		return nil, nil, fmt.Errorf("lineItems is required")
	}

	cartReq := &storefront.CreateCartRequest{
		Lines:    input.LineItems,
		Customer: input.Customer,
	}
	applyCheckoutDefaults(cartReq)

	checkout, err := h.api.CreateCart(ctx, cartReq)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	return nil, checkout, nil
}

// mcpError converts upstream errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
