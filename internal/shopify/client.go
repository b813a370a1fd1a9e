// Package shopify implements the upstream Storefront GraphQL API client.
//
// The client is stateless: the store credential is attached to every request
// and customer-scoped calls take the shopper's access token as an argument.
// Neither credential is ever written to logs.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront-api/internal/model"
	"storefront-api/internal/reconcile"
	"storefront-api/internal/storefront"
	"storefront-api/internal/transport"
)

// defaultAPIVersion is the Storefront API version the client pins when the
// config does not specify one. Shopify versions are date-based and supported
// for a year after release.
const defaultAPIVersion = "2024-01"

// userAgent identifies this client to upstream servers.
const userAgent = "Storefront-API/1.0"

const (
	defaultProductPageSize = 50
	variantPageSize        = 250
	// orderReconcilePageSize is how many orders a detail lookup scans.
	orderReconcilePageSize = 250
)

// accessTokenHeader carries the store credential on every request.
const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

// Config holds Storefront API client configuration.
type Config struct {
	// StoreDomain is the myshopify domain, e.g. "example.myshopify.com".
	StoreDomain string
	// AccessToken is the storefront (public) API credential.
	AccessToken string
	// APIVersion overrides defaultAPIVersion when set.
	APIVersion string
	// BaseURL overrides the derived GraphQL endpoint. Tests point this at an
	// httptest server.
	BaseURL string
	// HTTPClient overrides the default client (Chrome TLS transport, 30s timeout).
	HTTPClient *http.Client
	// Logger receives reconciliation warnings. Optional.
	Logger *slog.Logger
}

// Client talks to the Storefront GraphQL API. It implements storefront.API.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
	logger      *slog.Logger
}

var _ storefront.API = (*Client)(nil)

// New creates a Storefront API client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.StoreDomain == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("store domain is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("storefront access token is required")
	}

	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json",
			strings.TrimSuffix(cfg.StoreDomain, "/"), version)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Chrome TLS fingerprint transport avoids JA3-based rate limiting.
		// See internal/transport for rationale.
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport.NewChromeTransport(30 * time.Second),
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		httpClient:  httpClient,
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}, nil
}

// do executes one GraphQL operation and decodes the data payload into out.
// Variables are always passed separately from the query document.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(accessTokenHeader, c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return model.NewUnauthorizedError("storefront API authentication failed")
		case http.StatusTooManyRequests:
			return model.NewRateLimitError()
		default:
			return model.NewUpstreamError(fmt.Errorf("status %d", resp.StatusCode))
		}
	}

	var env graphQLResponse
	if err := json.Unmarshal(respBody, &env); err != nil {
		return model.NewUpstreamError(fmt.Errorf("parsing response: %w", err))
	}

	if len(env.Errors) > 0 {
		messages := make([]string, len(env.Errors))
		for i, e := range env.Errors {
			messages[i] = e.Message
		}
		return model.NewGraphQLError(strings.Join(messages, ", "))
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return model.NewUpstreamError(fmt.Errorf("parsing data: %w", err))
		}
	}
	return nil
}

// === Catalog ===

// Products fetches a page of the catalog in listing order. The 1-based
// position of each product is preserved as its NumericID.
func (c *Client) Products(ctx context.Context, first int) ([]model.Product, error) {
	if first <= 0 {
		first = defaultProductPageSize
	}

	var data productsData
	err := c.do(ctx, productsQuery, map[string]any{
		"first":         first,
		"variantsFirst": variantPageSize,
	}, &data)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(data.Products.Edges))
	for i, e := range data.Products.Edges {
		products = append(products, productFromNode(e.Node, i+1))
	}
	return products, nil
}

// ProductByHandle fetches a single product. Returns nil when the handle
// does not exist.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*model.Product, error) {
	var data productData
	err := c.do(ctx, productQuery, map[string]any{
		"handle":        handle,
		"variantsFirst": variantPageSize,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}
	p := productFromNode(*data.Product, 0)
	return &p, nil
}

// Shop fetches store metadata.
func (c *Client) Shop(ctx context.Context) (*model.Shop, error) {
	var data shopData
	if err := c.do(ctx, shopQuery, nil, &data); err != nil {
		return nil, err
	}
	return &model.Shop{Name: data.Shop.Name}, nil
}

// === Customer auth ===

// CreateCustomer registers a new customer account.
func (c *Client) CreateCustomer(ctx context.Context, in storefront.CustomerInput) (*model.Customer, error) {
	input := map[string]any{
		"firstName":        in.FirstName,
		"lastName":         in.LastName,
		"email":            in.Email,
		"password":         in.Password,
		"acceptsMarketing": in.AcceptsMarketing,
	}
	if in.Phone != "" {
		input["phone"] = in.Phone
	}

	var data customerCreateData
	err := c.do(ctx, customerCreateMutation, map[string]any{"input": input}, &data)
	if err != nil {
		return nil, err
	}

	if errs := data.CustomerCreate.CustomerUserErrors; len(errs) > 0 {
		return nil, model.NewGraphQLError(registrationErrorMessage(errs))
	}
	if data.CustomerCreate.Customer == nil {
		return nil, model.NewGraphQLError("failed to create customer")
	}

	customer := customerFromNode(*data.CustomerCreate.Customer)
	return &customer, nil
}

// registrationErrorMessage maps Shopify user-error codes onto messages a
// shopper can act on.
func registrationErrorMessage(errs []userErrorNode) string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Code {
		case "TAKEN":
			messages = append(messages,
				"This email is already registered. Please use a different email or try logging in.")
		case "INVALID":
			field := "input"
			if len(e.Field) > 0 {
				field = strings.Join(e.Field, ", ")
			}
			messages = append(messages, fmt.Sprintf("Invalid %s: %s", field, e.Message))
		default:
			if e.Message != "" {
				messages = append(messages, e.Message)
			} else {
				messages = append(messages, fmt.Sprintf("Error: %s", e.Code))
			}
		}
	}
	if len(messages) == 0 {
		return "failed to create customer"
	}
	return strings.Join(messages, " ")
}

// CreateAccessToken exchanges credentials for a customer access token.
// A user error from the mutation is reported as 401, not 502: wrong
// credentials are the shopper's problem, not the upstream's.
func (c *Client) CreateAccessToken(ctx context.Context, email, password string) (*model.AccessToken, error) {
	var data accessTokenCreateData
	err := c.do(ctx, accessTokenCreateMutation, map[string]any{
		"input": map[string]any{"email": email, "password": password},
	}, &data)
	if err != nil {
		return nil, err
	}

	if errs := data.CustomerAccessTokenCreate.CustomerUserErrors; len(errs) > 0 {
		msg := errs[0].Message
		if msg == "" {
			msg = "Invalid email or password"
		}
		return nil, model.NewUnauthorizedError(msg)
	}
	token := data.CustomerAccessTokenCreate.CustomerAccessToken
	if token == nil {
		return nil, model.NewGraphQLError("failed to create access token")
	}

	expiresAt, err := time.Parse(time.RFC3339, token.ExpiresAt)
	if err != nil {
		return nil, model.NewUpstreamError(fmt.Errorf("parsing token expiry: %w", err))
	}
	return &model.AccessToken{Token: token.AccessToken, ExpiresAt: expiresAt}, nil
}

// DeleteAccessToken revokes a customer access token.
func (c *Client) DeleteAccessToken(ctx context.Context, token string) error {
	var data accessTokenDeleteData
	err := c.do(ctx, accessTokenDeleteMutation, map[string]any{
		"customerAccessToken": token,
	}, &data)
	if err != nil {
		return err
	}
	if errs := data.CustomerAccessTokenDelete.UserErrors; len(errs) > 0 {
		msg := errs[0].Message
		if msg == "" {
			msg = "failed to delete access token"
		}
		return model.NewGraphQLError(msg)
	}
	return nil
}

// Customer fetches the customer the token belongs to. Returns nil when the
// token is invalid or expired; the upstream signals that with a null
// customer, not an error.
func (c *Client) Customer(ctx context.Context, token string) (*model.Customer, error) {
	var data customerData
	err := c.do(ctx, customerQuery, map[string]any{"customerAccessToken": token}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}
	customer := customerFromNode(*data.Customer)
	return &customer, nil
}

// === Account ===

// Addresses lists the customer's saved addresses, flagging the default one.
func (c *Client) Addresses(ctx context.Context, token string) ([]model.Address, error) {
	var data addressesData
	err := c.do(ctx, addressesQuery, map[string]any{"customerAccessToken": token}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}

	var defaultID string
	if data.Customer.DefaultAddress != nil {
		defaultID = data.Customer.DefaultAddress.ID
	}

	addresses := make([]model.Address, 0, len(data.Customer.Addresses.Edges))
	for _, e := range data.Customer.Addresses.Edges {
		addresses = append(addresses, addressFromNode(e.Node, defaultID))
	}
	return addresses, nil
}

func addressInputVariables(in storefront.AddressInput) map[string]any {
	address := map[string]any{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"address1":  in.Address1,
		"city":      in.City,
		"province":  in.Province,
		"zip":       in.Zip,
		"country":   in.Country,
	}
	if in.Address2 != "" {
		address["address2"] = in.Address2
	}
	if in.Phone != "" {
		address["phone"] = in.Phone
	}
	return address
}

// CreateAddress adds a new address to the customer's address book.
func (c *Client) CreateAddress(ctx context.Context, token string, in storefront.AddressInput) (*model.Address, error) {
	var data addressCreateData
	err := c.do(ctx, addressCreateMutation, map[string]any{
		"customerAccessToken": token,
		"address":             addressInputVariables(in),
	}, &data)
	if err != nil {
		return nil, err
	}
	if errs := data.CustomerAddressCreate.CustomerUserErrors; len(errs) > 0 {
		return nil, model.NewGraphQLError(userErrorMessages(errs, "failed to create address"))
	}
	if data.CustomerAddressCreate.CustomerAddress == nil {
		return nil, model.NewGraphQLError("failed to create address")
	}
	address := addressFromNode(*data.CustomerAddressCreate.CustomerAddress, "")
	return &address, nil
}

// UpdateAddress replaces an existing address.
func (c *Client) UpdateAddress(ctx context.Context, token, id string, in storefront.AddressInput) (*model.Address, error) {
	var data addressUpdateData
	err := c.do(ctx, addressUpdateMutation, map[string]any{
		"customerAccessToken": token,
		"id":                  id,
		"address":             addressInputVariables(in),
	}, &data)
	if err != nil {
		return nil, err
	}
	if errs := data.CustomerAddressUpdate.CustomerUserErrors; len(errs) > 0 {
		return nil, model.NewGraphQLError(userErrorMessages(errs, "failed to update address"))
	}
	if data.CustomerAddressUpdate.CustomerAddress == nil {
		return nil, model.NewGraphQLError("failed to update address")
	}
	address := addressFromNode(*data.CustomerAddressUpdate.CustomerAddress, "")
	return &address, nil
}

// DeleteAddress removes an address from the customer's address book.
func (c *Client) DeleteAddress(ctx context.Context, token, id string) error {
	var data addressDeleteData
	err := c.do(ctx, addressDeleteMutation, map[string]any{
		"customerAccessToken": token,
		"id":                  id,
	}, &data)
	if err != nil {
		return err
	}
	if errs := data.CustomerAddressDelete.CustomerUserErrors; len(errs) > 0 {
		return model.NewGraphQLError(userErrorMessages(errs, "failed to delete address"))
	}
	return nil
}

func userErrorMessages(errs []userErrorNode, fallback string) string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	if len(messages) == 0 {
		return fallback
	}
	return strings.Join(messages, ", ")
}

// Orders lists the customer's orders, newest first per upstream ordering.
func (c *Client) Orders(ctx context.Context, token string, first int) ([]model.Order, error) {
	if first <= 0 {
		first = 10
	}

	var data ordersData
	err := c.do(ctx, customerOrdersQuery, map[string]any{
		"customerAccessToken": token,
		"first":               first,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}

	orders := make([]model.Order, 0, len(data.Customer.Orders.Edges))
	for _, e := range data.Customer.Orders.Edges {
		orders = append(orders, orderFromNode(e.Node))
	}
	return orders, nil
}

// Order looks up a single order by the identifier taken from the URL.
//
// The Storefront API has no direct order-by-ID query for customer tokens, so
// this fetches a page of the customer's orders and reconciles the identifier
// against it (see internal/reconcile). Returns nil when no order matches.
func (c *Client) Order(ctx context.Context, token, id string) (*model.OrderDetail, error) {
	var data ordersData
	err := c.do(ctx, customerOrderDetailQuery, map[string]any{
		"customerAccessToken": token,
		"first":               orderReconcilePageSize,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}

	edges := data.Customer.Orders.Edges
	candidates := make([]reconcile.Candidate, len(edges))
	for i, e := range edges {
		candidates[i] = reconcile.Candidate{
			ID:          e.Node.ID,
			OrderNumber: e.Node.OrderNumber,
		}
	}

	match := reconcile.Find(id, candidates)
	if match == nil {
		return nil, nil
	}
	if match.Ambiguous {
		// The identifier is safe to log; it came from the request URL.
		c.logger.Warn("ambiguous order identifier, returning first match",
			"identifier", id,
			"strategy", match.Strategy,
		)
	}

	detail := orderDetailFromNode(edges[match.Index].Node)
	return &detail, nil
}

// === Checkout hand-off ===

// CreateCart creates an upstream cart for checkout hand-off. Buyer identity
// rides along as cart buyerIdentity (email) and underscore-prefixed cart
// attributes the checkout theme reads for prefill.
func (c *Client) CreateCart(ctx context.Context, req *storefront.CreateCartRequest) (*model.Checkout, error) {
	if req == nil || len(req.Lines) == 0 {
		return nil, model.NewValidationError("lineItems", "at least one item required")
	}

	lines := make([]map[string]any, len(req.Lines))
	for i, line := range req.Lines {
		if line.VariantID == "" {
			return nil, model.NewValidationError("lineItems", "variantId is required")
		}
		if line.Quantity <= 0 {
			return nil, model.NewValidationError("lineItems", "quantity must be positive")
		}
		lines[i] = map[string]any{
			"merchandiseId": line.VariantID,
			"quantity":      line.Quantity,
		}
	}

	input := map[string]any{"lines": lines}

	if info := req.Customer; info != nil {
		if info.Email != "" {
			input["buyerIdentity"] = map[string]any{"email": info.Email}
		}
		if attributes := cartAttributes(info); len(attributes) > 0 {
			input["attributes"] = attributes
		}
	}

	var data cartCreateData
	err := c.do(ctx, cartCreateMutation, map[string]any{"input": input}, &data)
	if err != nil {
		return nil, err
	}

	if errs := data.CartCreate.UserErrors; len(errs) > 0 {
		return nil, model.NewGraphQLError(userErrorMessages(errs, "failed to create cart"))
	}
	if data.CartCreate.Cart == nil {
		return nil, model.NewGraphQLError("failed to create cart")
	}

	checkout := checkoutFromCart(*data.CartCreate.Cart)
	return &checkout, nil
}

// cartAttributes maps buyer info onto the underscore-prefixed cart attribute
// keys the checkout expects. Underscore keys are hidden from the shopper.
func cartAttributes(info *storefront.CustomerInfo) []map[string]string {
	pairs := []struct{ key, value string }{
		{"_customer_first_name", info.FirstName},
		{"_customer_last_name", info.LastName},
		{"_shipping_address1", info.Address1},
		{"_shipping_address2", info.Address2},
		{"_shipping_city", info.City},
		{"_shipping_province", info.Province},
		{"_shipping_zip", info.Zip},
		{"_shipping_country", info.Country},
		{"_customer_phone", info.Phone},
	}

	var attributes []map[string]string
	for _, p := range pairs {
		if p.value != "" {
			attributes = append(attributes, map[string]string{"key": p.key, "value": p.value})
		}
	}
	return attributes
}
