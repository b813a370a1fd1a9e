package shopify

import "encoding/json"

// Wire types mirroring the Storefront GraphQL response shapes. These stay
// private to this package; everything crossing the boundary is flattened
// into model types by transform.go.

// graphQLRequest is the POST body for every Storefront API call.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the envelope every Storefront API response arrives in.
// Data is kept raw so each operation can decode into its own shape.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// edge and connection model the Relay-style pagination wrappers the
// Storefront API puts around every list.
type edge[T any] struct {
	Node T `json:"node"`
}

type connection[T any] struct {
	Edges []edge[T] `json:"edges"`
}

// moneyV2 is a decimal amount plus ISO-4217 currency code. Amounts arrive
// as strings ("99.00"); model.ParseCents converts them to minor units.
type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type selectedOptionNode struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantNode struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	SKU               string               `json:"sku"`
	Price             moneyV2              `json:"price"`
	CompareAtPrice    *moneyV2             `json:"compareAtPrice"`
	AvailableForSale  bool                 `json:"availableForSale"`
	QuantityAvailable *int                 `json:"quantityAvailable"`
	SelectedOptions   []selectedOptionNode `json:"selectedOptions"`
	Image             *imageNode           `json:"image"`
	Weight            float64              `json:"weight"`
	WeightUnit        string               `json:"weightUnit"`
}

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Handle      string `json:"handle"`
	PriceRange  struct {
		MinVariantPrice moneyV2 `json:"minVariantPrice"`
		MaxVariantPrice moneyV2 `json:"maxVariantPrice"`
	} `json:"priceRange"`
	Images   connection[imageNode]   `json:"images"`
	Variants connection[variantNode] `json:"variants"`
}

type productsData struct {
	Products connection[productNode] `json:"products"`
}

type productData struct {
	Product *productNode `json:"product"`
}

type shopData struct {
	Shop struct {
		Name string `json:"name"`
	} `json:"shop"`
}

type customerNode struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AcceptsMarketing bool   `json:"acceptsMarketing"`
}

// userErrorNode is the per-field error shape Shopify mutations return
// instead of (or alongside) top-level GraphQL errors.
type userErrorNode struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

type customerCreateData struct {
	CustomerCreate struct {
		Customer           *customerNode   `json:"customer"`
		CustomerUserErrors []userErrorNode `json:"customerUserErrors"`
	} `json:"customerCreate"`
}

type accessTokenNode struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"` // RFC 3339
}

type accessTokenCreateData struct {
	CustomerAccessTokenCreate struct {
		CustomerAccessToken *accessTokenNode `json:"customerAccessToken"`
		CustomerUserErrors  []userErrorNode  `json:"customerUserErrors"`
	} `json:"customerAccessTokenCreate"`
}

type accessTokenDeleteData struct {
	CustomerAccessTokenDelete struct {
		DeletedAccessToken *string         `json:"deletedAccessToken"`
		UserErrors         []userErrorNode `json:"userErrors"`
	} `json:"customerAccessTokenDelete"`
}

type customerData struct {
	Customer *customerNode `json:"customer"`
}

type addressNode struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

type addressesData struct {
	Customer *struct {
		Addresses      connection[addressNode] `json:"addresses"`
		DefaultAddress *struct {
			ID string `json:"id"`
		} `json:"defaultAddress"`
	} `json:"customer"`
}

type addressCreateData struct {
	CustomerAddressCreate struct {
		CustomerAddress    *addressNode    `json:"customerAddress"`
		CustomerUserErrors []userErrorNode `json:"customerUserErrors"`
	} `json:"customerAddressCreate"`
}

type addressUpdateData struct {
	CustomerAddressUpdate struct {
		CustomerAddress    *addressNode    `json:"customerAddress"`
		CustomerUserErrors []userErrorNode `json:"customerUserErrors"`
	} `json:"customerAddressUpdate"`
}

type addressDeleteData struct {
	CustomerAddressDelete struct {
		DeletedCustomerAddressID *string         `json:"deletedCustomerAddressId"`
		CustomerUserErrors       []userErrorNode `json:"customerUserErrors"`
	} `json:"customerAddressDelete"`
}

type orderLineItemNode struct {
	Title              string  `json:"title"`
	Quantity           int     `json:"quantity"`
	OriginalTotalPrice moneyV2 `json:"originalTotalPrice"`
	Variant            *struct {
		ID    string     `json:"id"`
		Title string     `json:"title"`
		Image *imageNode `json:"image"`
	} `json:"variant"`
}

type orderNode struct {
	ID                 string                        `json:"id"`
	Name               string                        `json:"name"`
	OrderNumber        int                           `json:"orderNumber"`
	ProcessedAt        string                        `json:"processedAt"` // RFC 3339
	TotalPrice         moneyV2                       `json:"totalPrice"`
	SubtotalPrice      moneyV2                       `json:"subtotalPrice"`
	TotalTax           moneyV2                       `json:"totalTax"`
	TotalShippingPrice moneyV2                       `json:"totalShippingPrice"`
	FulfillmentStatus  string                        `json:"fulfillmentStatus"`
	FinancialStatus    string                        `json:"financialStatus"`
	ShippingAddress    *addressNode                  `json:"shippingAddress"`
	BillingAddress     *addressNode                  `json:"billingAddress"`
	LineItems          connection[orderLineItemNode] `json:"lineItems"`
}

type ordersData struct {
	Customer *struct {
		Orders connection[orderNode] `json:"orders"`
	} `json:"customer"`
}

type cartNode struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          struct {
		TotalAmount moneyV2 `json:"totalAmount"`
	} `json:"cost"`
}

type cartCreateData struct {
	CartCreate struct {
		Cart       *cartNode       `json:"cart"`
		UserErrors []userErrorNode `json:"userErrors"`
	} `json:"cartCreate"`
}
