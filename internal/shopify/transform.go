package shopify

import (
	"time"

	"storefront-api/internal/model"
)

// Flattening from GraphQL wire shapes to the view models. This is the only
// place edge/node unwrapping happens; handlers never see upstream shapes.

// productFromNode flattens a product. position is the 1-based index of the
// product in the listing, kept as NumericID for numeric product URLs.
func productFromNode(n productNode, position int) model.Product {
	minPrice := n.PriceRange.MinVariantPrice

	var image string
	images := make([]string, 0, len(n.Images.Edges))
	for _, e := range n.Images.Edges {
		images = append(images, e.Node.URL)
	}
	if len(images) > 0 {
		image = images[0]
	}

	inStock := false
	variants := make([]model.Variant, 0, len(n.Variants.Edges))
	for _, e := range n.Variants.Edges {
		if e.Node.AvailableForSale {
			inStock = true
		}
		variants = append(variants, variantFromNode(e.Node))
	}

	description := n.Description
	if description == "" {
		description = "No description available."
	}
	short, long := splitDescription(description)

	return model.Product{
		ID:              n.ID,
		NumericID:       position,
		Handle:          n.Handle,
		Name:            n.Title,
		Price:           model.FormatMinor(model.ParseCents(minPrice.Amount), minPrice.CurrencyCode),
		PriceMinor:      model.ParseCents(minPrice.Amount),
		Currency:        minPrice.CurrencyCode,
		Description:     short,
		LongDescription: long,
		Image:           image,
		Images:          images,
		InStock:         inStock,
		Variants:        variants,
	}
}

// splitDescription treats the first blank-line-separated paragraph as the
// short description and the full text as the long one.
func splitDescription(s string) (short, long string) {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '\n' && s[i+1] == '\n' {
			return s[:i], s
		}
	}
	return s, s
}

func variantFromNode(n variantNode) model.Variant {
	v := model.Variant{
		ID:                n.ID,
		Title:             n.Title,
		SKU:               n.SKU,
		Price:             model.FormatMinor(model.ParseCents(n.Price.Amount), n.Price.CurrencyCode),
		PriceMinor:        model.ParseCents(n.Price.Amount),
		Currency:          n.Price.CurrencyCode,
		AvailableForSale:  n.AvailableForSale,
		QuantityAvailable: n.QuantityAvailable,
		Weight:            n.Weight,
		WeightUnit:        n.WeightUnit,
	}
	if n.CompareAtPrice != nil {
		v.CompareAtPrice = model.FormatMinor(
			model.ParseCents(n.CompareAtPrice.Amount), n.CompareAtPrice.CurrencyCode)
	}
	if n.Image != nil {
		v.ImageURL = n.Image.URL
	}
	for _, o := range n.SelectedOptions {
		v.SelectedOptions = append(v.SelectedOptions, model.SelectedOption{
			Name:  o.Name,
			Value: o.Value,
		})
	}
	return v
}

func customerFromNode(n customerNode) model.Customer {
	return model.Customer{
		ID:               n.ID,
		FirstName:        n.FirstName,
		LastName:         n.LastName,
		Email:            n.Email,
		Phone:            n.Phone,
		AcceptsMarketing: n.AcceptsMarketing,
	}
}

// addressFromNode flattens an address. defaultID is the customer's default
// address ID, used to set the IsDefault flag; pass "" when unknown.
func addressFromNode(n addressNode, defaultID string) model.Address {
	return model.Address{
		ID:        n.ID,
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Address1:  n.Address1,
		Address2:  n.Address2,
		City:      n.City,
		Province:  n.Province,
		Zip:       n.Zip,
		Country:   n.Country,
		Phone:     n.Phone,
		IsDefault: defaultID != "" && n.ID == defaultID,
	}
}

func orderFromNode(n orderNode) model.Order {
	// Upstream calls this processedAt; clients know it as createdAt.
	createdAt, _ := time.Parse(time.RFC3339, n.ProcessedAt)

	lineItems := make([]model.OrderLineItem, 0, len(n.LineItems.Edges))
	for _, e := range n.LineItems.Edges {
		item := model.OrderLineItem{
			Title:    e.Node.Title,
			Quantity: e.Node.Quantity,
			Price:    e.Node.OriginalTotalPrice.Amount,
			Currency: e.Node.OriginalTotalPrice.CurrencyCode,
		}
		if e.Node.Variant != nil {
			item.VariantTitle = e.Node.Variant.Title
			if e.Node.Variant.Image != nil {
				item.ImageURL = e.Node.Variant.Image.URL
			}
		}
		lineItems = append(lineItems, item)
	}

	return model.Order{
		ID:                n.ID,
		Name:              n.Name,
		OrderNumber:       n.OrderNumber,
		CreatedAt:         createdAt,
		TotalPrice:        n.TotalPrice.Amount,
		Currency:          n.TotalPrice.CurrencyCode,
		FulfillmentStatus: n.FulfillmentStatus,
		FinancialStatus:   n.FinancialStatus,
		LineItems:         lineItems,
	}
}

func orderDetailFromNode(n orderNode) model.OrderDetail {
	detail := model.OrderDetail{
		Order:              orderFromNode(n),
		SubtotalPrice:      n.SubtotalPrice.Amount,
		TotalTax:           n.TotalTax.Amount,
		TotalShippingPrice: n.TotalShippingPrice.Amount,
	}
	if n.ShippingAddress != nil {
		addr := addressFromNode(*n.ShippingAddress, "")
		detail.ShippingAddress = &addr
	}
	if n.BillingAddress != nil {
		addr := addressFromNode(*n.BillingAddress, "")
		detail.BillingAddress = &addr
	}
	return detail
}

func checkoutFromCart(n cartNode) model.Checkout {
	return model.Checkout{
		ID:     n.ID,
		WebURL: n.CheckoutURL,
		TotalPrice: model.Price{
			Amount:       n.Cost.TotalAmount.Amount,
			CurrencyCode: n.Cost.TotalAmount.CurrencyCode,
		},
	}
}
