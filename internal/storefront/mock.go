package storefront

import (
	"context"

	"storefront-api/internal/model"
)

// Mock implements API with overridable function fields for testing.
// Unset functions return zero values.
type Mock struct {
	ProductsFunc          func(ctx context.Context, first int) ([]model.Product, error)
	ProductByHandleFunc   func(ctx context.Context, handle string) (*model.Product, error)
	ShopFunc              func(ctx context.Context) (*model.Shop, error)
	CreateCustomerFunc    func(ctx context.Context, in CustomerInput) (*model.Customer, error)
	CreateAccessTokenFunc func(ctx context.Context, email, password string) (*model.AccessToken, error)
	DeleteAccessTokenFunc func(ctx context.Context, token string) error
	CustomerFunc          func(ctx context.Context, token string) (*model.Customer, error)
	AddressesFunc         func(ctx context.Context, token string) ([]model.Address, error)
	CreateAddressFunc     func(ctx context.Context, token string, in AddressInput) (*model.Address, error)
	UpdateAddressFunc     func(ctx context.Context, token, id string, in AddressInput) (*model.Address, error)
	DeleteAddressFunc     func(ctx context.Context, token, id string) error
	OrdersFunc            func(ctx context.Context, token string, first int) ([]model.Order, error)
	OrderFunc             func(ctx context.Context, token, id string) (*model.OrderDetail, error)
	CreateCartFunc        func(ctx context.Context, req *CreateCartRequest) (*model.Checkout, error)
}

func (m *Mock) Products(ctx context.Context, first int) ([]model.Product, error) {
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx, first)
	}
	return nil, nil
}

func (m *Mock) ProductByHandle(ctx context.Context, handle string) (*model.Product, error) {
	if m.ProductByHandleFunc != nil {
		return m.ProductByHandleFunc(ctx, handle)
	}
	return nil, nil
}

func (m *Mock) Shop(ctx context.Context) (*model.Shop, error) {
	if m.ShopFunc != nil {
		return m.ShopFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) CreateCustomer(ctx context.Context, in CustomerInput) (*model.Customer, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, in)
	}
	return nil, nil
}

func (m *Mock) CreateAccessToken(ctx context.Context, email, password string) (*model.AccessToken, error) {
	if m.CreateAccessTokenFunc != nil {
		return m.CreateAccessTokenFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *Mock) DeleteAccessToken(ctx context.Context, token string) error {
	if m.DeleteAccessTokenFunc != nil {
		return m.DeleteAccessTokenFunc(ctx, token)
	}
	return nil
}

func (m *Mock) Customer(ctx context.Context, token string) (*model.Customer, error) {
	if m.CustomerFunc != nil {
		return m.CustomerFunc(ctx, token)
	}
	return nil, nil
}

func (m *Mock) Addresses(ctx context.Context, token string) ([]model.Address, error) {
	if m.AddressesFunc != nil {
		return m.AddressesFunc(ctx, token)
	}
	return nil, nil
}

func (m *Mock) CreateAddress(ctx context.Context, token string, in AddressInput) (*model.Address, error) {
	if m.CreateAddressFunc != nil {
		return m.CreateAddressFunc(ctx, token, in)
	}
	return nil, nil
}

func (m *Mock) UpdateAddress(ctx context.Context, token, id string, in AddressInput) (*model.Address, error) {
	if m.UpdateAddressFunc != nil {
		return m.UpdateAddressFunc(ctx, token, id, in)
	}
	return nil, nil
}

func (m *Mock) DeleteAddress(ctx context.Context, token, id string) error {
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(ctx, token, id)
	}
	return nil
}

func (m *Mock) Orders(ctx context.Context, token string, first int) ([]model.Order, error) {
	if m.OrdersFunc != nil {
		return m.OrdersFunc(ctx, token, first)
	}
	return nil, nil
}

func (m *Mock) Order(ctx context.Context, token, id string) (*model.OrderDetail, error) {
	if m.OrderFunc != nil {
		return m.OrderFunc(ctx, token, id)
	}
	return nil, nil
}

func (m *Mock) CreateCart(ctx context.Context, req *CreateCartRequest) (*model.Checkout, error) {
	if m.CreateCartFunc != nil {
		return m.CreateCartFunc(ctx, req)
	}
	return nil, nil
}
