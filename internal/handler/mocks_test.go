package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tndshop/internal/cart"
	"tndshop/internal/checkout"
	"tndshop/internal/model"
	"tndshop/internal/service"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListPublic(ctx context.Context, filter service.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) ListAdmin(ctx context.Context, onlyVisible bool) ([]model.Product, error) {
	args := m.Called(ctx, onlyVisible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Upsert(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id, actionKey string) error {
	args := m.Called(ctx, id, actionKey)
	return args.Error(0)
}

func (m *MockProductService) AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) SetActive(ctx context.Context, id string, active bool) (*model.Product, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Quote(ctx context.Context, entries []cart.Entry) (*service.Quote, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, entries []cart.Entry, form checkout.Form) (*model.Order, error) {
	args := m.Called(ctx, entries, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, status, query string) ([]model.Order, error) {
	args := m.Called(ctx, status, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) SetStatus(ctx context.Context, id string, status model.OrderStatus, restock bool) (*model.Order, error) {
	args := m.Called(ctx, id, status, restock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderStats), args.Error(1)
}

func (m *MockOrderService) ExportCSV(ctx context.Context, status, query string) ([]byte, error) {
	args := m.Called(ctx, status, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
