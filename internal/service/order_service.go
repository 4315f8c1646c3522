package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tndshop/internal/cart"
	"tndshop/internal/checkout"
	"tndshop/internal/model"
	"tndshop/internal/pricing"
	"tndshop/internal/store"
)

// orderService implements OrderService.
type orderService struct {
	orders    store.OrderStore
	products  store.ProductStore
	policy    pricing.Policy
	validator checkout.Validator
	mu        *sync.Mutex
	newID     func() string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewOrderService creates a new order service. The mutex is the mutation
// lock shared with the product service: order placement and restocking
// read-modify-write both collections, and the stores have no transactions.
func NewOrderService(
	orders store.OrderStore,
	products store.ProductStore,
	policy pricing.Policy,
	validator checkout.Validator,
	mu *sync.Mutex,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		products:  products,
		policy:    policy,
		validator: validator,
		mu:        mu,
		newID:     func() string { return "order_" + uuid.NewString() },
		now:       time.Now,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Quote prices a cart against the live catalogue without mutating anything.
func (s *orderService) Quote(ctx context.Context, entries []cart.Entry) (*Quote, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products for quote")
		return nil, fmt.Errorf("failed to quote cart: %w", err)
	}

	lines := cart.Materialize(products, entries)
	subtotal := pricing.Subtotal(lines)
	return &Quote{
		Lines:       lines,
		Subtotal:    subtotal,
		DeliveryFee: s.policy.DeliveryFee(subtotal),
		Total:       s.policy.GrandTotal(subtotal),
	}, nil
}

// PlaceOrder validates the checkout form against the cart and, on success,
// snapshots a new order and decrements stock. Validation and both writes
// run under the mutation lock against one catalogue snapshot, so a
// validated order never fails its own decrement.
func (s *orderService) PlaceOrder(ctx context.Context, entries []cart.Entry, form checkout.Form) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products for checkout")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	lines := cart.Materialize(products, entries)
	customer, err := s.validator.Validate(form, lines)
	if err != nil {
		s.logger.Warn().Err(err).Msg("checkout validation failed")
		return nil, err
	}

	subtotal := pricing.Subtotal(lines)
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderItem{
			ID:    line.Product.ID,
			Name:  line.Product.Name,
			Price: line.Product.Price,
			Qty:   line.Quantity,
		}
	}

	order := model.Order{
		ID:            s.newID(),
		Date:          s.now(),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   s.policy.DeliveryFee(subtotal),
		Total:         s.policy.GrandTotal(subtotal),
		PaymentMethod: model.PaymentMethodCOD,
		Status:        model.StatusNew,
		Customer:      customer,
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders for checkout")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Newest first, matching the admin order book.
	orders = append([]model.Order{order}, orders...)
	if err := s.orders.ReplaceAll(ctx, orders); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to write order book")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	for _, item := range order.Items {
		if idx := indexOfProduct(products, item.ID); idx >= 0 {
			products[idx].Stock -= item.Qty
			if products[idx].Stock < 0 {
				products[idx].Stock = 0
			}
		}
	}
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to write stock decrement")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Str("total", order.Total.String()).
		Msg("order placed")

	return &order, nil
}

// List retrieves orders filtered by exact status and a free-text match over
// id, customer name and phone.
func (s *orderService) List(ctx context.Context, status, query string) ([]model.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if status == "" && query == "" {
		return orders, nil
	}

	list := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && string(o.Status) != status {
			continue
		}
		if query != "" {
			hay := strings.ToLower(o.ID + " " + o.Customer.FullName + " " + o.Customer.Phone)
			if !strings.Contains(hay, query) {
				continue
			}
		}
		list = append(list, o)
	}
	return list, nil
}

// SetStatus transitions an order to a new status. Entering Cancelled from
// any other status with restock set re-increments each item's stock by its
// ordered quantity (uncapped) before the status is written. Every other
// transition, including Cancelled to Cancelled, leaves stock alone, so
// repeating a transition has no further side effect.
func (s *orderService) SetStatus(ctx context.Context, id string, status model.OrderStatus, restock bool) (*model.Order, error) {
	if !status.IsValid() {
		return nil, model.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders for status change")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	idx := -1
	for i, o := range orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Debug().Str("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	order := orders[idx]
	if !model.CanTransition(order.Status, status) {
		return nil, model.NewDomainError(model.ErrCodeInvalidStatus,
			fmt.Sprintf("Cannot transition order from %s to %s", order.Status, status))
	}

	if status == model.StatusCancelled && order.Status != model.StatusCancelled && restock {
		products, err := s.products.List(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("order_id", id).Msg("failed to list products for restock")
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		for _, item := range order.Items {
			if i := indexOfProduct(products, item.ID); i >= 0 {
				products[i].Stock += item.Qty
			}
		}
		if err := s.products.ReplaceAll(ctx, products); err != nil {
			s.logger.Error().Err(err).Str("order_id", id).Msg("failed to write restock")
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		s.logger.Info().Str("order_id", id).Msg("cancelled order restocked")
	}

	order.Status = status
	orders[idx] = order
	if err := s.orders.ReplaceAll(ctx, orders); err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to write order book")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", id).
		Str("status", string(status)).
		Bool("restock", restock).
		Msg("order status updated")

	return &order, nil
}

// Stats summarises the order book. Revenue and items sold count Completed
// orders only; the order count covers every status.
func (s *orderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders for stats")
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	stats := model.OrderStats{Revenue: decimal.Zero, Orders: len(orders)}
	for _, o := range orders {
		if o.Status != model.StatusCompleted {
			continue
		}
		stats.Revenue = stats.Revenue.Add(o.Total)
		for _, item := range o.Items {
			stats.ItemsSold += item.Qty
		}
	}
	return &stats, nil
}
