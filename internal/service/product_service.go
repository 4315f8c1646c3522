package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tndshop/internal/auth"
	"tndshop/internal/model"
	"tndshop/internal/store"
)

// productService implements ProductService.
type productService struct {
	products       store.ProductStore
	actionVerifier auth.Verifier
	mu             *sync.Mutex
	newID          func() string
	now            func() time.Time
	logger         zerolog.Logger
}

// NewProductService creates a new product service. The mutex serializes
// read-modify-write cycles against the catalogue and is shared with the
// order service, since order placement mutates the catalogue too.
func NewProductService(
	products store.ProductStore,
	actionVerifier auth.Verifier,
	mu *sync.Mutex,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		products:       products,
		actionVerifier: actionVerifier,
		mu:             mu,
		newID:          func() string { return "prod_" + uuid.NewString() },
		now:            time.Now,
		logger:         logger.With().Str("service", "product").Logger(),
	}
}

// ListPublic retrieves active products, filtered and sorted for the shop page.
func (s *productService) ListPublic(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	list := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !p.Active {
			continue
		}
		if filter.Category != "" && category(p) != filter.Category {
			continue
		}
		if query != "" {
			hay := strings.ToLower(p.Name + " " + p.Description)
			if !strings.Contains(hay, query) {
				continue
			}
		}
		list = append(list, p)
	}

	switch filter.Sort {
	case "price-asc":
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price.LessThan(list[j].Price) })
	case "price-desc":
		sort.SliceStable(list, func(i, j int) bool { return list[j].Price.LessThan(list[i].Price) })
	case "newest":
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}

	s.logger.Debug().Int("count", len(list)).Msg("listed public products")
	return list, nil
}

// ListAdmin retrieves all products, optionally only the visible ones.
func (s *productService) ListAdmin(ctx context.Context, onlyVisible bool) ([]model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if !onlyVisible {
		return products, nil
	}

	list := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			list = append(list, p)
		}
	}
	return list, nil
}

// Upsert creates a product (empty input ID) or updates an existing one.
// New products are active and prepended to the catalogue; updates preserve
// the product's visibility and creation time.
func (s *productService) Upsert(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, model.NewValidationError("Product name is required.")
	}
	if input.Price.IsNegative() {
		return nil, model.NewValidationError("Product price cannot be negative.")
	}
	if input.Stock < 0 {
		return nil, model.NewValidationError("Product stock cannot be negative.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products for upsert")
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	var saved model.Product
	if input.ID == "" {
		saved = model.Product{
			ID:          s.newID(),
			Name:        input.Name,
			Category:    input.Category,
			Price:       input.Price,
			Stock:       input.Stock,
			Description: input.Description,
			ImageURL:    input.ImageURL,
			Active:      true,
			CreatedAt:   s.now(),
		}
		products = append([]model.Product{saved}, products...)
	} else {
		idx := indexOfProduct(products, input.ID)
		if idx < 0 {
			s.logger.Debug().Str("product_id", input.ID).Msg("product not found for update")
			return nil, model.ErrProductNotFound
		}
		p := products[idx]
		p.Name = input.Name
		p.Category = input.Category
		p.Price = input.Price
		p.Stock = input.Stock
		p.Description = input.Description
		p.ImageURL = input.ImageURL
		products[idx] = p
		saved = p
	}

	if err := s.products.ReplaceAll(ctx, products); err != nil {
		s.logger.Error().Err(err).Str("product_id", saved.ID).Msg("failed to write catalogue")
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info().
		Str("product_id", saved.ID).
		Bool("created", input.ID == "").
		Msg("product saved")

	return &saved, nil
}

// Delete removes a product after verifying the product-action key. A wrong
// key rejects without revealing which check failed and without mutation.
func (s *productService) Delete(ctx context.Context, id, actionKey string) error {
	if !s.actionVerifier.Verify(actionKey) {
		s.logger.Warn().Str("product_id", id).Msg("product deletion rejected")
		return model.ErrUnauthorised
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products for delete")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	idx := indexOfProduct(products, id)
	if idx < 0 {
		s.logger.Debug().Str("product_id", id).Msg("product not found for delete")
		return model.ErrProductNotFound
	}

	products = append(products[:idx], products[idx+1:]...)
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to write catalogue")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// AdjustStock shifts a product's stock by delta, clamped at zero.
func (s *productService) AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error) {
	return s.update(ctx, id, func(p *model.Product) {
		p.Stock += delta
		if p.Stock < 0 {
			p.Stock = 0
		}
	})
}

// SetActive toggles a product's public visibility.
func (s *productService) SetActive(ctx context.Context, id string, active bool) (*model.Product, error) {
	return s.update(ctx, id, func(p *model.Product) {
		p.Active = active
	})
}

// update applies fn to one product under the mutation lock and writes the
// catalogue back.
func (s *productService) update(ctx context.Context, id string, fn func(*model.Product)) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products for update")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	idx := indexOfProduct(products, id)
	if idx < 0 {
		s.logger.Debug().Str("product_id", id).Msg("product not found for update")
		return nil, model.ErrProductNotFound
	}

	fn(&products[idx])
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to write catalogue")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated := products[idx]
	return &updated, nil
}

// category returns the product's category, defaulting to Misc the way the
// shop page groups uncategorised items.
func category(p model.Product) string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	return "Misc"
}

func indexOfProduct(products []model.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
