package catalog

import (
	"context"
	"strconv"

	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

// Source is the read-only product catalog collaborator. The storefront never
// mutates catalog data.
type Source interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, category string) ([]*domain.Product, error)
}

// memorySource serves the built-in product set. The CMS-managed catalog is
// out of scope; this stands in for it behind the same interface.
type memorySource struct {
	products []*domain.Product
	byID     map[int64]*domain.Product
}

// NewMemorySource creates a Source over a fixed product set.
func NewMemorySource(products []*domain.Product) Source {
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &memorySource{products: products, byID: byID}
}

// NewDefaultSource creates a Source seeded with the standard storefront range.
func NewDefaultSource() Source {
	return NewMemorySource(seedProducts())
}

func (s *memorySource) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	return p, nil
}

func (s *memorySource) ListProducts(_ context.Context, category string) ([]*domain.Product, error) {
	if category == "" {
		return s.products, nil
	}
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
